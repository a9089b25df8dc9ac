package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/gradcheck"
)

// renderer styles output for w. Colors are dropped when w is not a terminal.
type renderer struct {
	w      io.Writer
	title  lipgloss.Style
	border lipgloss.Style
	bad    lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		w:      w,
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		border: r.NewStyle().Foreground(lipgloss.Color("240")),
		bad:    r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// heading prints a bold title line.
func (p *renderer) heading(format string, args ...any) {
	fmt.Fprintln(p.w, p.title.Render(fmt.Sprintf(format, args...)))
}

// nodeName returns the label of v, or its id when unlabeled.
func nodeName(v *autodiff.Value) string {
	if v.Label() != "" {
		return v.Label()
	}
	return "#" + strconv.FormatUint(v.ID(), 10)
}

// values prints every node reachable from root with its data and gradient,
// inputs first.
func (p *renderer) values(root *autodiff.Value) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		Headers("NODE", "OP", "DATA", "GRAD")

	for _, v := range autodiff.TopoSort(root) {
		t.Row(nodeName(v), v.Symbol(), formatFloat(v.Data()), formatFloat(v.Grad()))
	}
	fmt.Fprintln(p.w, t.Render())
}

// edges prints one "from -> to [op]" line per edge.
func (p *renderer) edges(g autodiff.Graph) {
	for _, e := range g.Edges {
		fmt.Fprintf(p.w, "%s -> %s [%s]\n", nodeName(e.From), nodeName(e.To), e.To.Symbol())
	}
}

// report prints a gradient check report.
func (p *renderer) report(rep gradcheck.Report) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		Headers("LEAF", "ANALYTIC", "NUMERIC", "REL ERR", "STATUS")

	for _, res := range rep.Results {
		status := "ok"
		if !res.OK {
			status = p.bad.Render("FAIL")
		}
		t.Row(res.Leaf, formatFloat(res.Analytic), formatFloat(res.Numeric),
			strconv.FormatFloat(res.RelError, 'e', 2, 64), status)
	}
	fmt.Fprintln(p.w, t.Render())
}

// formatFloat prints four decimals.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
