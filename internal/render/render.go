// Package render draws the chunk table printed by the inspect command.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/928799934/go-pngme"
	"github.com/928799934/go-pngme/internal/config"
)

var columns = []string{"#", "TYPE", "LENGTH", "CRC", "CRITICAL", "PUBLIC", "RESERVED OK", "SAFE TO COPY"}

// ColorEnabled resolves a config color mode for output written to w.
// In auto mode colors are used only when w is a terminal.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type styles struct {
	header   lipgloss.Style
	cell     lipgloss.Style
	critical lipgloss.Style
	private  lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
		plain := r.NewStyle()
		return styles{header: plain, cell: plain, critical: plain, private: plain}
	}
	r.SetColorProfile(termenv.ANSI256)
	return styles{
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		cell:     r.NewStyle(),
		critical: r.NewStyle().Foreground(lipgloss.Color("196")),
		private:  r.NewStyle().Foreground(lipgloss.Color("86")),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func row(i int, c pngme.Chunk) []string {
	t := c.Type()
	return []string{
		strconv.Itoa(i),
		t.String(),
		strconv.FormatUint(uint64(c.Length()), 10),
		fmt.Sprintf("%08x", c.CRC()),
		yesNo(t.IsCritical()),
		yesNo(t.IsPublic()),
		yesNo(t.IsReservedBitValid()),
		yesNo(t.IsSafeToCopy()),
	}
}

// Table writes one line per chunk with its type, length, CRC and the
// properties encoded in its type.
func Table(w io.Writer, chunks []pngme.Chunk, color bool) error {
	st := newStyles(w, color)

	rows := make([][]string, 0, len(chunks))
	for i, c := range chunks {
		rows = append(rows, row(i, c))
	}
	widths := make([]int, len(columns))
	for i, h := range columns {
		widths[i] = len(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var b strings.Builder
	line := func(cells []string, style func(col int) lipgloss.Style) {
		out := make([]string, len(cells))
		for i, cell := range cells {
			// pad before styling so escape codes do not count towards width
			out[i] = style(i).Render(cell + strings.Repeat(" ", widths[i]-len(cell)))
		}
		b.WriteString(strings.TrimRight(strings.Join(out, "  "), " "))
		b.WriteByte('\n')
	}

	line(columns, func(int) lipgloss.Style { return st.header })
	for i, r := range rows {
		t := chunks[i].Type()
		line(r, func(col int) lipgloss.Style {
			if col != 1 {
				return st.cell
			}
			switch {
			case t.IsCritical():
				return st.critical
			case !t.IsPublic():
				return st.private
			}
			return st.cell
		})
	}
	_, err := io.WriteString(w, b.String())
	return err
}
