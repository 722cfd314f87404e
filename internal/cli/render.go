package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/bastiangx/unipick/pkg/catalog"
)

// glyphCells is the column width reserved for the glyph; wide CJK and emoji take two.
const glyphCells = 3

var (
	indexStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	hexStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	// MessageStyle renders hints such as suggested corrections.
	MessageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
)

// RenderRow formats one result as "NN. glyph NAME U+XXXX". A positive width
// truncates the name so the row fits.
func RenderRow(n int, entry catalog.Entry, width int, selected bool) string {
	glyph := runewidth.FillRight(entry.Glyph(), glyphCells)
	hex := entry.Hex()

	name := entry.Name
	if width > 0 {
		// "NN. " + glyph + " " + name + "  " + hex
		room := width - 4 - glyphCells - 1 - 2 - len(hex)
		if room < 1 {
			room = 1
		}
		name = runewidth.Truncate(name, room, "…")
	}

	style := nameStyle
	if selected {
		style = selectedStyle
	}

	var b strings.Builder
	b.WriteString(indexStyle.Render(fmt.Sprintf("%2d.", n)))
	b.WriteByte(' ')
	b.WriteString(glyph)
	b.WriteByte(' ')
	b.WriteString(style.Render(name))
	b.WriteString("  ")
	b.WriteString(hexStyle.Render(hex))
	return b.String()
}
