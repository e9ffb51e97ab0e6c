package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomolar/internal/ui/pretty"
)

const promptText = "formula> "

// renderView renders the entire view.
func (m Model) renderView() string {
	var b strings.Builder

	b.WriteString(m.styles.Bold.Render("gomolar: molar mass calculator"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.item == nil:
		b.WriteString("\n")
		b.WriteString(m.styles.Dim.Render("Type a formula such as H2O, NaCl, or Al2(SO4)3."))
		b.WriteString("\n")

	case !m.item.Valid():
		b.WriteString(m.renderCaret())
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("error") + "  " + m.styles.Message.Render(m.item.Parse.ErrorMessage()))
		b.WriteString("\n")

	default:
		b.WriteString("\n")
		line := m.styles.Formula.Render(m.item.Parse.Clean) + "  " +
			m.styles.Mass.Render(pretty.DisplayMass(m.item.Mass, m.precision)+" "+pretty.MassUnit)
		if m.item.Compound != nil {
			line += "  " + m.styles.Compound.Render(m.item.Compound.DisplayName())
		}
		b.WriteString(line)
		b.WriteString("\n\n")
		b.WriteString(m.styles.FormatBreakdownLines(m.item.Mass))
	}

	if m.status != "" {
		b.WriteString("\n")
		style := m.styles.Info
		if m.statusErr {
			style = m.styles.Warning
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// renderCaret renders a caret under the offending character of the input,
// aligned with the text after the prompt.
func (m Model) renderCaret() string {
	err := m.item.Parse.Err
	if err == nil || !err.HasPosition() {
		return ""
	}
	column := pretty.CaretColumn(m.input.Value(), err.Position)
	padding := strings.Repeat(" ", lipgloss.Width(promptText)+column-1)
	return padding + m.styles.Caret.Render("^")
}
