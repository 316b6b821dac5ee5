package cli

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(PaintAmber)
	helpDescStyle    = lipgloss.NewStyle().Foreground(PaintTeal).Italic(true)
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(PaintBlue).MarginTop(1)
	helpFlagStyle    = lipgloss.NewStyle().Foreground(PaintAmber).Bold(true)
	helpArgStyle     = lipgloss.NewStyle().Foreground(PaintCoral).Bold(true)
	helpNoteStyle    = lipgloss.NewStyle().Foreground(SlateGray).Italic(true)
)

// helpRow is one line of a help section: a term in the left column and its
// description, with notes such as the default trailing it
type helpRow struct {
	term  string
	text  string
	notes []string
}

// StyledHelpPrinter renders help as aligned two-column sections
func StyledHelpPrinter(kong.HelpOptions) kong.HelpPrinter {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		node := ctx.Model.Node

		var b strings.Builder
		b.WriteString(helpTitleStyle.Render(Title) + "\n\n")
		b.WriteString(helpDescStyle.Render(Description) + "\n")

		b.WriteString(helpSectionStyle.Render("Usage:") + "\n")
		b.WriteString("  " + usageLine(ctx.Model.Name, node) + "\n")

		writeHelpSection(&b, "Arguments:", helpArgStyle, argumentRows(node))
		writeHelpSection(&b, "Flags:", helpFlagStyle, flagRows(node))

		_, err := fmt.Fprintln(ctx.Stdout, b.String())
		return err
	}
}

func usageLine(name string, node *kong.Node) string {
	parts := []string{name}
	for _, arg := range node.Positional {
		parts = append(parts, "<"+arg.Name+">")
	}
	return strings.Join(append(parts, "[flags]"), " ")
}

func argumentRows(node *kong.Node) []helpRow {
	rows := make([]helpRow, 0, len(node.Positional))
	for _, arg := range node.Positional {
		rows = append(rows, helpRow{term: "<" + arg.Name + ">", text: arg.Help})
	}
	return rows
}

func flagRows(node *kong.Node) []helpRow {
	rows := make([]helpRow, 0, len(node.Flags))
	for _, f := range node.Flags {
		if f.Hidden {
			continue
		}

		term := "--" + f.Name
		if f.Short != 0 {
			term = fmt.Sprintf("-%c, %s", f.Short, term)
		}
		if p := placeHolder(f); p != "" {
			term += " " + p
		}

		row := helpRow{term: term, text: f.Help}
		if f.HasDefault && !f.IsBool() && f.Default != "" {
			row.notes = append(row.notes, "(default: "+f.Default+")")
		}
		for _, env := range f.Envs {
			row.notes = append(row.notes, "$"+env)
		}
		rows = append(rows, row)
	}
	return rows
}

// placeHolder names the value a flag takes; booleans take none
func placeHolder(f *kong.Flag) string {
	switch {
	case f.IsBool():
		return ""
	case f.PlaceHolder != "":
		return f.PlaceHolder
	case f.Enum != "":
		return "{" + strings.ReplaceAll(f.Enum, ",", "|") + "}"
	}

	switch f.Target.Kind() {
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return "N"
	default:
		return "STR"
	}
}

func writeHelpSection(b *strings.Builder, title string, termStyle lipgloss.Style, rows []helpRow) {
	if len(rows) == 0 {
		return
	}

	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(row.term))
	}

	b.WriteString(helpSectionStyle.Render(title) + "\n")
	for _, row := range rows {
		pad := strings.Repeat(" ", width-lipgloss.Width(row.term))
		line := "  " + termStyle.Render(row.term) + pad + "  " + row.text
		for _, note := range row.notes {
			line += " " + helpNoteStyle.Render(note)
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
}
