package cli

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomolar/internal/ui/pretty"
	"github.com/yaklabco/gomolar/pkg/elements"
	"github.com/yaklabco/gomolar/pkg/formula"
	"github.com/yaklabco/gomolar/pkg/molarmass"
)

// syntaxSamples are evaluated for the Formula Syntax help section.
//
//nolint:gochecknoglobals // Read-only sample list.
var syntaxSamples = []string{"H2O", "NaCl", "Ca(OH)2", "Al2(SO4)3", "(CO(OH)2)3"}

// syntaxCommands show the Formula Syntax section in their help.
//
//nolint:gochecknoglobals // Read-only lookup table.
var syntaxCommands = map[string]bool{
	"gomolar":     true,
	"calc":        true,
	"batch":       true,
	"interactive": true,
}

// helpStyles holds the lipgloss styles of help output.
type helpStyles struct {
	command    lipgloss.Style
	heading    lipgloss.Style
	subcommand lipgloss.Style
	flag       lipgloss.Style
	formula    lipgloss.Style
	mass       lipgloss.Style
	dim        lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{plain, plain, plain, plain, plain, plain, plain}
	}
	return helpStyles{
		command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		formula:    lipgloss.NewStyle().Bold(true),
		mass:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// helpRenderer renders help and usage text for the command tree. Color is
// resolved from the --color flag each time help is shown.
type helpRenderer struct {
	parser *formula.Parser
	calc   *molarmass.Calculator
	table  *elements.Table
}

func newHelpRenderer() *helpRenderer {
	table := elements.Default()
	return &helpRenderer{
		parser: formula.New(formula.Options{Table: table}),
		calc:   molarmass.NewCalculator(table),
		table:  table,
	}
}

// apply installs the renderer on cmd. Subcommands inherit it.
func (h *helpRenderer) apply(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		fmt.Fprint(command.OutOrStdout(), h.help(command))
	})
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		_, err := fmt.Fprint(command.OutOrStderr(), h.usage(command, h.styles(command)))
		return err
	})
}

func (h *helpRenderer) styles(cmd *cobra.Command) helpStyles {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	return newHelpStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))
}

func (h *helpRenderer) help(cmd *cobra.Command) string {
	styles := h.styles(cmd)

	var b strings.Builder
	b.WriteString(styles.command.Render(cmd.CommandPath()))
	if cmd.Version != "" {
		b.WriteString(" " + styles.dim.Render(cmd.Version))
	}
	b.WriteString("\n\n")

	if text := strings.TrimSpace(cmp.Or(cmd.Long, cmd.Short)); text != "" {
		b.WriteString(trimTrailingSpace(text) + "\n\n")
	}

	if syntaxCommands[cmd.Name()] {
		b.WriteString(h.syntax(styles))
		b.WriteString("\n")
	}

	b.WriteString(h.usage(cmd, styles))
	return b.String()
}

// syntax describes the formula grammar and evaluates syntaxSamples against
// the built-in element table.
func (h *helpRenderer) syntax(styles helpStyles) string {
	var b strings.Builder
	b.WriteString(styles.heading.Render("Formula Syntax:") + "\n")
	fmt.Fprintf(&b, "  Elements start with an uppercase letter (H, Na, Cl) and take an optional count (H2).\n")
	fmt.Fprintf(&b, "  Parentheses group atoms and take a count: Ca(OH)2. Groups nest up to %d deep.\n",
		formula.DefaultMaxDepth)
	fmt.Fprintf(&b, "  Counts run from 1 to %d. Whitespace is ignored.\n\n", formula.DefaultMaxCount)

	width := 0
	for _, sample := range syntaxSamples {
		width = max(width, len(sample))
	}
	for _, sample := range syntaxSamples {
		parsed := h.parser.Parse(sample)
		if !parsed.Valid {
			continue
		}
		mass := h.calc.Calculate(parsed.Elements)
		fmt.Fprintf(&b, "  %s  %s\n",
			styles.formula.Render(rpad(sample, width)),
			styles.mass.Render(pretty.FormatMass(mass.TotalMass, 2)+" g/mol"))
	}

	fmt.Fprintf(&b, "\n  %s\n", styles.dim.Render(fmt.Sprintf(
		"%d elements are known; run \"gomolar elements\" to list them.", h.table.Len())))
	return b.String()
}

func (h *helpRenderer) usage(cmd *cobra.Command, styles helpStyles) string {
	var b strings.Builder

	b.WriteString(styles.heading.Render("Usage:") + "\n")
	if cmd.Runnable() {
		b.WriteString("  " + styles.command.Render(cmd.UseLine()) + "\n")
	}
	if cmd.HasAvailableSubCommands() {
		b.WriteString("  " + styles.command.Render(cmd.CommandPath()+" [command]") + "\n")
	}

	if len(cmd.Aliases) > 0 {
		b.WriteString("\n" + styles.heading.Render("Aliases:") + "\n")
		b.WriteString("  " + styles.dim.Render(strings.Join(cmd.Aliases, ", ")) + "\n")
	}

	if cmd.HasExample() {
		b.WriteString("\n" + styles.heading.Render("Examples:") + "\n")
		b.WriteString(styles.dim.Render(cmd.Example) + "\n")
	}

	if cmd.HasAvailableSubCommands() {
		b.WriteString("\n" + styles.heading.Render("Available Commands:") + "\n")
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() && sub.Name() != "help" {
				continue
			}
			b.WriteString("  " + styles.subcommand.Render(rpad(sub.Name(), sub.NamePadding())) +
				" " + sub.Short + "\n")
		}
	}

	if cmd.HasAvailableLocalFlags() {
		b.WriteString("\n" + styles.heading.Render("Flags:") + "\n")
		b.WriteString(styleFlags(cmd.LocalFlags(), styles))
	}

	if cmd.HasAvailableInheritedFlags() {
		b.WriteString("\n" + styles.heading.Render("Global Flags:") + "\n")
		b.WriteString(styleFlags(cmd.InheritedFlags(), styles))
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "\nUse \"%s\" for more information about a command.\n",
			styles.command.Render(cmd.CommandPath()+" [command] --help"))
	}
	return b.String()
}

// styleFlags colors the flag names in pflag's usage text. A line such as
// "  -w, --watch   re-evaluate ..." splits at the first run of two spaces.
func styleFlags(flags *pflag.FlagSet, styles helpStyles) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(flags.FlagUsages(), "\n"), "\n") {
		trimmed := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(trimmed)]

		names, desc, found := strings.Cut(trimmed, "  ")
		if !found {
			b.WriteString(line + "\n")
			continue
		}

		tokens := strings.Fields(names)
		for idx, token := range tokens {
			if strings.HasPrefix(token, "-") {
				name, comma := strings.CutSuffix(token, ",")
				tokens[idx] = styles.flag.Render(name)
				if comma {
					tokens[idx] += ","
				}
				continue
			}
			tokens[idx] = styles.dim.Render(token)
		}
		b.WriteString(indent + strings.Join(tokens, " ") + "   " + strings.TrimLeft(desc, " ") + "\n")
	}
	return b.String()
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for idx, line := range lines {
		lines[idx] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
