package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gotslint/internal/configloader"
	"github.com/yaklabco/gotslint/internal/ui/pretty"
)

// helpStyles holds the lipgloss styles used by the help renderer.
type helpStyles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{title: plain, heading: plain, name: plain, flag: plain, dim: plain}
	}
	return helpStyles{
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// installHelp replaces cobra's help and usage output for root and every
// descendant. The --color flag is read when help is rendered, so
// "gotslint --color never lint --help" is honoured.
func installHelp(root *cobra.Command) {
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		w := cmd.OutOrStdout()
		h := helpRenderer{styles: newHelpStyles(pretty.IsColorEnabled(colorMode(cmd), w))}
		if err := h.help(w, cmd); err != nil {
			cmd.PrintErrln(err)
		}
	})
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		w := cmd.OutOrStderr()
		h := helpRenderer{styles: newHelpStyles(pretty.IsColorEnabled(colorMode(cmd), w))}
		return h.usage(w, cmd)
	})
}

func colorMode(cmd *cobra.Command) string {
	if f := cmd.Flags().Lookup("color"); f != nil {
		return f.Value.String()
	}
	if f := cmd.InheritedFlags().Lookup("color"); f != nil {
		return f.Value.String()
	}
	return "auto"
}

type helpRenderer struct {
	styles helpStyles
}

func (h helpRenderer) help(w io.Writer, cmd *cobra.Command) error {
	var b strings.Builder

	b.WriteString(h.styles.title.Render(cmd.CommandPath()))
	if cmd.Root().Version != "" {
		b.WriteString(" " + h.styles.dim.Render(cmd.Root().Version))
	}
	b.WriteString("\n\n")

	text := cmd.Long
	if text == "" {
		text = cmd.Short
	}
	if text != "" {
		b.WriteString(trimLineEnds(text))
		b.WriteString("\n\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write help: %w", err)
	}
	return h.usage(w, cmd)
}

func (h helpRenderer) usage(w io.Writer, cmd *cobra.Command) error {
	var sections []string

	var use []string
	if cmd.Runnable() {
		use = append(use, "  "+h.styles.title.Render(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		use = append(use, "  "+h.styles.title.Render(cmd.CommandPath()+" [command]"))
	}
	sections = append(sections, h.section("Usage:", use))

	if len(cmd.Aliases) > 0 {
		sections = append(sections, h.section("Aliases:",
			[]string{"  " + h.styles.dim.Render(strings.Join(cmd.Aliases, ", "))}))
	}

	if cmd.HasAvailableSubCommands() {
		var lines []string
		width := 0
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() || sub.Name() == "help" {
				width = max(width, len(sub.Name()))
			}
		}
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() && sub.Name() != "help" {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %s  %s",
				h.styles.name.Render(pretty.PadDisplay(sub.Name(), width)), sub.Short))
		}
		sections = append(sections, h.section("Commands:", lines))
	}

	if cmd.HasAvailableLocalFlags() {
		sections = append(sections, h.section("Flags:", h.flagLines(cmd.LocalFlags())))
	}
	if cmd.HasAvailableInheritedFlags() {
		sections = append(sections, h.section("Global Flags:", h.flagLines(cmd.InheritedFlags())))
	}

	if lintsFiles(cmd) {
		sections = append(sections, h.section("Environment:", h.envLines()))
	}

	var footer []string
	if cmd.HasAvailableSubCommands() {
		footer = append(footer, fmt.Sprintf("Use %q for more information about a command.",
			cmd.CommandPath()+" [command] --help"))
	}
	if lintsFiles(cmd) {
		footer = append(footer, h.styles.dim.Render(
			fmt.Sprintf("Run %q to list rule names for --enable, --disable and --fix-rules.",
				cmd.Root().Name()+" rules")))
	}
	if len(footer) > 0 {
		sections = append(sections, strings.Join(footer, "\n"))
	}

	if _, err := io.WriteString(w, strings.Join(sections, "\n\n")+"\n"); err != nil {
		return fmt.Errorf("write usage: %w", err)
	}
	return nil
}

func lintsFiles(cmd *cobra.Command) bool {
	return cmd.Name() == "lint" || cmd.Name() == "watch"
}

// envLines lists the configuration environment variables, which sit
// between config files and flags in precedence.
func (h helpRenderer) envLines() []string {
	vars := configloader.EnvVars()
	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}
	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		lines = append(lines, "  "+h.styles.flag.Render(v.Name)+strings.Repeat(" ", width-len(v.Name))+"   "+v.Help)
	}
	return lines
}

func (h helpRenderer) section(title string, lines []string) string {
	return h.styles.heading.Render(title) + "\n" + strings.Join(lines, "\n")
}

// flagLines renders one line per visible flag with descriptions aligned in
// a single column.
func (h helpRenderer) flagLines(flags *pflag.FlagSet) []string {
	type entry struct{ plain, styled, usage string }

	var entries []entry
	width := 0
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		varname, usage := pflag.UnquoteUsage(f)

		plain, styled := "    ", "    "
		if f.Shorthand != "" {
			plain = "-" + f.Shorthand + ", "
			styled = h.styles.flag.Render("-"+f.Shorthand) + ", "
		}
		plain += "--" + f.Name
		styled += h.styles.flag.Render("--" + f.Name)
		if varname != "" {
			plain += " " + varname
			styled += " " + h.styles.dim.Render(varname)
		}
		if def := flagDefault(f); def != "" {
			usage += h.styles.dim.Render(" (default " + def + ")")
		}

		width = max(width, len(plain))
		entries = append(entries, entry{plain: plain, styled: styled, usage: usage})
	})

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		pad := strings.Repeat(" ", width-len(e.plain))
		lines = append(lines, "  "+e.styled+pad+"   "+e.usage)
	}
	return lines
}

// flagDefault returns the default worth printing, or "" for zero values.
func flagDefault(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "0s", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

func trimLineEnds(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
