package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"kilometers.ai/assets/internal/application/services"
)

// RenderFlags holds command-line flags for the render command
type RenderFlags struct {
	Format string
}

var (
	slotHeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// NewRenderCommand creates the render command
func NewRenderCommand(container *CLIContainer) *cobra.Command {
	flags := &RenderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run one collect/render cycle and print the page slots",
		Long: `Run the collection phase over every manifest, then render the three
page slots: css_head, js_head and js_footer.

Examples:
  assets render
  assets render --format json
  assets render --base-url https://example.com/ --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, container, flags)
		},
	}

	cmd.Flags().StringVar(&flags.Format, "format", "text", "Output format (text, json)")

	return cmd
}

// runRender executes a page cycle and writes the slots
func runRender(cmd *cobra.Command, container *CLIContainer, flags *RenderFlags) error {
	if flags.Format != "text" && flags.Format != "json" {
		return fmt.Errorf("unsupported format %q (must be text or json)", flags.Format)
	}

	slots, cycle, err := container.App.Pages.RenderPage(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to render assets: %w", err)
	}

	report := cycle.Report()
	for _, f := range report.Failed {
		fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render(fmt.Sprintf("contributor %s skipped: %v", f.Contributor, f.Err)))
	}
	for _, r := range report.Rejected {
		fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render(fmt.Sprintf("%s asset #%d rejected: %v", r.Contributor, r.Index, r.Err)))
	}

	out := cmd.OutOrStdout()
	if flags.Format == "json" {
		return writeSlotsJSON(out, cycle.ID(), slots)
	}
	writeSlotsText(out, slots)
	return nil
}

func writeSlotsJSON(out io.Writer, cycleID string, slots services.Slots) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(struct {
		Cycle string `json:"cycle"`
		services.Slots
	}{Cycle: cycleID, Slots: slots})
}

func writeSlotsText(out io.Writer, slots services.Slots) {
	sections := []struct {
		name  string
		value string
	}{
		{services.VarStyleBlock, slots.StyleBlock},
		{services.VarHeadScripts, slots.HeadScripts},
		{services.VarFooterScripts, slots.FooterScripts},
	}

	for _, s := range sections {
		fmt.Fprintln(out, slotHeadingStyle.Render(s.name))
		if s.value == "" {
			fmt.Fprintln(out, mutedStyle.Render("(empty)"))
		} else {
			fmt.Fprintln(out, s.value)
		}
		fmt.Fprintln(out)
	}
}
