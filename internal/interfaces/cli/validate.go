package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"kilometers.ai/assets/internal/core/asset"
)

// NewValidateCommand creates the validate command
func NewValidateCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every manifest against the strict asset rules",
		Long: `Validate the configuration and every asset manifest.

Each declared asset is normalized with the strict policy regardless of the
configured one, so sources that would render as empty or broken tags are
reported. Exits non-zero when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, container)
		},
	}
}

// runValidate reports per-manifest problems
func runValidate(cmd *cobra.Command, container *CLIContainer) error {
	out := cmd.OutOrStdout()
	app := container.App

	fmt.Fprintln(out, "🔍 Asset manifest validation")
	fmt.Fprintln(out, "")
	fmt.Fprintf(out, "Base URL:  %s\n", app.Config.BaseURL)
	fmt.Fprintf(out, "Manifests: %s\n", app.Config.ManifestsDir)
	fmt.Fprintln(out, "")

	if len(app.Manifests) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No manifests found."))
		return nil
	}

	problems, broken := 0, 0
	for _, m := range app.Manifests {
		var errs []string
		for i, rec := range m.Manifest().Assets {
			if _, err := asset.Normalize(rec, app.Config.BaseURL, asset.PolicyStrict); err != nil {
				errs = append(errs, fmt.Sprintf("asset #%d: %v", i, err))
			}
		}

		if len(errs) == 0 {
			fmt.Fprintf(out, "✅ %s (%s): %d assets\n", m.Name(), m.Path(), len(m.Manifest().Assets))
			continue
		}

		broken++
		problems += len(errs)
		fmt.Fprintf(out, "❌ %s (%s)\n", m.Name(), m.Path())
		for _, e := range errs {
			fmt.Fprintf(out, "   %s\n", warnStyle.Render(e))
		}
	}

	fmt.Fprintln(out, "")
	if problems > 0 {
		return fmt.Errorf("%d problem(s) found in %d manifest(s)", problems, broken)
	}
	fmt.Fprintln(out, "✅ All manifests valid")
	return nil
}
