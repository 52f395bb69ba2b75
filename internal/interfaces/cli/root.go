package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"kilometers.ai/assets/internal/infrastructure/config"
	"kilometers.ai/assets/internal/interfaces/di"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds the dependencies shared by CLI commands. App is built
// once flags are parsed unless it was injected beforehand.
type CLIContainer struct {
	Options di.Options
	App     *di.Container
}

// NewRootCommand creates the base command
func NewRootCommand(container *CLIContainer) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "assets",
		Short: "Collect, order and render page assets",
		Long: `assets collects stylesheets, scripts and inline scripts declared by
independent contributors, orders them by priority and renders them into the
css_head, js_head and js_footer page slots.

Contributors are YAML manifests in the manifests directory, loaded in file
name order.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if container.App != nil {
				return nil
			}

			container.Options.Load = loadOptionsFromFlags(cmd)
			app, err := di.NewContainer(container.Options)
			if err != nil {
				return err
			}
			container.App = app
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().String("config", "", "Config file path (default is ./assets.yaml when present)")
	rootCmd.PersistentFlags().String("env-file", config.DefaultEnvFile, "Environment file to load")
	rootCmd.PersistentFlags().String("base-url", "", "Base URL relative sources are resolved against")
	rootCmd.PersistentFlags().String("manifests", "", "Directory containing asset manifests")
	rootCmd.PersistentFlags().Bool("strict", false, "Reject malformed assets instead of rendering them degraded")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json, logfmt)")

	rootCmd.AddCommand(NewRenderCommand(container))
	rootCmd.AddCommand(NewValidateCommand(container))
	rootCmd.AddCommand(NewServeCommand(container))
	rootCmd.AddCommand(NewInspectCommand(container))

	return rootCmd
}

// loadOptionsFromFlags turns explicitly set flags into configuration overrides
func loadOptionsFromFlags(cmd *cobra.Command) config.LoadOptions {
	flags := cmd.Flags()
	opts := config.LoadOptions{Overrides: map[string]interface{}{}}

	opts.ConfigFile, _ = flags.GetString("config")
	opts.EnvFile, _ = flags.GetString("env-file")

	overrides := map[string]string{
		"base-url":   "base_url",
		"manifests":  "manifests_dir",
		"log-level":  "log_level",
		"log-format": "log_format",
	}
	for flag, key := range overrides {
		if flags.Changed(flag) {
			value, _ := flags.GetString(flag)
			opts.Overrides[key] = value
		}
	}
	if flags.Changed("strict") {
		strict, _ := flags.GetBool("strict")
		opts.Overrides["strict"] = strict
	}

	return opts
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute runs the root command and exits non-zero on failure
func Execute(ctx context.Context) {
	rootCmd := NewRootCommand(&CLIContainer{})

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
