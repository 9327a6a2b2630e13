package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Montessquio/tinytemple/internal/config"
)

var (
	appConfig config.Config
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tinytemple",
	Short: "Render templates from TOML and Markdown source",
	Long: `tinytemple reads a directory of templates paired with optional Markdown
content files, merges them with a shared TOML configuration context, renders
each to HTML, and copies static assets into the output directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("source", "./content/", "source directory for template and content files")
	pf.String("static", "./static/", "directory of files copied verbatim into the output")
	pf.String("out", "./html/", "output directory for rendered HTML")
	pf.String("config", "./tinytemple.toml", "TOML configuration file")
	pf.BoolP("verbose", "v", false, "enable debug logging")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	v.SetEnvPrefix("TINYTEMPLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	level := slog.LevelInfo
	if appConfig.Verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return nil
}
