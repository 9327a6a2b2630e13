package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Montessquio/tinytemple/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render all templates and copy static assets into the output directory",
	Long: `The build command loads the TOML configuration as the base render context,
wipes and recreates the output directory, renders every template under the
source directory (merging in each template's optional Markdown content),
and finally copies the static directory's contents into the output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild()
	},
}

func runBuild() error {
	p := &site.Pipeline{
		SourceDir:  appConfig.SourceDir,
		StaticDir:  appConfig.StaticDir,
		OutputDir:  appConfig.OutputDir,
		ConfigFile: appConfig.ConfigFile,
		Logger:     logger,
	}
	if err := p.Run(); err != nil {
		// Details were already logged with path and cause.
		return errors.New("a fatal error has occurred")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
