package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simp-lee/epubtoc"
	"github.com/simp-lee/epubtoc/internal/config"
	"github.com/simp-lee/epubtoc/internal/locate"
	"github.com/simp-lee/epubtoc/internal/logging"
	"github.com/simp-lee/epubtoc/internal/pathutil"
	"github.com/simp-lee/epubtoc/internal/prompt"
)

// NewRootCmd returns the epubtoc command. configPath is the optional YAML
// settings file.
func NewRootCmd(configPath string) *cobra.Command {
	return &cobra.Command{
		Use:   "epubtoc",
		Short: "Print the table of contents of an ePub file",
		Long: `epubtoc finds an .epub file in the current directory or in a directory
you type in, and prints the chapter titles from its NCX table of contents.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger, closeLog, err := logging.New(cfg.LogFile)
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			defer closeLog()

			out := cmd.OutOrStdout()
			p := prompt.New(cmd.InOrStdin(), out)
			ctrl := NewController(
				logger,
				p,
				pathutil.NewValidator(logger, out),
				locate.New(logger, p, cfg.Extension),
				epubtoc.NewExtractor(logger, out, epubtoc.ExtractorOptions{
					NavID:    cfg.NavID,
					Untitled: cfg.Untitled,
				}),
			)
			return ctrl.Run()
		},
	}
}
