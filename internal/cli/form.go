package cli

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/adtran-import/internal/core"
	"github.com/JonMunkholm/adtran-import/internal/logging"
	"github.com/JonMunkholm/adtran-import/internal/tui"
	"github.com/spf13/cobra"
)

func newFormCommand(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Fill in the conversion interactively",
		Long: `Form starts a terminal form that asks for the inventory file, device type,
location and company, shows a preview of the device numbers, and writes
the import file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Log lines would corrupt the screen.
			logging.SetupWriter(io.Discard, a.cfg.Logging.Level, a.cfg.Logging.Format)

			ctx := core.WithRequester(cmd.Context(), core.Requester{Source: "form"})
			final, err := tui.Run(ctx, a.service, outDir, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			result, path, err := final.Result()
			if err != nil {
				return err
			}
			if result != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", len(result.Records), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "directory for the output file")
	return cmd
}
