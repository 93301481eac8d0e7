// Package cli implements the adtran-convert command line: one-shot file
// conversion, the device catalog listing and the interactive terminal form.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/JonMunkholm/adtran-import/internal/config"
	"github.com/JonMunkholm/adtran-import/internal/core"
	"github.com/JonMunkholm/adtran-import/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app holds what every subcommand needs once configuration is loaded.
type app struct {
	cfg     *config.Config
	service *core.Service
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "adtran-convert",
		Short: "Convert inventory spreadsheets into Adtran provisioning import files",
		Long: `adtran-convert turns a CSV or XLSX inventory export into the provisioning
import CSV for one Adtran device type. Serial number, MAC address and FSAN
columns are detected from the headers; every row becomes one record with
the device's numbers template filled in.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.AddCommand(newConvertCommand(a))
	root.AddCommand(newDevicesCommand())
	root.AddCommand(newFormCommand(a))

	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", describe(err))
		stop()
		os.Exit(1)
	}
}

// setup loads .env and the environment configuration, then configures
// logging and the conversion service.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	// .env is optional; unlike the server, existing variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logging.SetupWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

	a.cfg = cfg
	a.service = core.NewService(cfg.Upload)
	return nil
}

// describe turns conversion errors into the operator-facing message.
func describe(err error) string {
	if core.IsUserFacing(err) {
		return core.FormatUserError(err)
	}
	return err.Error()
}
