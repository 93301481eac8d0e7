package cli

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/adtran-import/internal/core"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	file            string
	device          string
	location        string
	confirmLocation bool
	company         string
	outDir          string
}

func newConvertCommand(a *app) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an inventory file into a provisioning import file",
		Long: `Convert reads a CSV or XLSX inventory file and writes
{company}_{YYYYMMDD}_{device}.csv into the output directory.

--location accepts WAREHOUSE, ITG or any custom name. A custom name must
match the provisioning system exactly and needs --confirm-location.`,
		Example: `  adtran-convert convert --file inventory.xlsx --device SDX622V --location WAREHOUSE --company "Acme Corp"
  adtran-convert convert -f units.csv -d SDG841-T6 -l "Central Office 3" --confirm-location -c Acme -o out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConvert(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "inventory file to convert (.csv or .xlsx)")
	flags.StringVarP(&opts.device, "device", "d", "", "device type, see 'adtran-convert devices'")
	flags.StringVarP(&opts.location, "location", "l", core.LocationWarehouse, "WAREHOUSE, ITG or a custom location")
	flags.BoolVar(&opts.confirmLocation, "confirm-location", false, "confirm that a custom location matches the provisioning system exactly")
	flags.StringVarP(&opts.company, "company", "c", "", "company name used in the output file name")
	flags.StringVarP(&opts.outDir, "out-dir", "o", ".", "directory for the output file")

	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("device")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, opts *convertOptions) error {
	req := core.ConversionRequest{
		DeviceID:          strings.TrimSpace(opts.device),
		Location:          opts.location,
		LocationConfirmed: opts.confirmLocation,
		Company:           strings.TrimSpace(opts.company),
	}

	ctx := core.WithRequester(cmd.Context(), core.Requester{Source: "cli"})
	result, err := a.service.ConvertPath(ctx, opts.file, req)
	if err != nil {
		return err
	}

	path, err := result.WriteFile(opts.outDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %d records to %s\n", len(result.Records), path)
	fmt.Fprintf(out, "Columns: serial=%q mac=%q fsan=%q\n",
		result.Columns.Serial, result.Columns.MAC, result.Columns.FSAN)
	if skipped := result.Skipped(); skipped > 0 {
		fmt.Fprintf(out, "Skipped %d rows:\n", skipped)
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  %s\n", w)
		}
	}
	return nil
}
