package cli

import (
	"fmt"

	"github.com/JonMunkholm/adtran-import/internal/core"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newDevicesCommand() *cobra.Command {
	var showTemplate bool

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List supported device types",
		Long:  "List the supported device types with their profile and a sample of the numbers they produce.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			devices := core.Devices()
			if len(devices) == 0 {
				return fmt.Errorf("no device types registered")
			}

			headers := []string{"DEVICE", "PROFILE", "EXAMPLE"}
			if showTemplate {
				headers[2] = "TEMPLATE"
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers(headers...).
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				})
			for _, d := range devices {
				last := core.PreviewNumbers(d)
				if showTemplate {
					last = d.NumbersTemplate
				}
				t.Row(d.ID, d.Profile, last)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showTemplate, "template", "t", false, "show the raw numbers template instead of an example")
	return cmd
}
