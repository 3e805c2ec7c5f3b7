package cmd

import (
	"bytes"
	"path/filepath"
	"strconv"

	"github.com/fanchase/chased/cmd/global"
	"github.com/fanchase/chased/internal/hwmon"
	"github.com/fanchase/chased/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects all hwmon fan connectors and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		controllers := hwmon.GetChips()

		// === Print detected devices ===
		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		for _, controller := range controllers {
			if len(controller.Name) <= 0 || len(controller.Slots) <= 0 {
				continue
			}

			ui.Printfln("> %s", controller.Name)

			var rows [][]string
			for _, slot := range controller.Slots {
				rpmText := strconv.Itoa(slot.Rpm)

				pwmText := "N/A"
				if len(slot.PwmOutput) > 0 {
					_, pwmText = filepath.Split(slot.PwmOutput)
				}

				_, rpmFile := filepath.Split(slot.RpmInput)

				rows = append(rows, []string{
					"", strconv.Itoa(slot.Index), slot.Label, rpmFile, rpmText, pwmText,
				})
			}
			headers := []string{"Fans   ", "Index", "Label", "Tach", "RPM", "PWM"}

			tab := table.Table{
				Headers: headers,
				Rows:    rows,
			}

			var buf bytes.Buffer
			if tableErr := tab.WriteTable(&buf, tableConfig); tableErr != nil {
				ui.Fatal("Error printing table: %v", tableErr)
			}
			ui.Printfln(buf.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
