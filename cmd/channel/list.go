package channel

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fanchase/chased/cmd/global"
	"github.com/fanchase/chased/internal/configuration"
	"github.com/fanchase/chased/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured channels to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadAndValidateConfig()

		var rows [][]string
		for i, config := range configuration.CurrentConfig.Channels {
			actuatorType := "file"
			if config.Actuator.Cmd != nil {
				actuatorType = "cmd"
			}

			rows = append(rows, []string{
				strconv.Itoa(i),
				config.ID,
				config.Tach,
				actuatorType,
				fmt.Sprintf("%g", config.Kp),
				fmt.Sprintf("%g", config.Ki),
			})
		}

		tab := table.Table{
			Headers: []string{"Index", "ID", "Tach", "Actuator", "Kp", "Ki"},
			Rows:    rows,
		}

		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			return tableErr
		}
		ui.Printfln(buf.String())

		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
