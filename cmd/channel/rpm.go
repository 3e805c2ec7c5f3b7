package channel

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rpmCmd = &cobra.Command{
	Use:   "rpm",
	Short: "Get the current RPM reading of a channel",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(channelId) <= 0 {
			return fmt.Errorf("required flag \"id\" not set")
		}
		pterm.DisableOutput()

		_, tach, err := getChannelObjects(channelId)
		if err != nil {
			return err
		}

		rpm, err := tach.GetRpm()
		if err != nil {
			return err
		}

		fmt.Printf("%d", rpm)
		return nil
	},
}

func init() {
	Command.AddCommand(rpmCmd)
}
