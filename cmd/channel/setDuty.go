package channel

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var setDutyCmd = &cobra.Command{
	Use:   "setDuty",
	Short: "Set the duty cycle of a channel to the given percentage ([0..100])",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(channelId) <= 0 {
			return fmt.Errorf("required flag \"id\" not set")
		}

		percent, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		if percent < 0 || percent > 100 {
			return fmt.Errorf("duty percentage out of range: %d", percent)
		}

		actuator, _, err := getChannelObjects(channelId)
		if err != nil {
			return err
		}

		return actuator.SetDuty(float64(percent) / 100.0)
	},
}

func init() {
	Command.AddCommand(setDutyCmd)
}
