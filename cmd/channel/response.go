package channel

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fanchase/chased/internal/configuration"
	"github.com/fanchase/chased/internal/controller"
	"github.com/fanchase/chased/internal/persistence"
	"github.com/fanchase/chased/internal/ui"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var settleTime time.Duration

var responseCmd = &cobra.Command{
	Use:   "response",
	Short: "Measure the duty to RPM response of a channel",
	Long: `Sweeps the duty cycle of a channel from zero to full speed,
records the resulting RPM at each step and stores the measured
response for bumpless target changes of the daemon.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(channelId) <= 0 {
			return fmt.Errorf("required flag \"id\" not set")
		}

		actuator, tach, err := getChannelObjects(channelId)
		if err != nil {
			return err
		}

		dbPath := configuration.CurrentConfig.DbPath
		ui.Info("Using persistence at: %s", dbPath)

		p := persistence.NewPersistence(dbPath)
		if err = p.Init(); err != nil {
			return err
		}

		ui.Info("Deleting existing response data for channel '%s'...", channelId)
		if err = p.DeleteChannelResponseData(channelId); err != nil {
			return err
		}

		ui.Info("Measuring response of channel '%s', this will take a while...", channelId)
		data, err := controller.MeasureResponse(context.Background(), actuator, tach, settleTime)
		if err != nil {
			return err
		}

		if err = p.SaveChannelResponseData(channelId, data); err != nil {
			return err
		}
		ui.Success("Done!")

		printResponseGraph(data)
		return nil
	},
}

func printResponseGraph(data map[int]float64) {
	keys := make([]int, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	values := make([]float64, 0, len(keys))
	for _, k := range keys {
		values = append(values, data[k])
	}

	caption := "RPM / duty %"
	graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
	ui.Printfln(graph)
}

func init() {
	responseCmd.Flags().DurationVarP(
		&settleTime,
		"settle-time", "s",
		2*time.Second,
		"Time to wait after each duty step before sampling the RPM",
	)
	Command.AddCommand(responseCmd)
}
