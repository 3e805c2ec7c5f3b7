package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fanchase/chased/internal/actuators"
	"github.com/fanchase/chased/internal/api"
	"github.com/fanchase/chased/internal/chase"
	"github.com/fanchase/chased/internal/command"
	"github.com/fanchase/chased/internal/configuration"
	"github.com/fanchase/chased/internal/console"
	"github.com/fanchase/chased/internal/controller"
	"github.com/fanchase/chased/internal/persistence"
	"github.com/fanchase/chased/internal/statistics"
	"github.com/fanchase/chased/internal/tachs"
	"github.com/fanchase/chased/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	if containsFileActuators() && getProcessOwner() != "root" {
		ui.Fatal("Driving fans through sysfs requires root permissions, please run chased as root")
	}

	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to open database %s: %v", configuration.CurrentConfig.DbPath, err)
	}

	processor := InitializeObjects()

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			server := &http.Server{}

			g.Add(func() error {
				port := sanitizePort(configuration.CurrentConfig.Statistics.Port)
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				server.Addr = fmt.Sprintf(":%d", port)
				server.Handler = mux
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Api.Enabled
		if enabled {
			// === REST API
			restService := api.CreateRestService(processor)

			g.Add(func() error {
				host := configuration.CurrentConfig.Api.Host
				port := configuration.CurrentConfig.Api.Port
				addr := fmt.Sprintf("%s:%d", host, port)
				if err := restService.Start(addr); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start REST api endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := restService.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST api server: %v", err)
				} else {
					ui.Info("REST api server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Console.Enabled
		if enabled {
			// === serial command console
			port, err := console.OpenSerialPort(configuration.CurrentConfig.Console)
			if err != nil {
				ui.Fatal("Unable to open serial port %s: %v", configuration.CurrentConfig.Console.Port, err)
			}
			con := console.NewConsole(processor, port)

			g.Add(func() error {
				err := con.Run(ctx)
				ui.Info("Command console stopped.")
				return err
			}, func(err error) {
				// closing the port unblocks the read loop
				_ = port.Close()
				if err != nil {
					ui.Warning("Error running command console: %v", err)
				}
			})
		}
	}
	{
		// === chase controller
		chaseController := controller.NewChaseController(pers, processor)

		g.Add(func() error {
			err := chaseController.Run(ctx)
			ui.Info("Chase controller stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects builds tachs, actuators and channels from the current
// configuration and wires them into a configured command processor.
func InitializeObjects() *command.Processor {
	for _, config := range configuration.CurrentConfig.Tachs {
		tach, err := tachs.NewTach(config)
		if err != nil {
			ui.Fatal("Unable to process tach configuration: %s", config.ID)
		}
		tachs.TachMap.Set(config.ID, tach)
	}

	samplingPeriod := configuration.CurrentConfig.Processor.SamplingPeriod
	windowSize := configuration.CurrentConfig.RpmRollingWindowSize

	var channelList []*chase.Channel
	for i, config := range configuration.CurrentConfig.Channels {
		actuator, err := actuators.NewActuator(config)
		if err != nil {
			ui.Fatal("Unable to process channel configuration: %s", config.ID)
		}

		tach, err := tachs.GetTach(config.Tach)
		if err != nil {
			ui.Fatal("Unable to resolve tach %s of channel %s", config.Tach, config.ID)
		}

		channel := chase.NewChannel(config.ID, i)
		channel.Configure(actuator, tach, samplingPeriod, windowSize)
		if !channel.SetPiGains(config.Kp, config.Ki) {
			ui.Fatal("Invalid PI gains for channel %s: kp=%f ki=%f", config.ID, config.Kp, config.Ki)
		}

		channelList = append(channelList, channel)
	}

	if len(channelList) == 0 {
		ui.Fatal("No valid channel configurations, exiting.")
	}

	processor := command.NewProcessor()
	mode := command.Mode(configuration.CurrentConfig.Processor.Mode)
	tolerance := configuration.CurrentConfig.Processor.Tolerance
	if !processor.Configure(mode, channelList, samplingPeriod, tolerance) {
		ui.Fatal("Unable to configure command processor")
	}

	channelCollector := statistics.NewChannelCollector(channelList)
	statistics.Register(channelCollector)

	return processor
}

// sanitizePort falls back to a default when the configured port is
// outside the valid range
func sanitizePort(port int) int {
	if port <= 0 || port > 65535 {
		return 9000
	}
	return port
}

func containsFileActuators() bool {
	for _, config := range configuration.CurrentConfig.Channels {
		if config.Actuator.File != nil {
			return true
		}
	}
	return false
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Fatal("Error checking process owner: %v", err)
		os.Exit(1)
	}
	return strings.TrimSpace(string(stdout))
}
