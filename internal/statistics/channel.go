package statistics

import (
	"github.com/fanchase/chased/internal/chase"
	"github.com/prometheus/client_golang/prometheus"
)

const channelSubsystem = "channel"

type ChannelCollector struct {
	channels []*chase.Channel
	rpm      *prometheus.Desc
	target   *prometheus.Desc
	duty     *prometheus.Desc
	chasing  *prometheus.Desc
}

func NewChannelCollector(channels []*chase.Channel) *ChannelCollector {
	return &ChannelCollector{
		channels: channels,
		rpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, channelSubsystem, "rpm"),
			"Current RPM value of the channel",
			[]string{"id"}, nil,
		),
		target: prometheus.NewDesc(prometheus.BuildFQName(namespace, channelSubsystem, "target_rpm"),
			"Target RPM value of the channel",
			[]string{"id"}, nil,
		),
		duty: prometheus.NewDesc(prometheus.BuildFQName(namespace, channelSubsystem, "duty"),
			"Current duty cycle of the channel",
			[]string{"id"}, nil,
		),
		chasing: prometheus.NewDesc(prometheus.BuildFQName(namespace, channelSubsystem, "chasing"),
			"Whether the channel is currently chasing a target",
			[]string{"id"}, nil,
		),
	}
}

func (collector *ChannelCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.rpm
	ch <- collector.target
	ch <- collector.duty
	ch <- collector.chasing
}

// Collect implements the required collect function for all prometheus collectors
func (collector *ChannelCollector) Collect(ch chan<- prometheus.Metric) {
	for _, channel := range collector.channels {
		channelId := channel.GetId()

		chasing := 0.0
		if channel.IsChasing() {
			chasing = 1.0
		}

		ch <- prometheus.MustNewConstMetric(collector.rpm, prometheus.GaugeValue, float64(channel.GetRpm()), channelId)
		ch <- prometheus.MustNewConstMetric(collector.target, prometheus.GaugeValue, float64(channel.GetTarget()), channelId)
		ch <- prometheus.MustNewConstMetric(collector.duty, prometheus.GaugeValue, channel.GetDuty(), channelId)
		ch <- prometheus.MustNewConstMetric(collector.chasing, prometheus.GaugeValue, chasing, channelId)
	}
}
