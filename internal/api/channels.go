package api

import (
	"net/http"
	"strconv"

	"github.com/fanchase/chased/internal/chase"
	"github.com/fanchase/chased/internal/command"
	"github.com/labstack/echo/v4"
)

type ChannelStatus struct {
	Id      string  `json:"id"`
	Index   int     `json:"index"`
	Target  int     `json:"target"`
	Rpm     int     `json:"rpm"`
	RpmAvg  float64 `json:"rpmAvg"`
	Duty    float64 `json:"duty"`
	Chasing bool    `json:"chasing"`
	Kp      float64 `json:"kp"`
	Ki      float64 `json:"ki"`
}

func registerChannelEndpoints(rest *echo.Echo, processor *command.Processor) {
	group := rest.Group("/channel")

	group.GET("/", func(c echo.Context) error {
		return getChannels(c, processor)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		return getChannel(c, processor)
	})
}

// returns the status of all configured channels, ordered by index
func getChannels(c echo.Context, processor *command.Processor) error {
	data := make([]ChannelStatus, 0, processor.ChannelCount())
	for _, channel := range processor.Channels() {
		data = append(data, channelStatus(channel))
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getChannel(c echo.Context, processor *command.Processor) error {
	id := c.Param(urlParamId)
	index, err := strconv.Atoi(id)
	if err != nil {
		return returnNotFound(c, id)
	}
	channel := processor.Channel(index)
	if channel == nil {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, channelStatus(channel), indentationChar)
}

func channelStatus(channel *chase.Channel) ChannelStatus {
	kp, ki := channel.GetPiGains()
	return ChannelStatus{
		Id:      channel.GetId(),
		Index:   channel.GetIndex(),
		Target:  channel.GetTarget(),
		Rpm:     channel.GetRpm(),
		RpmAvg:  channel.GetRpmAvg(),
		Duty:    channel.GetDuty(),
		Chasing: channel.IsChasing(),
		Kp:      kp,
		Ki:      ki,
	}
}
