package live

import (
	"encoding/json"

	"github.com/inamate/svgchart/internal/chart"
)

// Message is the websocket envelope. Seq is the chart's render sequence on
// server messages; a client drops any state older than one it has seen.
type Message struct {
	Type     string          `json:"type"`
	ChartID  string          `json:"chartId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

const (
	// Client → server
	TypeSamplesPush  = "samples.push"
	TypeSamplesReset = "samples.reset"
	TypeConfigUpdate = "config.update"

	// Server → client
	TypeWelcome     = "welcome"
	TypeChartMarkup = "chart.markup"
	TypeError       = "error"
)

type SamplesPushPayload struct {
	Samples []float64 `json:"samples"`
}

type ConfigUpdatePayload struct {
	Config json.RawMessage `json:"config"`
}

// StatePayload is sent on join and after every re-render.
type StatePayload struct {
	ChartID string       `json:"chartId"`
	Markup  string       `json:"markup"`
	Status  string       `json:"status"`
	Samples int          `json:"samples"`
	Config  chart.Config `json:"config"`
	Seq     int64        `json:"seq"`
	Error   string       `json:"error,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
