package live

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/inamate/svgchart/internal/chart"
	"github.com/inamate/svgchart/internal/typeid"
)

var ErrChartNotFound = errors.New("live chart not found")

type Hub struct {
	mu         sync.RWMutex
	charts     map[string]*LiveChart // chartID -> chart
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	renderer *chart.Renderer
	window   int
}

func NewHub(renderer *chart.Renderer, window int) *Hub {
	return &Hub{
		charts:     make(map[string]*LiveChart),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		renderer:   renderer,
		window:     window,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

// Stop ends Run and disconnects every client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)

		h.mu.Lock()
		defer h.mu.Unlock()
		for _, lc := range h.charts {
			for id, c := range lc.clients {
				c.close()
				delete(lc.clients, id)
			}
		}
	})
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Create starts a new live chart with no samples.
func (h *Hub) Create(viewBox string, cfg chart.Config) *LiveChart {
	lc := newLiveChart(typeid.NewChartID(), viewBox, cfg, h.window)

	h.mu.Lock()
	h.charts[lc.ID] = lc
	h.mu.Unlock()

	slog.Info("live chart created", "chart", lc.ID, "viewBox", viewBox)
	return lc
}

func (h *Hub) Get(chartID string) (*LiveChart, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	lc, ok := h.charts[chartID]
	return lc, ok
}

// Delete removes a chart and disconnects its clients.
func (h *Hub) Delete(chartID string) bool {
	h.mu.Lock()
	lc, ok := h.charts[chartID]
	if ok {
		delete(h.charts, chartID)
		for id, c := range lc.clients {
			c.close()
			delete(lc.clients, id)
		}
	}
	h.mu.Unlock()

	if ok {
		slog.Info("live chart deleted", "chart", chartID)
	}
	return ok
}

// Push appends samples to a chart, re-renders it and broadcasts the result.
func (h *Hub) Push(chartID string, samples []float64) (StatePayload, error) {
	lc, ok := h.Get(chartID)
	if !ok {
		return StatePayload{}, fmt.Errorf("%w: %s", ErrChartNotFound, chartID)
	}
	return h.push(lc, samples), nil
}

// Reset drops every sample of a chart and broadcasts the cleared state.
func (h *Hub) Reset(chartID string) error {
	lc, ok := h.Get(chartID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrChartNotFound, chartID)
	}
	h.reset(lc)
	return nil
}

func (h *Hub) reset(lc *LiveChart) {
	st := lc.update(h.renderer, func(_ []float64, cfg chart.Config) ([]float64, chart.Config) {
		return nil, cfg
	})
	h.broadcastState(lc.ID, st)
}

func (h *Hub) push(lc *LiveChart, samples []float64) StatePayload {
	st := lc.update(h.renderer, func(series []float64, cfg chart.Config) ([]float64, chart.Config) {
		return append(series, samples...), cfg
	})
	h.broadcastState(lc.ID, st)
	return st
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	lc, ok := h.charts[client.ChartID]
	if ok {
		lc.clients[client.ClientID] = client
	}
	h.mu.Unlock()

	if !ok {
		client.Send(errorMessage(fmt.Sprintf("chart %s not found", client.ChartID)))
		client.close()
		return
	}

	st := lc.State()
	payload, _ := json.Marshal(st)
	client.Send(&Message{
		Type:     TypeWelcome,
		ChartID:  lc.ID,
		ClientID: client.ClientID,
		Seq:      st.Seq,
		Payload:  payload,
	})

	slog.Info("client joined", "client", client.ClientID, "chart", client.ChartID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if lc, ok := h.charts[client.ChartID]; ok {
		delete(lc.clients, client.ClientID)
	}
	h.mu.Unlock()

	client.close()
	slog.Info("client left", "client", client.ClientID, "chart", client.ChartID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	lc, ok := h.Get(sender.ChartID)
	if !ok {
		sender.Send(errorMessage("chart no longer exists"))
		return
	}

	switch msg.Type {
	case TypeSamplesPush, TypeSamplesReset, TypeConfigUpdate:
		if !sender.canWrite {
			sender.Send(errorMessage("read-only connection: " + msg.Type + " needs a chart token"))
			return
		}
	}

	switch msg.Type {
	case TypeSamplesPush:
		var p SamplesPushPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			slog.Warn("invalid samples payload", "error", err, "client", sender.ClientID)
			sender.Send(errorMessage("invalid samples payload"))
			return
		}
		h.push(lc, p.Samples)

	case TypeSamplesReset:
		h.reset(lc)

	case TypeConfigUpdate:
		var p ConfigUpdatePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			sender.Send(errorMessage("invalid config payload"))
			return
		}
		var decodeErr error
		st := lc.update(h.renderer, func(series []float64, cfg chart.Config) ([]float64, chart.Config) {
			next := cfg
			if decodeErr = json.Unmarshal(p.Config, &next); decodeErr != nil {
				return series, cfg
			}
			return series, next
		})
		if decodeErr != nil {
			slog.Warn("invalid chart config", "error", decodeErr, "client", sender.ClientID)
			sender.Send(errorMessage("invalid chart config: " + decodeErr.Error()))
			return
		}
		h.broadcastState(lc.ID, st)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
		sender.Send(errorMessage("unknown message type " + msg.Type))
	}
}

func (h *Hub) broadcastState(chartID string, st StatePayload) {
	payload, err := json.Marshal(st)
	if err != nil {
		slog.Error("marshal chart state", "error", err)
		return
	}
	h.broadcastToChart(chartID, &Message{
		Type:    TypeChartMarkup,
		ChartID: chartID,
		Seq:     st.Seq,
		Payload: payload,
	})
}

func (h *Hub) broadcastToChart(chartID string, msg *Message) {
	h.mu.RLock()
	lc, ok := h.charts[chartID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(lc.clients))
	for _, c := range lc.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func errorMessage(text string) *Message {
	payload, _ := json.Marshal(ErrorPayload{Message: text})
	return &Message{Type: TypeError, Payload: payload}
}
