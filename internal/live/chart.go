package live

import (
	"slices"
	"sync"

	"github.com/inamate/svgchart/internal/chart"
)

// LiveChart is an in-memory chart container fed by websocket clients.
// Pushed samples are kept in a sliding window; every change re-renders
// the chart into the container.
type LiveChart struct {
	ID      string
	viewBox string
	window  int

	// mu serializes updates so renders of one chart never interleave.
	mu      sync.Mutex
	config  chart.Config
	series  []float64
	status  chart.Status
	lastErr error
	// seq counts updates; every state carries the value it was built at.
	seq int64

	contentMu sync.RWMutex
	markup    string

	// clients is guarded by the hub's lock.
	clients map[string]*Client
}

func newLiveChart(id, viewBox string, cfg chart.Config, window int) *LiveChart {
	return &LiveChart{
		ID:      id,
		viewBox: viewBox,
		window:  window,
		config:  cfg,
		status:  chart.StatusNoData,
		clients: make(map[string]*Client),
	}
}

// ViewBox implements chart.Container.
func (lc *LiveChart) ViewBox() (string, bool) {
	return lc.viewBox, lc.viewBox != ""
}

// SetContent implements chart.Container.
func (lc *LiveChart) SetContent(markup string) {
	lc.contentMu.Lock()
	lc.markup = markup
	lc.contentMu.Unlock()
}

// Markup returns the last rendered markup.
func (lc *LiveChart) Markup() string {
	lc.contentMu.RLock()
	defer lc.contentMu.RUnlock()
	return lc.markup
}

// State returns a snapshot for clients.
func (lc *LiveChart) State() StatePayload {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.stateLocked()
}

func (lc *LiveChart) stateLocked() StatePayload {
	st := StatePayload{
		ChartID: lc.ID,
		Markup:  lc.Markup(),
		Status:  lc.status.String(),
		Samples: len(lc.series),
		Config:  lc.config,
		Seq:     lc.seq,
	}
	if lc.lastErr != nil {
		st.Error = lc.lastErr.Error()
	}
	return st
}

// update applies fn to the chart's series and config, then re-renders.
func (lc *LiveChart) update(r *chart.Renderer, fn func(series []float64, cfg chart.Config) ([]float64, chart.Config)) StatePayload {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.seq++
	series, cfg := fn(lc.series, lc.config)
	if over := len(series) - lc.window; over > 0 {
		series = slices.Clone(series[over:])
	}
	lc.series, lc.config = series, cfg

	if len(series) == 0 {
		// Nothing to draw; clear rather than keep a stale chart.
		lc.SetContent("")
		lc.status, lc.lastErr = chart.StatusNoData, chart.ErrNoData
		return lc.stateLocked()
	}

	res := r.Render(lc, cfg, series)
	lc.status, lc.lastErr = res.Status, res.Err
	return lc.stateLocked()
}
