package chartapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/svgchart/internal/auth"
	"github.com/inamate/svgchart/internal/chart"
	"github.com/inamate/svgchart/internal/document"
	"github.com/inamate/svgchart/internal/live"
	"github.com/inamate/svgchart/internal/raster"
	"github.com/inamate/svgchart/internal/typeid"
)

const maxBodySize = 1 << 20 // 1MB

type Handler struct {
	renderer *chart.Renderer
	defaults chart.Config
	viewBox  string
	raster   raster.Options
	hub      *live.Hub
	tokens   *auth.Service
	origins  []string
}

type Options struct {
	Defaults       chart.Config
	ViewBox        string
	Raster         raster.Options
	AllowedOrigins []string
}

// NewHandler wires the chart endpoints. Writes to a live chart require the
// token issued by tokens when the chart was created.
func NewHandler(renderer *chart.Renderer, hub *live.Hub, tokens *auth.Service, opts Options) *Handler {
	viewBox := opts.ViewBox
	if viewBox == "" {
		viewBox = document.SampleViewBox
	}
	return &Handler{
		renderer: renderer,
		defaults: opts.Defaults,
		viewBox:  viewBox,
		raster:   opts.Raster,
		hub:      hub,
		tokens:   tokens,
		origins:  opts.AllowedOrigins,
	}
}

// Routes registers the chart endpoints on r.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/charts/sample", h.Sample).Methods("GET")
	r.HandleFunc("/charts/render", h.Render).Methods("POST", "OPTIONS")
	r.HandleFunc("/charts/live", h.CreateLive).Methods("POST", "OPTIONS")
	r.HandleFunc("/charts/live/{chartId}", h.GetLive).Methods("GET")
	r.HandleFunc("/charts/live/{chartId}", h.DeleteLive).Methods("DELETE")
	r.HandleFunc("/charts/live/{chartId}/samples", h.PushSamples).Methods("POST", "OPTIONS")
	r.HandleFunc("/charts/live/{chartId}/samples", h.ResetSamples).Methods("DELETE")
	r.HandleFunc("/ws/charts/{chartId}", h.Subscribe)
}

type renderRequest struct {
	ViewBox string          `json:"viewBox"`
	Data    []float64       `json:"data"`
	Config  json.RawMessage `json:"config"`
}

type createLiveRequest struct {
	ViewBox string          `json:"viewBox"`
	Config  json.RawMessage `json:"config"`
}

type createLiveResponse struct {
	live.StatePayload
	Token string `json:"token"`
}

type samplesRequest struct {
	Samples []float64 `json:"samples"`
}

// Render handles POST /charts/render. The response is an SVG document by
// default, a PNG for ?format=png or Accept: image/png, and the draw command
// list for ?format=json.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cfg, err := h.config(req.Config)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	viewBox := req.ViewBox
	if viewBox == "" {
		viewBox = h.viewBox
	}

	h.respond(w, r, document.NewSVG(viewBox), cfg, req.Data)
}

// Sample handles GET /charts/sample. Query parameters style, fill, grid and
// subgrid override the defaults.
func (h *Handler) Sample(w http.ResponseWriter, r *http.Request) {
	cfg := h.defaults
	q := r.URL.Query()
	if v := q.Get("style"); v != "" {
		s, err := chart.ParseStyle(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		cfg.Style = s
	}
	if v := q.Get("fill"); v != "" {
		cfg.Fill = v == "true" || v == "1"
	}
	if v := q.Get("grid"); v != "" {
		cfg.VerticalGrid = v == "true" || v == "1"
	}
	if v := q.Get("subgrid"); v != "" {
		cfg.SubGrid = v == "true" || v == "1"
	}

	h.respond(w, r, document.NewSVG(document.SampleViewBox), cfg, document.SampleSeries())
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, doc *document.SVG, cfg chart.Config, data []float64) {
	res := h.renderer.Render(doc, cfg, data)
	if res.Status != chart.StatusRendered {
		handleRenderError(w, res)
		return
	}

	switch wantFormat(r) {
	case "png":
		var buf bytes.Buffer
		if err := raster.Encode(&buf, res.Chart, h.raster); err != nil {
			if errors.Is(err, chart.ErrDegenerateBounds) {
				handleRenderError(w, chart.Result{Status: chart.StatusDegenerateBounds, Err: err})
				return
			}
			slog.Error("rasterize chart", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())

	case "json":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"chart":    res.Chart,
			"commands": chart.CompileDrawCommands(res.Chart),
		})

	default:
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		doc.WriteTo(w)
	}
}

// CreateLive handles POST /charts/live.
func (h *Handler) CreateLive(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req createLiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cfg, err := h.config(req.Config)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	viewBox := req.ViewBox
	if viewBox == "" {
		viewBox = h.viewBox
	}
	if _, ok := chart.ParseViewBox(viewBox); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "viewBox needs 4 values"})
		return
	}

	lc := h.hub.Create(viewBox, cfg)
	token, err := h.tokens.IssueChartToken(lc.ID)
	if err != nil {
		h.hub.Delete(lc.ID)
		slog.Error("issue chart token", "error", err, "chart", lc.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusCreated, createLiveResponse{StatePayload: lc.State(), Token: token})
}

// GetLive handles GET /charts/live/{chartId}.
func (h *Handler) GetLive(w http.ResponseWriter, r *http.Request) {
	chartID, ok := liveChartID(w, r)
	if !ok {
		return
	}
	lc, ok := h.hub.Get(chartID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, lc.State())
}

// DeleteLive handles DELETE /charts/live/{chartId}.
func (h *Handler) DeleteLive(w http.ResponseWriter, r *http.Request) {
	chartID, ok := h.authorizeWrite(w, r)
	if !ok {
		return
	}
	if !h.hub.Delete(chartID) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PushSamples handles POST /charts/live/{chartId}/samples for producers
// that do not hold a websocket.
func (h *Handler) PushSamples(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	chartID, ok := h.authorizeWrite(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req samplesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	st, err := h.hub.Push(chartID, req.Samples)
	if err != nil {
		if errors.Is(err, live.ErrChartNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		slog.Error("push samples", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ResetSamples handles DELETE /charts/live/{chartId}/samples.
func (h *Handler) ResetSamples(w http.ResponseWriter, r *http.Request) {
	chartID, ok := h.authorizeWrite(w, r)
	if !ok {
		return
	}
	if err := h.hub.Reset(chartID); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Subscribe upgrades GET /ws/charts/{chartId} to a websocket. Without a
// token the connection only receives updates; ?token= grants writes.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	chartID := mux.Vars(r)["chartId"]
	if typeid.Validate(chartID, typeid.PrefixChart) != nil {
		http.Error(w, "chart not found", http.StatusNotFound)
		return
	}
	if _, ok := h.hub.Get(chartID); !ok {
		http.Error(w, "chart not found", http.StatusNotFound)
		return
	}

	canWrite := false
	if token := auth.TokenFromRequest(r); token != "" {
		if err := h.tokens.ValidateChartToken(token, chartID); err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		canWrite = true
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(h.origins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := live.NewClient(h.hub, conn, chartID, uuid.New().String(), canWrite)
	h.hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// liveChartID reads the chartId route variable. Ids that are not chart
// typeids are answered with 404 without consulting the hub.
func liveChartID(w http.ResponseWriter, r *http.Request) (string, bool) {
	chartID := mux.Vars(r)["chartId"]
	if err := typeid.Validate(chartID, typeid.PrefixChart); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return "", false
	}
	return chartID, true
}

// authorizeWrite checks the request carries a token for the chart in the
// route.
func (h *Handler) authorizeWrite(w http.ResponseWriter, r *http.Request) (string, bool) {
	chartID, ok := liveChartID(w, r)
	if !ok {
		return "", false
	}
	token := auth.TokenFromRequest(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing token"})
		return "", false
	}
	if err := h.tokens.ValidateChartToken(token, chartID); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		return "", false
	}
	return chartID, true
}

// config decodes raw over the handler defaults.
func (h *Handler) config(raw json.RawMessage) (chart.Config, error) {
	cfg := h.defaults
	if len(raw) == 0 || string(raw) == "null" {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.New("invalid config: " + err.Error())
	}
	return cfg, nil
}

func wantFormat(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return strings.ToLower(f)
	}
	if strings.Contains(r.Header.Get("Accept"), "image/png") {
		return "png"
	}
	return "svg"
}

// originPatterns strips schemes: websocket.AcceptOptions matches hosts.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if i := strings.Index(o, "://"); i >= 0 {
			o = o[i+3:]
		}
		out = append(out, o)
	}
	return out
}

func handleRenderError(w http.ResponseWriter, res chart.Result) {
	msg := res.Status.String()
	if res.Err != nil {
		msg = res.Err.Error()
	}
	switch res.Status {
	case chart.StatusNoData, chart.StatusNoRange, chart.StatusDegenerateBounds, chart.StatusDegenerateScale:
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": msg, "status": res.Status.String()})
	default:
		slog.Error("render failed", "status", res.Status.String(), "error", res.Err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
