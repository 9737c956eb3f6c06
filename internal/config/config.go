package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/inamate/svgchart/internal/chart"
	"github.com/inamate/svgchart/internal/raster"
)

type Config struct {
	Port           int        `envconfig:"PORT" default:"8080"`
	AllowedOrigins string     `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	LogLevel       slog.Level `envconfig:"LOG_LEVEL" default:"info"`

	// Chart defaults, overridable per request.
	ViewBox      string      `envconfig:"CHART_VIEWBOX" default:"0 0 300 100"`
	Style        chart.Style `envconfig:"CHART_STYLE" default:"line"`
	Fill         bool        `envconfig:"CHART_FILL" default:"false"`
	VerticalGrid bool        `envconfig:"CHART_VGRID" default:"true"`
	SubGrid      bool        `envconfig:"CHART_SUBGRID" default:"true"`
	GridLines    int         `envconfig:"CHART_GRID_LINES" default:"6"`
	RoundRadius  float64     `envconfig:"CHART_ROUND_RADIUS" default:"15"`
	StrokeColor  string      `envconfig:"CHART_STROKE" default:"gray"`
	StopColors   []string    `envconfig:"CHART_STOP_COLORS" default:"var(--color-stop-1),var(--color-stop-2),var(--color-stop-3)"`
	GradientX2   float64     `envconfig:"CHART_GRADIENT_X2" default:"0"`
	GradientY2   float64     `envconfig:"CHART_GRADIENT_Y2" default:"1"`

	RasterWidth      int               `envconfig:"RASTER_WIDTH" default:"600"`
	RasterHeight     int               `envconfig:"RASTER_HEIGHT" default:"200"`
	RasterBackground string            `envconfig:"RASTER_BACKGROUND" default:"#ffffff"`
	RasterPalette    map[string]string `envconfig:"RASTER_PALETTE" default:"var(--color-stop-1):#4f46e5,var(--color-stop-2):#06b6d4,var(--color-stop-3):#e0f2fe,gray:#808080"`

	LiveWindow int `envconfig:"LIVE_WINDOW" default:"60"`

	// Signs the per-chart write tokens handed out by POST /charts/live.
	TokenSecret string        `envconfig:"TOKEN_SECRET" default:"dev-secret-change-in-production"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if len(cfg.StopColors) != 3 {
		return nil, fmt.Errorf("CHART_STOP_COLORS needs 3 colours, got %d", len(cfg.StopColors))
	}
	if cfg.LiveWindow <= 0 {
		return nil, fmt.Errorf("LIVE_WINDOW must be positive, got %d", cfg.LiveWindow)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ChartConfig returns the per-call defaults.
func (c *Config) ChartConfig() chart.Config {
	return chart.Config{
		Fill:           c.Fill,
		VerticalGrid:   c.VerticalGrid,
		Style:          c.Style,
		GridMajorCount: c.GridLines,
		SubGrid:        c.SubGrid,
	}
}

func (c *Config) Theme() chart.Theme {
	t := chart.Theme{Stroke: c.StrokeColor}
	copy(t.Stops[:], c.StopColors)
	return t
}

func (c *Config) RasterOptions() raster.Options {
	return raster.Options{
		Width:      c.RasterWidth,
		Height:     c.RasterHeight,
		Background: c.RasterBackground,
		Palette:    c.RasterPalette,
		FlipY:      true,
	}
}
