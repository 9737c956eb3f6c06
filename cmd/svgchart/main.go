// Package main provides the CLI entry point for svgchart.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inamate/svgchart/internal/chart"
	"github.com/inamate/svgchart/internal/document"
	"github.com/inamate/svgchart/internal/raster"
)

var (
	outputPath   string
	templatePath string
	viewBox      string
	dataFlag     string
	style        string
	fill         bool
	verticalGrid bool
	subGrid      bool
	gridLines    int
	width        int
	height       int
	verbose      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "svgchart",
		Short: "Render line charts as SVG path markup",
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a series into an SVG document or PNG image",
		Long: `render draws a numeric series as a line chart.

Samples come from --data (comma or space separated) or, when --data is
empty, from stdin. The output format follows the --output extension:
.png produces an image, anything else an SVG document.`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	f := renderCmd.Flags()
	f.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout, SVG)")
	f.StringVar(&templatePath, "template", "", "SVG document to render into; its viewBox is used")
	f.StringVar(&viewBox, "viewbox", document.SampleViewBox, "viewBox of the generated document")
	f.StringVar(&dataFlag, "data", "", "Samples, e.g. 21,24,8,7")
	f.StringVar(&style, "style", "line", "Path style: line, curv, curv1 (or straight, rounded, directional)")
	f.BoolVar(&fill, "fill", false, "Fill under the path with a gradient")
	f.BoolVar(&verticalGrid, "grid", true, "Draw vertical grid lines")
	f.BoolVar(&subGrid, "subgrid", true, "Draw minor grid lines between major ones")
	f.IntVar(&gridLines, "grid-lines", chart.DefaultGridLines, "Number of major grid lines")
	f.IntVar(&width, "width", raster.DefaultOptions().Width, "PNG width in pixels")
	f.IntVar(&height, "height", raster.DefaultOptions().Height, "PNG height in pixels")
	f.BoolVarP(&verbose, "verbose", "v", false, "Log skipped renders")

	rootCmd.AddCommand(renderCmd)
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	chartStyle, err := chart.ParseStyle(style)
	if err != nil {
		return err
	}

	series, err := readSeries(dataFlag, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read samples: %w", err)
	}

	doc := document.NewSVG(viewBox)
	if templatePath != "" {
		if doc, err = document.ReadFile(templatePath); err != nil {
			return fmt.Errorf("read template: %w", err)
		}
	}

	cfg := chart.Config{
		Fill:           fill,
		VerticalGrid:   verticalGrid,
		Style:          chartStyle,
		GridMajorCount: gridLines,
		SubGrid:        subGrid,
	}

	renderer := chart.NewRenderer(chart.WithLogger(logger))
	res := renderer.Render(doc, cfg, series)
	if res.Status != chart.StatusRendered {
		return fmt.Errorf("chart not rendered (%s): %w", res.Status, res.Err)
	}

	var out bytes.Buffer
	if strings.EqualFold(filepath.Ext(outputPath), ".png") {
		opts := raster.DefaultOptions()
		opts.Width, opts.Height = width, height
		if err := raster.Encode(&out, res.Chart, opts); err != nil {
			return fmt.Errorf("rasterize: %w", err)
		}
	} else {
		out.Write(doc.Bytes())
		out.WriteByte('\n')
	}

	if outputPath == "" {
		_, err := cmd.OutOrStdout().Write(out.Bytes())
		return err
	}
	if err := os.WriteFile(outputPath, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// readSeries parses samples from s, or from r when s is empty.
func readSeries(s string, r io.Reader) ([]float64, error) {
	var fields []string
	if strings.TrimSpace(s) != "" {
		fields = splitSamples(s)
	} else {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			fields = append(fields, splitSamples(sc.Text())...)
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
	}

	if len(fields) == 0 {
		return nil, errors.New("no samples given")
	}

	series := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("sample %q: %w", f, err)
		}
		series = append(series, v)
	}
	return series, nil
}

func splitSamples(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == ';'
	})
}
