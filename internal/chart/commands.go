package chart

import (
	"encoding/json"

	"github.com/inamate/svgchart/internal/pathdata"
)

// Stroke widths assumed by the page stylesheet.
const (
	GridStrokeWidth = 1
	PathStrokeWidth = strokeInset
)

// DrawCommand is a single drawing operation for a canvas-style consumer.
// A chart compiles to at most one "gradient", then "line"s, then one "path".
type DrawCommand struct {
	Op          string             `json:"op"`                    // "gradient", "line" or "path"
	Class       string             `json:"class,omitempty"`       // grid line class
	Path        []pathdata.Command `json:"path,omitempty"`        // geometry for "line" and "path"
	Fill        string             `json:"fill,omitempty"`        // fill paint, may be a gradient url
	Stroke      string             `json:"stroke,omitempty"`      // stroke paint
	StrokeWidth float64            `json:"strokeWidth,omitempty"` // stroke width in viewBox units
	Gradient    *Gradient          `json:"gradient,omitempty"`    // definition for "gradient" ops
}

// CompileDrawCommands lists the chart's drawing operations in painter's
// order (back to front), matching the markup's document order.
func CompileDrawCommands(ch *Chart) []DrawCommand {
	if ch == nil {
		return nil
	}

	commands := make([]DrawCommand, 0, len(ch.Grid)+2)
	if ch.Gradient != nil {
		commands = append(commands, DrawCommand{Op: "gradient", Gradient: ch.Gradient})
	}

	for _, l := range ch.Grid {
		commands = append(commands, DrawCommand{
			Op:    "line",
			Class: l.Class,
			Path: []pathdata.Command{
				pathdata.MoveTo(l.X, l.Y1),
				pathdata.LineTo(l.X, l.Y2),
			},
			Stroke:      ch.Path.Stroke,
			StrokeWidth: GridStrokeWidth,
		})
	}

	commands = append(commands, DrawCommand{
		Op:          "path",
		Path:        ch.Path.Commands(),
		Fill:        ch.Path.Fill,
		Stroke:      ch.Path.Stroke,
		StrokeWidth: PathStrokeWidth,
	})
	return commands
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
