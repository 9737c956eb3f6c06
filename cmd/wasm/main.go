//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inamate/svgchart/internal/chart"
	"github.com/inamate/svgchart/internal/document"
)

var renderer *chart.Renderer

// element adapts a DOM <svg> element to chart.Container.
type element struct {
	el js.Value
}

func (e element) ViewBox() (string, bool) {
	v := e.el.Call("getAttribute", "viewBox")
	if v.Type() != js.TypeString {
		return "", false
	}
	return v.String(), true
}

func (e element) SetContent(markup string) {
	e.el.Set("innerHTML", markup)
}

func main() {
	renderer = chart.NewRenderer()

	svgChart := js.Global().Get("Object").New()
	svgChart.Set("render", js.FuncOf(render))
	svgChart.Set("renderSample", js.FuncOf(renderSample))
	js.Global().Set("svgChart", svgChart)

	// Signal that WASM is ready
	js.Global().Set("svgChartWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// render(target, options, data) where target is an element or a selector.
// Returns the render status string.
func render(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(chart.StatusNoData.String())
	}

	c := lookup(args[0])
	if c == nil {
		return js.ValueOf(chart.StatusNoContainer.String())
	}

	res := renderer.Render(c, readConfig(args[1]), readSeries(args[2]))
	return js.ValueOf(res.Status.String())
}

// renderSample() draws the demo page: a filled directional curve in
// svg#graph and a plain line chart in svg#graph1.
func renderSample(this js.Value, args []js.Value) interface{} {
	data := document.SampleSeries()

	filled := chart.DefaultConfig()
	filled.Fill = true
	filled.Style = chart.StyleDirectional

	first := renderer.Render(lookup(js.ValueOf("svg#graph")), filled, data)
	second := renderer.Render(lookup(js.ValueOf("svg#graph1")), chart.DefaultConfig(), data)

	return js.ValueOf([]interface{}{first.Status.String(), second.Status.String()})
}

// lookup returns nil (not a nil-valued element) when nothing matches, so
// the renderer sees an absent container.
func lookup(target js.Value) chart.Container {
	if target.Type() == js.TypeString {
		target = js.Global().Get("document").Call("querySelector", target.String())
	}
	if target.IsNull() || target.IsUndefined() {
		return nil
	}
	return element{el: target}
}

// readConfig accepts both the descriptive option names and the original
// page's isFill / isVGrid / isCurv names.
func readConfig(opts js.Value) chart.Config {
	cfg := chart.DefaultConfig()
	if opts.Type() != js.TypeObject {
		return cfg
	}

	readBool := func(dst *bool, names ...string) {
		for _, n := range names {
			if v := opts.Get(n); v.Type() == js.TypeBoolean {
				*dst = v.Bool()
			}
		}
	}
	readBool(&cfg.Fill, "fill", "isFill")
	readBool(&cfg.VerticalGrid, "verticalGrid", "isVGrid")
	readBool(&cfg.SubGrid, "subGrid", "isSubGrid")

	for _, n := range []string{"style", "isCurv"} {
		if v := opts.Get(n); v.Type() == js.TypeString {
			if s, err := chart.ParseStyle(v.String()); err == nil {
				cfg.Style = s
			}
		}
	}
	for _, n := range []string{"gridMajorCount", "gridNormalLines"} {
		if v := opts.Get(n); v.Type() == js.TypeNumber {
			cfg.GridMajorCount = v.Int()
		}
	}
	return cfg
}

// readSeries copies a JS array of numbers. Elements that are not numbers
// read as 0, so a stray value never aborts the render.
func readSeries(arr js.Value) []float64 {
	if arr.Type() != js.TypeObject {
		return nil
	}
	length := arr.Length()
	series := make([]float64, length)
	for i := 0; i < length; i++ {
		if v := arr.Index(i); v.Type() == js.TypeNumber {
			series[i] = v.Float()
		}
	}
	return series
}
