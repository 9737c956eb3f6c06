package chart

import (
	"bytes"
	"encoding/xml"

	"github.com/inamate/svgchart/internal/pathdata"
)

type xmlStop struct {
	XMLName xml.Name `xml:"stop"`
	Offset  string   `xml:"offset,attr"`
	Color   string   `xml:"stop-color,attr"`
}

type xmlGradient struct {
	XMLName xml.Name  `xml:"linearGradient"`
	ID      string    `xml:"id,attr"`
	X2      string    `xml:"x2,attr"`
	Y2      string    `xml:"y2,attr"`
	Stops   []xmlStop `xml:"stop"`
}

type xmlLine struct {
	XMLName xml.Name `xml:"line"`
	Class   string   `xml:"class,attr"`
	X1      string   `xml:"x1,attr"`
	Y1      string   `xml:"y1,attr"`
	X2      string   `xml:"x2,attr"`
	Y2      string   `xml:"y2,attr"`
}

type xmlPath struct {
	XMLName xml.Name `xml:"path"`
	D       string   `xml:"d,attr"`
	Stroke  string   `xml:"stroke,attr"`
	Fill    string   `xml:"fill,attr"`
}

func num(v float64) string { return pathdata.FormatNumber(v) }

// MarshalMarkup encodes the chart as an SVG fragment: the gradient
// definition, then the grid lines, then the path. Document order is paint
// order, so the grid sits under the path.
func (ch *Chart) MarshalMarkup() ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	if ch.Gradient != nil {
		g := xmlGradient{ID: ch.Gradient.ID, X2: num(ch.Gradient.X2), Y2: num(ch.Gradient.Y2)}
		for _, s := range ch.Gradient.Stops {
			g.Stops = append(g.Stops, xmlStop{Offset: s.Offset, Color: s.Color})
		}
		if err := enc.Encode(g); err != nil {
			return nil, err
		}
	}

	for _, l := range ch.Grid {
		line := xmlLine{Class: l.Class, X1: num(l.X), Y1: num(l.Y1), X2: num(l.X), Y2: num(l.Y2)}
		if err := enc.Encode(line); err != nil {
			return nil, err
		}
	}

	p := xmlPath{D: ch.Path.D(), Stroke: ch.Path.Stroke, Fill: ch.Path.Fill}
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
