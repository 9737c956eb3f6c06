// Package document holds SVG documents that charts are rendered into.
package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

const svgNamespace = "http://www.w3.org/2000/svg"

var ErrNotSVG = errors.New("root element is not <svg>")

// SVG is an in-memory SVG document whose root element acts as a chart
// container. Only the root's attributes are interpreted; its content is
// kept as raw markup.
type SVG struct {
	mu      sync.RWMutex
	prolog  []byte
	attrs   []xml.Attr
	content string
}

// NewSVG creates an empty document with the given viewBox.
func NewSVG(viewBox string) *SVG {
	return &SVG{
		attrs: []xml.Attr{
			{Name: xml.Name{Local: "xmlns"}, Value: svgNamespace},
			{Name: xml.Name{Local: "viewBox"}, Value: viewBox},
		},
	}
}

// ParseSVG reads a document whose root element is <svg>.
func ParseSVG(data []byte) (*SVG, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		rootAt := int(dec.InputOffset())
		tok, err := dec.RawToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrNotSVG
			}
			return nil, fmt.Errorf("find svg root: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "svg" {
			return nil, fmt.Errorf("%w: got <%s>", ErrNotSVG, se.Name.Local)
		}

		start := int(dec.InputOffset())
		for depth := 1; depth > 0; {
			tok, err := dec.RawToken()
			if err != nil {
				return nil, fmt.Errorf("read svg content: %w", err)
			}
			switch tok.(type) {
			case xml.StartElement:
				depth++
			case xml.EndElement:
				depth--
			}
		}
		end := int(dec.InputOffset())

		content := ""
		if closeAt := bytes.LastIndex(data[:end], []byte("</")); closeAt >= start {
			content = string(data[start:closeAt])
		}

		return &SVG{
			prolog:  bytes.Clone(data[:rootAt]),
			attrs:   se.Copy().Attr,
			content: content,
		}, nil
	}
}

// ReadFile parses the SVG document at path.
func ReadFile(path string) (*SVG, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSVG(data)
}

// ViewBox implements chart.Container.
func (s *SVG) ViewBox() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.attrs {
		if a.Name.Space == "" && a.Name.Local == "viewBox" {
			return a.Value, true
		}
	}
	return "", false
}

// SetContent implements chart.Container.
func (s *SVG) SetContent(markup string) {
	s.mu.Lock()
	s.content = markup
	s.mu.Unlock()
}

// Content returns the root element's inner markup.
func (s *SVG) Content() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

// Bytes serializes the whole document.
func (s *SVG) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var buf bytes.Buffer
	buf.Write(s.prolog)
	buf.WriteString("<svg")

	hasNS := false
	for _, a := range s.attrs {
		name := a.Name.Local
		if a.Name.Space != "" {
			name = a.Name.Space + ":" + a.Name.Local
		}
		if name == "xmlns" {
			hasNS = true
		}
		buf.WriteByte(' ')
		buf.WriteString(name)
		buf.WriteString(`="`)
		xml.EscapeText(&buf, []byte(a.Value))
		buf.WriteByte('"')
	}
	if !hasNS {
		buf.WriteString(` xmlns="` + svgNamespace + `"`)
	}

	buf.WriteByte('>')
	buf.WriteString(s.content)
	buf.WriteString("</svg>")
	return buf.Bytes()
}

// WriteTo writes the serialized document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Bytes())
	return int64(n), err
}
