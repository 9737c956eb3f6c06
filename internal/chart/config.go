package chart

import (
	"fmt"
	"strings"
)

// Style selects how the data path is traced.
type Style int

const (
	// StyleStraight joins samples with straight segments.
	StyleStraight Style = iota
	// StyleRounded joins samples with straight segments whose corners are rounded.
	StyleRounded
	// StyleDirectional draws cubic segments biased towards the local trend.
	StyleDirectional
)

var styleNames = map[Style]string{
	StyleStraight:    "line",
	StyleRounded:     "curv",
	StyleDirectional: "curv1",
}

var styleAliases = map[string]Style{
	"line":        StyleStraight,
	"straight":    StyleStraight,
	"curv":        StyleRounded,
	"rounded":     StyleRounded,
	"curv1":       StyleDirectional,
	"directional": StyleDirectional,
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle accepts "line"/"straight", "curv"/"rounded" and "curv1"/"directional".
func ParseStyle(name string) (Style, error) {
	s, ok := styleAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return StyleStraight, fmt.Errorf("unknown chart style %q", name)
	}
	return s, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if _, ok := styleNames[s]; !ok {
		return nil, fmt.Errorf("unknown chart style %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Config holds the per-call rendering options.
// Decode into DefaultConfig() rather than a zero Config so absent fields
// keep their defaults.
type Config struct {
	Fill           bool  `json:"fill"`
	VerticalGrid   bool  `json:"verticalGrid"`
	Style          Style `json:"style"`
	GridMajorCount int   `json:"gridMajorCount"`
	SubGrid        bool  `json:"subGrid"`
}

// DefaultGridLines is the default number of major grid lines.
const DefaultGridLines = 6

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Fill:           false,
		VerticalGrid:   true,
		Style:          StyleStraight,
		GridMajorCount: DefaultGridLines,
		SubGrid:        true,
	}
}
