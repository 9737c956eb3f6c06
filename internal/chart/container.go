package chart

// Container is the element a chart is rendered into, typically an <svg>.
// The renderer reads the viewBox once and replaces the content at most once
// per call; it keeps no reference afterwards. Pointer implementations are
// only called when non-nil.
type Container interface {
	// ViewBox returns the raw viewBox attribute, ok=false when absent.
	ViewBox() (string, bool)
	// SetContent replaces the container's inner markup.
	SetContent(markup string)
}
