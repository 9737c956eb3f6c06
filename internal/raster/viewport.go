package raster

import "github.com/gogpu/gg"

// Viewport maps the viewBox (x, y, w, h) onto a width×height pixel canvas,
// stretching each axis independently. With flipY the viewBox's y axis
// points up, so larger samples sit higher in the image.
func Viewport(x, y, w, h float64, width, height int, flipY bool) gg.Matrix {
	sx := float64(width) / w
	sy := float64(height) / h
	toOrigin := gg.Translate(-x, -y)
	if !flipY {
		return gg.Scale(sx, sy).Multiply(toOrigin)
	}
	return gg.Translate(0, float64(height)).Multiply(gg.Scale(sx, -sy)).Multiply(toOrigin)
}

// project maps a viewBox point to pixels. Points are transformed here
// rather than through the context so stroke widths stay in pixel units.
func project(m gg.Matrix, x, y float64) (float64, float64) {
	p := m.TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}
