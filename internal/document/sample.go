package document

// SampleViewBox is the viewBox used when a caller does not bring one.
const SampleViewBox = "0 0 300 100"

// SampleSeries returns the demo series drawn by the sample endpoint and the
// wasm page.
func SampleSeries() []float64 {
	return []float64{21, 24, 8, 7, 9, 4, 11, 14, 13, 16, 12, 10, 3}
}
