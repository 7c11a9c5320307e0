package embed

// Bounds applied to every embedded frame height, in CSS pixels.
const (
	MinHeight = 200
	MaxHeight = 2000
)

// Default heights per embedded artifact kind.
const (
	DefaultHeight      = 800
	DefaultSheetHeight = 600
	DefaultVideoHeight = 450
)

// ClampHeight returns *h, or def when h is nil, clamped to
// [MinHeight, MaxHeight].
func ClampHeight(h *int, def int) int {
	v := def
	if h != nil {
		v = *h
	}
	return min(max(v, MinHeight), MaxHeight)
}
