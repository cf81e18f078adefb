package layout

// Fragment is a short run of text with its position and rendered width,
// in the page's coordinate space (Y grows upward, as in PDF user space).
type Fragment struct {
	Text  string
	X, Y  float64
	Width float64
}

// End returns the X coordinate where the fragment's rendered text ends.
func (f Fragment) End() float64 {
	return f.X + f.Width
}

// Thresholds control line and word breaking during reconstruction.
type Thresholds struct {
	// Line is the vertical distance above which two consecutive fragments
	// are placed on separate lines.
	Line float64

	// Word is the horizontal gap above which a space is inserted between
	// two fragments on the same line.
	Word float64
}

// Default reconstruction thresholds, in page units. They are fixed values
// tied to the PDF point scale and do not adapt to font size.
const (
	DefaultLineThreshold = 5.0
	DefaultWordThreshold = 2.0
)

// DefaultThresholds returns the thresholds used unless a caller overrides them.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Line: DefaultLineThreshold,
		Word: DefaultWordThreshold,
	}
}
