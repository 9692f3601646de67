package scale

import "fmt"

// FontSize is a logical font size for density-independent text. Instead of
// hardcoded point sizes, consumers pick a logical size and derive the
// rendered point size from the active factor, so the same role (body text,
// section header) stays visually consistent across densities.
type FontSize int

// Logical font sizes with their baseline roles.
const (
	// FontTiny is for tooltips and minor labels (9pt at baseline).
	FontTiny FontSize = iota

	// FontSmall is for secondary text and captions (10pt at baseline).
	FontSmall

	// FontNormal is for body text and form fields (12pt at baseline).
	FontNormal

	// FontMedium is for emphasized text (14pt at baseline).
	FontMedium

	// FontLarge is for section headers (16pt at baseline).
	FontLarge

	// FontXLarge is for dialog titles (18pt at baseline).
	FontXLarge

	// FontHuge is for main titles (24pt at baseline).
	FontHuge
)

var fontBasePoints = [...]int{9, 10, 12, 14, 16, 18, 24}

var fontNames = [...]string{"tiny", "small", "normal", "medium", "large", "xlarge", "huge"}

// Base returns the point size at factor 1.0.
func (fs FontSize) Base() int {
	if fs < 0 || int(fs) >= len(fontBasePoints) {
		return fontBasePoints[FontNormal]
	}
	return fontBasePoints[fs]
}

// Points returns the rendered point size at the given factor, rounded half
// away from zero.
func (fs FontSize) Points(factor float64) int {
	return Scale(fs.Base(), factor)
}

// String returns the logical size name.
func (fs FontSize) String() string {
	if fs < 0 || int(fs) >= len(fontNames) {
		return fmt.Sprintf("FontSize(%d)", int(fs))
	}
	return fontNames[fs]
}
