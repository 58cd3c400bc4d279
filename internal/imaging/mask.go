package imaging

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Mask is a binary pixel grid with the same dimensions as the image it
// was derived from. True marks a pixel of interest (roof material, edge
// pixel, filled polygon interior).
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

// NewMask creates an all-false mask of the given dimensions.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		bits:   make([]bool, width*height),
	}
}

// At reports whether the pixel at (x, y) is set. Coordinates outside
// the mask are always false, so callers can probe neighborhoods without
// bounds checks.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Set sets the pixel at (x, y). Out-of-bounds coordinates are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.bits[y*m.Width+x] = v
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	out := NewMask(m.Width, m.Height)
	copy(out.bits, m.bits)
	return out
}

// And returns the intersection of two same-sized masks.
func (m *Mask) And(other *Mask) *Mask {
	out := NewMask(m.Width, m.Height)
	for i := range m.bits {
		out.bits[i] = m.bits[i] && other.bits[i]
	}
	return out
}

// Subtract returns a mask with the pixels of other cleared from m.
func (m *Mask) Subtract(other *Mask) *Mask {
	out := NewMask(m.Width, m.Height)
	for i := range m.bits {
		out.bits[i] = m.bits[i] && !other.bits[i]
	}
	return out
}

// ToGray renders the mask as a grayscale image with set pixels at 255.
func (m *Mask) ToGray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) {
				g.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return g
}

// MaskFromImage thresholds any image back into a binary mask. Pixels
// with luminance >= 128 are set. Used to round-trip masks through
// image-to-image operations such as morphology.
func MaskFromImage(img image.Image) *Mask {
	bounds := img.Bounds()
	m := NewMask(bounds.Dx(), bounds.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			if lum >= 128 {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

// ColorBand is an inclusion range in HSV space describing one family of
// roof material colors. Hue is in degrees [0, 360); saturation and
// value are in [0, 1].
type ColorBand struct {
	// Name identifies the material family, for logging only.
	Name string

	MinHue float64
	MaxHue float64
	MinSat float64
	MaxSat float64
	MinVal float64
	MaxVal float64
}

// Contains reports whether the HSV triple falls inside the band.
func (b ColorBand) Contains(h, s, v float64) bool {
	return h >= b.MinHue && h <= b.MaxHue &&
		s >= b.MinSat && s <= b.MaxSat &&
		v >= b.MinVal && v <= b.MaxVal
}

// DefaultRoofBands returns the color bands for common roof materials.
//
// The ranges are deliberately wide: false positives from same-colored
// ground surfaces (roads, driveways, concrete) are filtered later by
// the area and compactness checks, not here. Red/terracotta hues wrap
// around 0°/360° and are represented as two separate bands so band
// matching never needs wraparound arithmetic.
func DefaultRoofBands() []ColorBand {
	return []ColorBand{
		{Name: "asphalt-gray", MinHue: 0, MaxHue: 360, MinSat: 0, MaxSat: 0.196, MinVal: 0.157, MaxVal: 0.706},
		{Name: "brown-shingle", MinHue: 16, MaxHue: 60, MinSat: 0.118, MaxSat: 0.863, MinVal: 0.196, MaxVal: 0.784},
		{Name: "near-black", MinHue: 0, MaxHue: 360, MinSat: 0, MaxSat: 0.196, MinVal: 0.059, MaxVal: 0.353},
		{Name: "terracotta-low", MinHue: 0, MaxHue: 24, MinSat: 0.235, MaxSat: 1, MinVal: 0.275, MaxVal: 0.902},
		{Name: "terracotta-high", MinHue: 336, MaxHue: 360, MinSat: 0.235, MaxSat: 1, MinVal: 0.275, MaxVal: 0.902},
		{Name: "blue", MinHue: 200, MaxHue: 270, MinSat: 0.157, MaxSat: 0.863, MinVal: 0.196, MaxVal: 0.824},
		{Name: "slate-blue-gray", MinHue: 190, MaxHue: 270, MinSat: 0.059, MaxSat: 0.392, MinVal: 0.196, MaxVal: 0.706},
		{Name: "green-moss", MinHue: 70, MaxHue: 170, MinSat: 0.118, MaxSat: 0.706, MinVal: 0.157, MaxVal: 0.706},
	}
}

// BuildRoofMask thresholds an image into a binary roof-material mask.
//
// Each pixel is converted to HSV and tested against every band; the
// resulting mask is the union of all band matches. An image with no
// matching pixels produces an all-false mask; this is not an error,
// and downstream stages handle it by reporting an empty segmentation.
func BuildRoofMask(img image.Image, bands []ColorBand) *Mask {
	bounds := img.Bounds()
	m := NewMask(bounds.Dx(), bounds.Dy())

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			c := colorful.Color{
				R: float64(r>>8) / 255.0,
				G: float64(g>>8) / 255.0,
				B: float64(b>>8) / 255.0,
			}
			h, s, v := c.Hsv()
			for _, band := range bands {
				if band.Contains(h, s, v) {
					m.Set(x, y, true)
					break
				}
			}
		}
	}
	return m
}
