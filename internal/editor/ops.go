package editor

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// BlurKind enumerates the blur algorithms offered by the adjust panel.
type BlurKind int

const (
	BlurAverage BlurKind = iota
	BlurGaussian
	BlurMedian
)

func (k BlurKind) String() string {
	switch k {
	case BlurAverage:
		return "Average"
	case BlurGaussian:
		return "Gaussian"
	case BlurMedian:
		return "Median"
	default:
		return "Unknown"
	}
}

// Slider ranges for the adjust panel. Brightness 1.0 and saturation 0 are
// the neutral positions.
const (
	MaxBlurSize       = 256
	MinBrightness     = 0.0
	MaxBrightness     = 2.0
	NeutralBrightness = 1.0
	MinSaturation     = -200.0
	MaxSaturation     = 200.0
)

// applyBlur blurs src with the given kernel size. The size is normalized to
// an odd value first; sizes below 1 are the caller's concern (treated as "no
// blur" upstream).
func applyBlur(k BlurKind, src image.Image, size int) *image.RGBA {
	if size%2 == 0 {
		size++
	}
	switch k {
	case BlurAverage:
		return blur.Box(src, float64(size)/2)
	case BlurGaussian:
		return blur.Gaussian(src, float64(size)/2)
	case BlurMedian:
		return effect.Median(src, float64(size))
	default:
		return clone.AsRGBA(src)
	}
}

// applyBrightness maps the panel's 0..2 slider (1.0 neutral) onto a relative
// brightness change.
func applyBrightness(src image.Image, value float64) *image.RGBA {
	return adjust.Brightness(src, value-NeutralBrightness)
}

// applySaturation maps the panel's -200..200 slider (0 neutral) onto a
// relative saturation change.
func applySaturation(src image.Image, value float64) *image.RGBA {
	return adjust.Saturation(src, value/100)
}

// TransformKind enumerates the one-shot geometric operations. Unlike filters
// and blur they operate on the current preview, so consecutive transforms
// compose before an apply.
type TransformKind int

const (
	RotateLeft TransformKind = iota
	RotateRight
	FlipHorizontal
	FlipVertical
)

func (k TransformKind) String() string {
	switch k {
	case RotateLeft:
		return "Rotate Left"
	case RotateRight:
		return "Rotate Right"
	case FlipHorizontal:
		return "Flip Horizontal"
	case FlipVertical:
		return "Flip Vertical"
	default:
		return "Unknown"
	}
}

// applyTransform rotates or mirrors src into a new buffer.
func applyTransform(k TransformKind, src image.Image) *image.RGBA {
	switch k {
	case RotateLeft:
		return clone.AsRGBA(imaging.Rotate90(src))
	case RotateRight:
		return clone.AsRGBA(imaging.Rotate270(src))
	case FlipHorizontal:
		return clone.AsRGBA(imaging.FlipH(src))
	case FlipVertical:
		return clone.AsRGBA(imaging.FlipV(src))
	default:
		return clone.AsRGBA(src)
	}
}
