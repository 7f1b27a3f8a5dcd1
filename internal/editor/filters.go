package editor

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// FilterKind enumerates the toggleable filters. The set is closed: adding a
// filter means extending this enumeration and the kernel switch, both checked
// at compile time.
type FilterKind int

const (
	FilterNegative FilterKind = iota
	FilterGrayscale
	FilterStylize
	FilterSketch
	FilterEmboss
	FilterSepia
	FilterBinary
	FilterErode
	FilterDilate

	filterKindCount
)

func (k FilterKind) String() string {
	switch k {
	case FilterNegative:
		return "Negative"
	case FilterGrayscale:
		return "Black & White"
	case FilterStylize:
		return "Stylize"
	case FilterSketch:
		return "Sketch"
	case FilterEmboss:
		return "Emboss"
	case FilterSepia:
		return "Sepia"
	case FilterBinary:
		return "Binary"
	case FilterErode:
		return "Erosion"
	case FilterDilate:
		return "Dilation"
	default:
		return "Unknown"
	}
}

// AllFilterKinds returns the filter kinds in display order.
func AllFilterKinds() []FilterKind {
	kinds := make([]FilterKind, 0, filterKindCount)
	for k := FilterKind(0); k < filterKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// binaryThreshold is the fixed cutoff for the binary filter.
const binaryThreshold = 128

// applyFilter runs the kernel for one filter kind over src and returns a new
// buffer. src is never modified.
func applyFilter(k FilterKind, src image.Image) *image.RGBA {
	switch k {
	case FilterNegative:
		return effect.Invert(src)
	case FilterGrayscale:
		return effect.Grayscale(src)
	case FilterStylize:
		return effect.Sharpen(src)
	case FilterSketch:
		return effect.Sobel(src)
	case FilterEmboss:
		return effect.Emboss(src)
	case FilterSepia:
		return effect.Sepia(src)
	case FilterBinary:
		return clone.AsRGBA(segment.Threshold(src, binaryThreshold))
	case FilterErode:
		return effect.Erode(src, 1)
	case FilterDilate:
		return effect.Dilate(src, 1)
	default:
		return clone.AsRGBA(src)
	}
}

// FilterToggleSet tracks which filters are currently on. Toggles do not
// compose: the preview reflects only the most recently toggled filter,
// recomputed from the committed image each time. Apply resets every flag.
type FilterToggleSet struct {
	active map[FilterKind]bool
}

// NewFilterToggleSet creates a toggle set with every filter off.
func NewFilterToggleSet() *FilterToggleSet {
	return &FilterToggleSet{active: make(map[FilterKind]bool)}
}

// Active reports whether the given filter is currently toggled on.
func (s *FilterToggleSet) Active(k FilterKind) bool {
	return s.active[k]
}

// ActiveKinds returns the kinds currently toggled on, in display order.
func (s *FilterToggleSet) ActiveKinds() []FilterKind {
	var kinds []FilterKind
	for k := FilterKind(0); k < filterKindCount; k++ {
		if s.active[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// toggle flips the flag for k and returns its new state.
func (s *FilterToggleSet) toggle(k FilterKind) bool {
	s.active[k] = !s.active[k]
	return s.active[k]
}

// Reset turns every filter off.
func (s *FilterToggleSet) Reset() {
	for k := range s.active {
		delete(s.active, k)
	}
}
