package editor

import "errors"

// Error kinds for tool-level and commit-level failures. Actions degrade along
// a fixed chain (apply falls back to cancel, cancel to revert) and whatever
// remains is delivered to the ErrorSink; buffers are never left nil or
// aliased because of a failed action.
var (
	// ErrInvalidDimensions reports a zero or negative image size.
	ErrInvalidDimensions = errors.New("image dimensions must be positive")

	// ErrNoPreview reports an apply with no preview buffer to commit.
	ErrNoPreview = errors.New("no preview to apply")

	// ErrNoOriginal reports a revert before any image was loaded.
	ErrNoOriginal = errors.New("no original image loaded")

	// ErrUnsupportedFormat reports a file extension outside the supported set.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrIOFailure reports a failed read or write of an image file.
	ErrIOFailure = errors.New("image file access failed")

	// ErrSelectionTooSmall reports a crop selection below the minimum size or
	// one that clamps to an empty region of the image.
	ErrSelectionTooSmall = errors.New("selection too small to crop")
)

// ErrorSink receives failures that reach an action boundary. The UI supplies
// one at construction; a nil sink is replaced by a log fallback.
type ErrorSink func(error)
