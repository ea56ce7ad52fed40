package imgfilter

import "errors"

var (
	// ErrInvalidDimensions is returned for a nil source or one with zero
	// width or height.
	ErrInvalidDimensions = errors.New("invalid image dimensions")

	// ErrDegenerateHistogramRange is returned by HistogramEqualize under
	// DegenerateReject when every pixel has the same luma.
	ErrDegenerateHistogramRange = errors.New("degenerate histogram range")

	// ErrThresholdOutOfRange is returned for thresholds outside [0, 255]
	// when strict threshold checking is enabled.
	ErrThresholdOutOfRange = errors.New("threshold out of range")

	// ErrUnknownMode is returned when a mode name or value is not recognised.
	ErrUnknownMode = errors.New("unknown operation mode")
)
