package imgfilter

import (
	"fmt"
	"strings"
)

// Mode selects which transform an Operation performs.
type Mode int

const (
	ModeIdentity Mode = iota
	ModeChannelZero
	ModeGrayscale
	ModeBinarize
	ModeBlur
	ModeEdgeDetect
	ModeHistogramEqualize
)

// Modes lists every mode in menu order.
var Modes = []Mode{
	ModeIdentity,
	ModeChannelZero,
	ModeGrayscale,
	ModeBinarize,
	ModeBlur,
	ModeEdgeDetect,
	ModeHistogramEqualize,
}

var modeNames = [...]string{
	ModeIdentity:          "identity",
	ModeChannelZero:       "channel-zero",
	ModeGrayscale:         "grayscale",
	ModeBinarize:          "binarize",
	ModeBlur:              "blur",
	ModeEdgeDetect:        "edge",
	ModeHistogramEqualize: "histogram",
}

var modeLabels = [...]string{
	ModeIdentity:          "None",
	ModeChannelZero:       "Blue to 0",
	ModeGrayscale:         "Grayscale",
	ModeBinarize:          "Binarization",
	ModeBlur:              "Blur",
	ModeEdgeDetect:        "Edge Detect",
	ModeHistogramEqualize: "Histogram",
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= ModeIdentity && m <= ModeHistogramEqualize
}

// String returns the command-line name of the mode.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Label returns the human-readable menu label of the mode.
func (m Mode) Label() string {
	if !m.Valid() {
		return m.String()
	}
	return modeLabels[m]
}

// ParseMode accepts either a mode name ("edge") or its label
// ("Edge Detect"), ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	for _, m := range Modes {
		if strings.EqualFold(s, modeNames[m]) || strings.EqualFold(s, modeLabels[m]) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
