package dither

import (
	"fmt"
	"strings"
)

// DitherType selects the probability distribution used for dither noise.
type DitherType int

const (
	// DitherNone applies no dither. Silence stays digital silence.
	DitherNone DitherType = iota
	// DitherRectangular uses a uniform PDF.
	DitherRectangular
	// DitherTriangular uses a triangular PDF (TPDF).
	DitherTriangular
	// DitherGaussian uses a Gaussian PDF.
	DitherGaussian

	ditherTypeCount
)

var ditherTypeNames = [ditherTypeCount]string{
	"none", "rectangular", "triangular", "gaussian",
}

// String returns the lower-case name used in flags and job files.
func (dt DitherType) String() string {
	if dt.Valid() {
		return ditherTypeNames[dt]
	}

	return fmt.Sprintf("DitherType(%d)", int(dt))
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}

// MarshalText implements encoding.TextMarshaler.
func (dt DitherType) MarshalText() ([]byte, error) {
	if !dt.Valid() {
		return nil, fmt.Errorf("dither: invalid dither type: %d", int(dt))
	}

	return []byte(ditherTypeNames[dt]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are matched
// case-insensitively.
func (dt *DitherType) UnmarshalText(text []byte) error {
	v, err := ParseDitherType(string(text))
	if err != nil {
		return err
	}

	*dt = v

	return nil
}

// ParseDitherType returns the dither type with the given name.
func ParseDitherType(name string) (DitherType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range ditherTypeNames {
		if n == name {
			return DitherType(i), nil
		}
	}

	return DitherNone, fmt.Errorf("dither: unknown dither type %q (want one of %s)",
		name, strings.Join(ditherTypeNames[:], ", "))
}
