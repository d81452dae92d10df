package dither

import (
	"fmt"
	"strings"
)

// Preset identifies a noise-shaping coefficient set.
type Preset int

const (
	PresetNone  Preset = iota // no shaping
	PresetEFB                 // simple error feedback, 1st order
	Preset2SC                 // simple 2nd-order highpass
	Preset3FC                 // F-weighted, 3rd order
	Preset9FC                 // F-weighted, 9th order
	PresetSBM                 // Super Bit Mapping, 12th order
	PresetSharp               // 15 kHz rolloff chosen by sample rate

	presetCount
)

var presetNames = [presetCount]string{
	"none", "efb", "2sc", "3fc", "9fc", "sbm", "sharp",
}

// String returns the lower-case name used in flags and job files.
func (p Preset) String() string {
	if p.Valid() {
		return presetNames[p]
	}

	return fmt.Sprintf("Preset(%d)", int(p))
}

// Valid reports whether p is a known preset.
func (p Preset) Valid() bool {
	return p >= 0 && p < presetCount
}

// MarshalText implements encoding.TextMarshaler.
func (p Preset) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("dither: invalid preset: %d", int(p))
	}

	return []byte(presetNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Preset) UnmarshalText(text []byte) error {
	v, err := ParsePreset(string(text))
	if err != nil {
		return err
	}

	*p = v

	return nil
}

// ParsePreset returns the preset with the given name.
func ParsePreset(name string) (Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range presetNames {
		if n == name {
			return Preset(i), nil
		}
	}

	return PresetNone, fmt.Errorf("dither: unknown noise shaping preset %q (want one of %s)",
		name, strings.Join(presetNames[:], ", "))
}

// Coefficients returns a copy of the error-feedback coefficients for the
// given sample rate. Only PresetSharp depends on the rate. PresetNone
// returns nil.
func (p Preset) Coefficients(sampleRate float64) []float64 {
	var src []float64

	switch p {
	case PresetEFB:
		src = coeffEFB
	case Preset2SC:
		src = coeff2SC
	case Preset3FC:
		src = coeff3FC
	case Preset9FC:
		src = coeff9FC
	case PresetSBM:
		src = coeffSBM
	case PresetSharp:
		src = sharpForSampleRate(sampleRate)
	default:
		return nil
	}

	out := make([]float64, len(src))
	copy(out, src)

	return out
}

var coeffEFB = []float64{1}

var coeff2SC = []float64{1.0, -0.5}

var coeff3FC = []float64{1.623, -0.982, 0.109}

var coeff9FC = []float64{
	2.412, -3.370, 3.937, -4.174, 3.353,
	-2.205, 1.281, -0.569, 0.0847,
}

var coeffSBM = []float64{
	1.47933, -1.59032, 1.64436, -1.36613,
	0.926704, -0.557931, 0.26786, -0.106726,
	0.028516, 0.00123066, -0.00616555, 0.003067,
}

var coeff15kSharp40000 = []float64{
	0.919387305668676, -1.04843437730544,
	1.04843048925451, -0.868972788711174,
	0.60853001063849, -0.3449209471469,
	0.147484332561636, -0.0370652871194614,
}

var coeff15kSharp44100 = []float64{
	1.34860378444905, -1.80123976889643,
	2.04804746376671, -1.93234174830592,
	1.59264693241396, -1.04979311664936,
	0.599422666305319, -0.213194268754789,
}

var coeff15kSharp48000 = []float64{
	1.4247141061364, -1.5437678148854,
	1.0967969510044, -0.32075758107035,
	-0.32074811729292, 0.525494723539046,
	-0.38058984415197, 0.14824460513256,
}

var coeff15kSharp64000 = []float64{
	2.49725554745212, -3.23587161287721,
	2.31844946822861, -0.54326047010533,
	-0.54325301319653, 0.543289788745007,
	-0.142132484905, -0.0202120370327948,
}

var coeff15kSharp96000 = []float64{
	3.14014081409305, -3.76888037179035,
	1.26107138314221, 1.26088059917107,
	-0.807698715053922, -0.80767075968406,
	1.0101984930848, -0.322351688402064,
}

func sharpForSampleRate(sampleRate float64) []float64 {
	switch {
	case sampleRate < 41000:
		return coeff15kSharp40000
	case sampleRate < 46000:
		return coeff15kSharp44100
	case sampleRate < 55000:
		return coeff15kSharp48000
	case sampleRate < 75100:
		return coeff15kSharp64000
	default:
		return coeff15kSharp96000
	}
}
