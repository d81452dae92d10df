package dither

import "testing"

func TestPresetCoefficients(t *testing.T) {
	tests := []struct {
		preset Preset
		order  int
		first  float64
		last   float64
	}{
		{PresetEFB, 1, 1.0, 1.0},
		{Preset2SC, 2, 1.0, -0.5},
		{Preset3FC, 3, 1.623, 0.109},
		{Preset9FC, 9, 2.412, 0.0847},
		{PresetSBM, 12, 1.47933, 0.003067},
	}
	for _, tt := range tests {
		t.Run(tt.preset.String(), func(t *testing.T) {
			c := tt.preset.Coefficients(44100)
			if len(c) != tt.order {
				t.Fatalf("order = %d, want %d", len(c), tt.order)
			}

			if c[0] != tt.first || c[len(c)-1] != tt.last {
				t.Errorf("coefficients = %v, want first %v last %v", c, tt.first, tt.last)
			}
		})
	}
}

func TestPresetNoneIsEmpty(t *testing.T) {
	if c := PresetNone.Coefficients(44100); c != nil {
		t.Errorf("PresetNone should return nil, got %v", c)
	}

	if c := Preset(42).Coefficients(44100); c != nil {
		t.Errorf("invalid preset should return nil, got %v", c)
	}
}

func TestPresetCoefficientsAreCopies(t *testing.T) {
	c := Preset9FC.Coefficients(44100)
	c[0] = 0

	if Preset9FC.Coefficients(44100)[0] != 2.412 {
		t.Fatal("Coefficients exposed the shared table")
	}
}

func TestSharpPresetFollowsSampleRate(t *testing.T) {
	tests := []struct {
		sr    float64
		first float64
	}{
		{32000, 0.919387305668676},
		{44100, 1.34860378444905},
		{48000, 1.4247141061364},
		{64000, 2.49725554745212},
		{96000, 3.14014081409305},
		{192000, 3.14014081409305},
	}
	for _, tt := range tests {
		c := PresetSharp.Coefficients(tt.sr)
		if len(c) != 8 || c[0] != tt.first {
			t.Errorf("sr=%g: coefficients start %v, want %v", tt.sr, c[0], tt.first)
		}
	}
}

func TestParsePreset(t *testing.T) {
	for p := range presetCount {
		got, err := ParsePreset(p.String())
		if err != nil || got != p {
			t.Fatalf("ParsePreset(%q) = (%v, %v)", p.String(), got, err)
		}
	}

	if _, err := ParsePreset("9MEC"); err == nil {
		t.Fatal("expected error for unknown preset")
	}

	var p Preset
	if err := p.UnmarshalText([]byte("Sharp")); err != nil || p != PresetSharp {
		t.Fatalf("UnmarshalText(Sharp) = (%v, %v)", p, err)
	}

	if got := Preset(99).String(); got != "Preset(99)" {
		t.Errorf("Preset(99).String() = %q", got)
	}

	if _, err := Preset(99).MarshalText(); err == nil {
		t.Error("expected MarshalText error for invalid preset")
	}
}
