package dither

import "testing"

func TestDitherTypeString(t *testing.T) {
	tests := []struct {
		dt   DitherType
		want string
	}{
		{DitherNone, "none"},
		{DitherRectangular, "rectangular"},
		{DitherTriangular, "triangular"},
		{DitherGaussian, "gaussian"},
		{DitherType(99), "DitherType(99)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.dt.String(); got != tt.want {
				t.Errorf("DitherType(%d).String() = %q, want %q", int(tt.dt), got, tt.want)
			}
		})
	}
}

func TestParseDitherType(t *testing.T) {
	tests := []struct {
		in      string
		want    DitherType
		wantErr bool
	}{
		{in: "none", want: DitherNone},
		{in: "TPDF", wantErr: true},
		{in: " Triangular ", want: DitherTriangular},
		{in: "GAUSSIAN", want: DitherGaussian},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDitherType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseDitherType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}

		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseDitherType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDitherTypeText(t *testing.T) {
	var dt DitherType
	if err := dt.UnmarshalText([]byte("rectangular")); err != nil {
		t.Fatal(err)
	}

	if dt != DitherRectangular {
		t.Fatalf("UnmarshalText = %v, want rectangular", dt)
	}

	if err := dt.UnmarshalText([]byte("pink")); err == nil {
		t.Fatal("expected error for unknown name")
	}

	if dt != DitherRectangular {
		t.Fatalf("failed UnmarshalText changed value to %v", dt)
	}

	text, err := DitherGaussian.MarshalText()
	if err != nil || string(text) != "gaussian" {
		t.Fatalf("MarshalText = (%q, %v)", text, err)
	}

	if _, err := DitherType(-1).MarshalText(); err == nil {
		t.Fatal("expected error for invalid dither type")
	}
}
