package vocoder_test

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vocoder/dsp/vocoder"
)

func ExampleNew() {
	v, err := vocoder.New(16, 4, 48000,
		vocoder.WithReactionTime(0.01),
		vocoder.WithFormantShift(1.5),
	)
	if err != nil {
		fmt.Println("error")
		return
	}
	defer v.Close()

	cfg := v.Config()
	fmt.Printf("bands=%d filters=%d rt=%g shift=%g\n",
		cfg.Bands, cfg.FiltersPerBand, v.ReactionTime(), v.FormantShift())

	_, err = vocoder.New(2, 4, 48000)
	fmt.Println(errors.Is(err, vocoder.ErrInvalidConfig))
	// Output:
	// bands=16 filters=4 rt=0.01 shift=1.5
	// true
}

func ExampleVocoder_Process() {
	const sr = 44100

	v, err := vocoder.New(vocoder.DefaultBands, vocoder.DefaultFiltersPerBand, sr)
	if err != nil {
		fmt.Println("error")
		return
	}
	defer v.Close()

	carrier := make([]float64, 1000)
	modulator := make([]float64, 800)

	for i := range carrier {
		carrier[i] = 2*math.Mod(110*float64(i)/sr, 1) - 1
	}

	for i := range modulator {
		modulator[i] = math.Sin(2 * math.Pi * 440 * float64(i) / sr)
	}

	// The output always holds exactly the requested number of frames.
	out, err := v.Process(carrier, modulator, len(modulator))
	if err != nil {
		fmt.Println("error")
		return
	}

	_, err = v.Process(carrier, modulator, 0)

	fmt.Printf("len=%d\n", len(out))
	fmt.Println(errors.Is(err, vocoder.ErrInvalidInput))
	// Output:
	// len=800
	// true
}
