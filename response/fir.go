package response

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// FIRSpectrum returns the spectrum of fir's taps on an n point grid from
// DC to Nyquist (n/2+1 bins). n is rounded up to a power of two that holds
// every tap; taps are zero-padded.
func FIRSpectrum(fir *FIR, n int) ([]complex128, error) {
	if fir == nil || len(fir.Coefficients) == 0 {
		return nil, fmt.Errorf("%w: fir stage without coefficients", ErrMissingStageData)
	}

	taps := fir.Taps()
	size := nextPowerOf2(max(n, len(taps), 2))

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	src := make([]complex128, size)
	for i, h := range taps {
		src[i] = complex(h, 0)
	}

	dst := make([]complex128, size)

	err = plan.Forward(dst, src)
	if err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}

	return dst[:size/2+1], nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
