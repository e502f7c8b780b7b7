package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform with the radix-2
// recursion. Inputs whose length is not a power of two are zero-padded
// to the next one first.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n&(n-1) != 0 {
		data = Pad(data)
		n = len(data)
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns the magnitude of the lower half of the spectrum.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// Pad right-pads data with zeros to the next power of two.
func Pad(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PeakFrequency returns the frequency in hz of the strongest nonzero
// bin, given the sample rate in hz of the transformed signal. The DC
// bin is skipped.
func PeakFrequency(ps []float64, sampleRate float64) float64 {
	maxIdx := 0
	maxPower := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}
	return float64(maxIdx) * sampleRate / float64(2*len(ps))
}
