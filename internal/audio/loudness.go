package audio

import "math"

// silenceFloor is the smallest magnitude fed to the decibel term. Without it
// a single zero sample makes the window average infinite.
const silenceFloor = 1e-6

// Loudness returns the mean of -20*log10(|s|) over window samples starting
// at start. Reads wrap around the source. A window shorter than one sample
// is treated as one sample.
func (s *Source) Loudness(start, window int) float64 {
	if window < 1 {
		window = 1
	}

	var db float64
	for i := 0; i < window; i++ {
		mag := math.Abs(float64(s.At(start + i)))
		if mag < silenceFloor {
			mag = silenceFloor
		}
		db += -(20 * math.Log10(mag))
	}
	return db / float64(window)
}

// Amplitude converts an average loudness into a brightness multiplier.
// The result is clamped to at most 1.0; there is no lower clamp.
func Amplitude(avgDb float64) float64 {
	amp := 20 / (1 + avgDb)
	// Also catches NaN from non-finite samples
	if !(amp < 1.0) {
		return 1.0
	}
	return amp
}

// WindowAmplitude is Amplitude(Loudness(start, window))
func (s *Source) WindowAmplitude(start, window int) float64 {
	return Amplitude(s.Loudness(start, window))
}
