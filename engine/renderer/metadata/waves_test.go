package metadata

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWaveSetDirectionsAreUnit(t *testing.T) {
	ws := NewDefaultWaveSet()
	for i, w := range ws.Waves {
		length := math.Sqrt(float64(w.Direction.X()*w.Direction.X() + w.Direction.Y()*w.Direction.Y()))
		assert.InDelta(t, 1.0, length, 1e-3, "wave %d direction should be a unit vector", i)
	}
}

func TestDefaultWaveSetStaysBelowLoopThreshold(t *testing.T) {
	// Crests form loops once the summed steepness times amplitude
	// contributions exceed one.
	ws := NewDefaultWaveSet()
	total := float32(0)
	for _, w := range ws.Waves {
		total += w.Steepness * w.Amplitude
	}
	assert.Less(t, total, float32(1.0))
}

func TestWaveSetFlattening(t *testing.T) {
	ws := NewDefaultWaveSet()

	dirs := ws.Directions()
	assert.Len(t, dirs, 2*WaveCount)
	for i, w := range ws.Waves {
		assert.Equal(t, w.Direction.X(), dirs[2*i])
		assert.Equal(t, w.Direction.Y(), dirs[2*i+1])
	}

	amps := ws.Amplitudes()
	lengths := ws.Wavelengths()
	speeds := ws.Speeds()
	steeps := ws.Steepnesses()
	assert.Len(t, amps, WaveCount)
	assert.Len(t, lengths, WaveCount)
	assert.Len(t, speeds, WaveCount)
	assert.Len(t, steeps, WaveCount)
	for i, w := range ws.Waves {
		assert.Equal(t, w.Amplitude, amps[i])
		assert.Equal(t, w.Wavelength, lengths[i])
		assert.Equal(t, w.Speed, speeds[i])
		assert.Equal(t, w.Steepness, steeps[i])
	}
}
