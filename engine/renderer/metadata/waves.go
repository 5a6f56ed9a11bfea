package metadata

import "github.com/go-gl/mathgl/mgl32"

/** @brief The number of superimposed waves displacing a water surface. */
const WaveCount int = 4

/**
 * @brief A single Gerstner wave. Direction is a unit vector in the xz
 * plane; steepness controls how much crests sharpen, where the sum of
 * steepness times amplitude across all waves should stay below one to
 * avoid loops forming at the crests.
 */
type Wave struct {
	/** @brief Unit direction of travel in the xz plane. */
	Direction mgl32.Vec2
	/** @brief Crest height above the rest surface. */
	Amplitude float32
	/** @brief Distance between crests. */
	Wavelength float32
	/** @brief Phase speed along the direction of travel. */
	Speed float32
	/** @brief Crest sharpening factor in [0, 1]. */
	Steepness float32
}

/**
 * @brief The full set of waves displacing a surface. Uploaded to the
 * displacement shaders as flat uniform arrays.
 */
type WaveSet struct {
	Waves [WaveCount]Wave
}

// NewDefaultWaveSet returns a calm open-water wave set. One long primary
// swell with three shorter waves fanned around it, amplitudes falling
// off with wavelength.
func NewDefaultWaveSet() *WaveSet {
	return &WaveSet{
		Waves: [WaveCount]Wave{
			{Direction: mgl32.Vec2{1.0, 0.0}, Amplitude: 0.25, Wavelength: 6.0, Speed: 1.2, Steepness: 0.6},
			{Direction: mgl32.Vec2{0.7071, 0.7071}, Amplitude: 0.15, Wavelength: 3.5, Speed: 1.0, Steepness: 0.5},
			{Direction: mgl32.Vec2{0.0, 1.0}, Amplitude: 0.1, Wavelength: 2.0, Speed: 1.6, Steepness: 0.4},
			{Direction: mgl32.Vec2{-0.6, 0.8}, Amplitude: 0.05, Wavelength: 1.2, Speed: 2.0, Steepness: 0.3},
		},
	}
}

// Directions returns the wave directions flattened to pairs of floats,
// in wave order, for upload as a vec2 array uniform.
func (ws *WaveSet) Directions() []float32 {
	out := make([]float32, 2*WaveCount)
	for i, w := range ws.Waves {
		out[2*i] = w.Direction.X()
		out[2*i+1] = w.Direction.Y()
	}
	return out
}

// Amplitudes returns the wave amplitudes in wave order.
func (ws *WaveSet) Amplitudes() []float32 {
	out := make([]float32, WaveCount)
	for i, w := range ws.Waves {
		out[i] = w.Amplitude
	}
	return out
}

// Wavelengths returns the wavelengths in wave order.
func (ws *WaveSet) Wavelengths() []float32 {
	out := make([]float32, WaveCount)
	for i, w := range ws.Waves {
		out[i] = w.Wavelength
	}
	return out
}

// Speeds returns the phase speeds in wave order.
func (ws *WaveSet) Speeds() []float32 {
	out := make([]float32, WaveCount)
	for i, w := range ws.Waves {
		out[i] = w.Speed
	}
	return out
}

// Steepnesses returns the steepness factors in wave order.
func (ws *WaveSet) Steepnesses() []float32 {
	out := make([]float32, WaveCount)
	for i, w := range ws.Waves {
		out[i] = w.Steepness
	}
	return out
}
