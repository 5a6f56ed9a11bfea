package core

import "sync"

const frameSampleCount = 30

// MetricsState tracks a rolling frame-time average and a once-per-second
// FPS figure for the HUD overlay.
type MetricsState struct {
	samples     [frameSampleCount]float64
	sampleSum   float64
	sampleIndex int
	frameMSAvg  float64

	frames        int32
	accumulatedMS float64
	fps           float64
}

var onceMetrics sync.Once
var metricsState *MetricsState

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{}
	})
	return nil
}

// MetricsUpdate records one frame. elapsed is in seconds.
func MetricsUpdate(elapsed float64) {
	frameMS := elapsed * 1000.0

	// Rolling window: drop the oldest sample, add the newest.
	metricsState.sampleSum += frameMS - metricsState.samples[metricsState.sampleIndex]
	metricsState.samples[metricsState.sampleIndex] = frameMS
	metricsState.sampleIndex = (metricsState.sampleIndex + 1) % frameSampleCount
	metricsState.frameMSAvg = metricsState.sampleSum / frameSampleCount

	metricsState.frames++
	metricsState.accumulatedMS += frameMS
	if metricsState.accumulatedMS > 1000 {
		metricsState.fps = float64(metricsState.frames)
		metricsState.accumulatedMS -= 1000
		metricsState.frames = 0
	}
}

func MetricsFPS() float64 {
	return metricsState.fps
}

func MetricsFrameTime() float64 {
	return metricsState.frameMSAvg
}

// MetricsFrame returns the current FPS and averaged frame time in ms.
func MetricsFrame() (float64, float64) {
	return metricsState.fps, metricsState.frameMSAvg
}
