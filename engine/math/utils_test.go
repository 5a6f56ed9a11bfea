package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(5, 0, 10))
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(42, 0, 10))
	assert.Equal(t, 0.001, Clamp(-0.5, 0.001, 3.14))
	assert.Equal(t, float32(1.0), Clamp(float32(1.0), float32(0.0), float32(2.0)))
}

func TestNextPow2(t *testing.T) {
	tests := []struct {
		in   uint32
		want uint32
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{17, 32},
		{256, 256},
		{257, 512},
		{1023, 1024},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextPow2(tt.in), "NextPow2(%d)", tt.in)
	}
}
