package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXorshift32_DeterministicSequence(t *testing.T) {
	a := NewXorshift32(42)
	b := NewXorshift32(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestXorshift32_ZeroSeedRemappedToOne(t *testing.T) {
	a := NewXorshift32(0)
	b := NewXorshift32(1)
	assert.Equal(t, a.Next(), b.Next())
}

func TestXorshift32_Float32InStaysInRange(t *testing.T) {
	x := NewXorshift32(7)
	for i := 0; i < 1000; i++ {
		v := x.Float32In(-5, 5)
		assert.GreaterOrEqual(t, v, float32(-5))
		assert.LessOrEqual(t, v, float32(5))
	}
}

func TestGenerateDeltas_DeterministicAndCorrectLength(t *testing.T) {
	a := GenerateDeltas(42, 300, -5, 5)
	b := GenerateDeltas(42, 300, -5, 5)
	assert.Len(t, a, 300)
	assert.Equal(t, a, b)
}

func TestGenerateDeltas_HostTicksAreSequential(t *testing.T) {
	events := GenerateDeltas(1, 5, -1, 1)
	for i, ev := range events {
		assert.Equal(t, int64(i), ev.HostTicks)
	}
}
