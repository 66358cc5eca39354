package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexSeed_SimpleValue(t *testing.T) {
	seed, err := parseHexSeed("2a")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x2a), seed)
}

func TestParseHexSeed_OddLengthIsPadded(t *testing.T) {
	seed, err := parseHexSeed("a")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0a), seed)
}

func TestParseHexSeed_FullWidthValue(t *testing.T) {
	seed, err := parseHexSeed("deadbeef")
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), seed)
}

func TestParseHexSeed_OverlongValueTruncatesToLastFourBytes(t *testing.T) {
	seed, err := parseHexSeed("ffdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), seed)
}

func TestParseHexSeed_InvalidHexErrors(t *testing.T) {
	_, err := parseHexSeed("not-hex")
	assert.Error(t, err)
}

func TestParseHexSeed_EmptyStringIsZero(t *testing.T) {
	seed, err := parseHexSeed("")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), seed)
}
