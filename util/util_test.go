package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, Clamp(-3, 0, 127))
	assert.Equal(127, Clamp(140, 0, 127))
	assert.Equal(64, Clamp(64, 0, 127))
	assert.Equal(0.5, Clamp(0.5, 0.0, 1.0))
}

func TestGetKeysIsSorted(t *testing.T) {
	m := map[uint8]string{9: "a", 1: "b", 4: "c"}
	assert.Equal(t, []uint8{1, 4, 9}, GetKeys(m))
}

func TestFilterZeros(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]float64{220, 440}, FilterZeros([]float64{0, 220, 0, 440}))
	assert.Nil(FilterZeros([]int{0, 0}))
}
