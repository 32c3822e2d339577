package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBit(t *testing.T) {
	assert.True(t, Bit(0b1101_1000, 3))
	assert.True(t, Bit(0b1101_1000, 4))
	assert.False(t, Bit(0b1101_1000, 0))
	assert.True(t, Bit(0b1101_1000, 7))
}

func TestSetBit(t *testing.T) {
	assert.Equal(t, byte(0b0000_0001), SetBit(0, 0, true))
	assert.Equal(t, byte(0b1000_0000), SetBit(0, 7, true))
	assert.Equal(t, byte(0b1111_1101), SetBit(0xFF, 1, false))
}

func TestRange(t *testing.T) {
	assert.Equal(t, byte(0b11), Range(0b1101_1000, 3, 4))
	assert.Equal(t, byte(0b11), Range(0b1101_1000, 6, 7))
	assert.Equal(t, byte(0b00), Range(0b1101_1000, 0, 1))
}
