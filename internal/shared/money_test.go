package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.556))
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, -10.56, Round2(-10.556))
	assert.Equal(t, 0.0, Round2(0))
	// Classic float residue collapses to the cent.
	assert.Equal(t, 0.3, Round2(0.1+0.2))
}

func TestAmountsEqual(t *testing.T) {
	assert.True(t, AmountsEqual(0.1+0.2, 0.3))
	assert.True(t, AmountsEqual(100, 100.004))
	assert.False(t, AmountsEqual(100, 100.02))
}
