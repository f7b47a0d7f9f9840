package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMaxClamp(t *testing.T) {
	assert.Equal(t, 3, Min(3, 7))
	assert.Equal(t, 7, Max(3, 7))
	assert.Equal(t, uint64(5), Clamp(uint64(2), uint64(5), uint64(10)))
	assert.Equal(t, uint64(10), Clamp(uint64(99), uint64(5), uint64(10)))
	assert.Equal(t, uint64(7), Clamp(uint64(7), uint64(5), uint64(10)))
}
