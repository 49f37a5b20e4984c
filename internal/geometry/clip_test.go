package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipRuling_CrossingRuling(t *testing.T) {
	// horizontal ruling from (-10, 5) to (50, 5) against a 40x20 area
	r := NewRuling(-10, 5, 50, 5, 1.0)
	clip := NewRectangle(0, 0, 40, 20)

	clipped, ok := ClipRuling(r, clip)
	require.True(t, ok)
	assert.Equal(t, 0.0, clipped.X1)
	assert.Equal(t, 40.0, clipped.X2)
	assert.Equal(t, 5.0, clipped.Y1)
	assert.Equal(t, 5.0, clipped.Y2)
}

func TestClipRuling_FullyInsideIsUnchanged(t *testing.T) {
	r := NewRuling(5, 10, 35, 10, 1.0)
	clip := NewRectangle(0, 0, 40, 20)

	clipped, ok := ClipRuling(r, clip)
	require.True(t, ok)
	assert.Equal(t, r, clipped)
}

func TestClipRuling_FullyOutsideSharedRegionIsRejected(t *testing.T) {
	r := NewRuling(-10, -10, -5, -5, 1.0)
	clip := NewRectangle(0, 0, 40, 20)

	_, ok := ClipRuling(r, clip)
	assert.False(t, ok)
}

func TestClipRuling_Vertical(t *testing.T) {
	r := NewRuling(10, -5, 10, 100, 1.0)
	clip := NewRectangle(0, 0, 40, 20)

	clipped, ok := ClipRuling(r, clip)
	require.True(t, ok)
	assert.True(t, clipped.IsVertical())
	assert.Equal(t, 0.0, clipped.Y1)
	assert.Equal(t, 20.0, clipped.Y2)
	assert.Equal(t, 10.0, clipped.X1)
}

func TestClipRuling_OutsideButStraddlingRegions(t *testing.T) {
	// passes left of the clip rectangle: endpoints in different outside
	// regions but the segment never enters
	r := NewRuling(-5, -10, -5, 100, 1.0)
	clip := NewRectangle(0, 0, 40, 20)

	_, ok := ClipRuling(r, clip)
	assert.False(t, ok)
}
