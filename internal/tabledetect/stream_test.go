package tabledetect

import (
	"testing"

	"github.com/coregx/pdftab/internal/geometry"
	"github.com/coregx/pdftab/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wideGlyph builds a glyph sized like a whole word, so each one becomes its
// own chunk under the default merge rule.
func wideGlyph(text string, top, left float64) layout.Glyph {
	return layout.NewGlyph(text, geometry.NewRectangle(top, left, 20, 10), "Helvetica", 10, 5)
}

// threeColumnGlyphs lays out rows of three word-chunks at left positions
// 10, 80, 150 — the column-guessing fixture.
func threeColumnGlyphs(rows int) []layout.Glyph {
	var glyphs []layout.Glyph
	words := [][]string{
		{"alpha", "beta", "gamma"},
		{"one", "two", "three"},
		{"x", "y", "z"},
	}
	for r := 0; r < rows; r++ {
		top := float64(r) * 20
		for c, left := range []float64{10, 80, 150} {
			glyphs = append(glyphs, wideGlyph(words[r%len(words)][c], top, left))
		}
	}
	return glyphs
}

func TestStreamExtractor_ColumnGuessing(t *testing.T) {
	p := newTestPage(threeColumnGlyphs(3), nil)

	tbl := NewStreamExtractor(DefaultConfig()).Extract(p, nil)
	require.NotNil(t, tbl)

	assert.Equal(t, 3, tbl.RowCount)
	assert.Equal(t, 3, tbl.ColCount)
	assert.Equal(t, [][]string{
		{"alpha", "beta", "gamma"},
		{"one", "two", "three"},
		{"x", "y", "z"},
	}, tbl.ToStringGrid())
}

func TestStreamExtractor_ExternalColumnsWinOverGuessing(t *testing.T) {
	p := newTestPage(threeColumnGlyphs(3), nil)

	// a single external boundary at x=100 forces two columns
	tbl := NewStreamExtractor(DefaultConfig()).Extract(p, []float64{100})
	require.NotNil(t, tbl)

	assert.Equal(t, 2, tbl.ColCount)
	assert.Equal(t, "alpha beta", tbl.GetCell(0, 0).Text)
	assert.Equal(t, "gamma", tbl.GetCell(0, 1).Text)
}

func TestStreamExtractor_VerticalRulingsBeatGapGuessing(t *testing.T) {
	glyphs := threeColumnGlyphs(3)
	rulings := []geometry.Ruling{
		geometry.NewRuling(70, 0, 70, 60, 1.0),
		geometry.NewRuling(140, 0, 140, 60, 1.0),
	}
	p := newTestPage(glyphs, rulings)

	tbl := NewStreamExtractor(DefaultConfig()).Extract(p, nil)
	require.NotNil(t, tbl)
	assert.Equal(t, 3, tbl.ColCount)
}

func TestStreamExtractor_SingleColumnFallback(t *testing.T) {
	// one word per line: no gaps, no rulings, no external columns
	glyphs := []layout.Glyph{
		wideGlyph("only", 0, 10),
		wideGlyph("words", 20, 10),
	}
	p := newTestPage(glyphs, nil)

	tbl := NewStreamExtractor(DefaultConfig()).Extract(p, nil)
	require.NotNil(t, tbl)
	assert.Equal(t, 2, tbl.RowCount)
	assert.Equal(t, 1, tbl.ColCount)
}

func TestStreamExtractor_EmptyPage(t *testing.T) {
	p := newTestPage(nil, nil)
	assert.Nil(t, NewStreamExtractor(DefaultConfig()).Extract(p, nil))
}

func TestStreamExtractor_InfrequentGapsAreNotColumns(t *testing.T) {
	// nine single-word lines plus one line with a second word: the lone
	// gap appears in 10% of lines, under the 30% cluster threshold
	var glyphs []layout.Glyph
	for r := 0; r < 9; r++ {
		glyphs = append(glyphs, wideGlyph("word", float64(r)*20, 10))
	}
	glyphs = append(glyphs, wideGlyph("left", 180, 10), wideGlyph("right", 180, 150))
	p := newTestPage(glyphs, nil)

	tbl := NewStreamExtractor(DefaultConfig()).Extract(p, nil)
	require.NotNil(t, tbl)
	assert.Equal(t, 1, tbl.ColCount)
}

func TestClusterByProximity(t *testing.T) {
	clusters := clusterByProximity([]float64{1, 2, 3, 20, 21, 50}, 5.0)
	require.Len(t, clusters, 3)
	assert.Equal(t, []float64{1, 2, 3}, clusters[0])
	assert.Equal(t, []float64{20, 21}, clusters[1])
	assert.Equal(t, []float64{50}, clusters[2])
}
