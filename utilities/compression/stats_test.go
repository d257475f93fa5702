package compression_test

import (
	"bytes"
	"testing"

	"github.com/dargueta/packrle/block"
	c "github.com/dargueta/packrle/utilities/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	blocks := c.CompressBytes([]byte("aaabcdeeeaa"))
	stats := c.Analyze(blocks)

	assert.Equal(t, 4, stats.Blocks)
	assert.Equal(t, 3, stats.RunBlocks)
	assert.Equal(t, 1, stats.LiteralBlocks)
	assert.EqualValues(t, 11, stats.DecodedSize)

	encoded, err := c.MarshalBlocks(blocks)
	require.NoError(t, err)
	assert.EqualValues(t, len(encoded), stats.EncodedSize)

	assert.True(t, stats.RunSymbols.Get('a'))
	assert.True(t, stats.RunSymbols.Get('e'))
	assert.False(t, stats.RunSymbols.Get('b'), "literal bytes counted as runs")
	assert.Equal(t, 2, stats.DistinctRunSymbols())
	assert.InDelta(t, 14.0/11.0, stats.Ratio(), 1e-9)
}

func TestAnalyze__Empty(t *testing.T) {
	stats := c.Analyze(nil)
	assert.Equal(t, 0, stats.Blocks)
	assert.Equal(t, 0, stats.DistinctRunSymbols())
	assert.Equal(t, 0.0, stats.Ratio())
}

func TestManifest(t *testing.T) {
	blocks := []block.Block{block.Run('a', 3), block.Literal('b', 'c', 'd'), block.Run(0, 2)}
	rows := c.Manifest(blocks)

	expected := []c.ManifestRow{
		{Index: 0, Kind: "run", Offset: 0, Size: 3, Symbol: "61"},
		{Index: 1, Kind: "literal", Offset: 3, Size: 3, Symbol: ""},
		{Index: 2, Kind: "run", Offset: 6, Size: 2, Symbol: "00"},
	}
	assert.Equal(t, expected, rows)

	output := bytes.Buffer{}
	require.NoError(t, c.WriteManifest(&output, blocks))
	assert.Equal(
		t,
		"index,kind,offset,size,symbol\n0,run,0,3,61\n1,literal,3,3,\n2,run,6,2,00\n",
		output.String(),
	)
}
