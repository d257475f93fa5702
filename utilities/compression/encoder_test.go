package compression_test

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/dargueta/packrle"
	"github.com/dargueta/packrle/block"
	"github.com/dargueta/packrle/source"
	pt "github.com/dargueta/packrle/testing"
	c "github.com/dargueta/packrle/utilities/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var qwertyPattern = []byte("qwertyuiop")

type EncoderTestCase struct {
	Input          []byte
	ExpectedOutput []block.Block
	Name           string
}

func encoderTestCases() []EncoderTestCase {
	longLiteral := bytes.Repeat(qwertyPattern, 13)

	return []EncoderTestCase{
		{[]byte{}, []block.Block{}, "empty"},
		{[]byte("a"), []block.Block{block.Run('a', 1)}, "single byte"},
		{[]byte("aaa"), []block.Block{block.Run('a', 3)}, "one run"},
		{
			[]byte("aaabb"),
			[]block.Block{block.Run('a', 3), block.Run('b', 2)},
			"adjacent runs",
		},
		{
			[]byte("aaabbc"),
			[]block.Block{block.Run('a', 3), block.Run('b', 2), block.Run('c', 1)},
			"lone byte at end",
		},
		{[]byte("ab"), []block.Block{block.Literal('a', 'b')}, "two different"},
		{
			[]byte("abcabc"),
			[]block.Block{block.Literal([]byte("abcabc")...)},
			"no runs",
		},
		{
			[]byte("abb"),
			[]block.Block{block.Literal('a'), block.Run('b', 2)},
			"literal cut by run",
		},
		{
			[]byte("aaabcdeee"),
			[]block.Block{block.Run('a', 3), block.Literal('b', 'c', 'd'), block.Run('e', 3)},
			"run literal run",
		},
		{
			bytes.Repeat([]byte{'a'}, 130),
			[]block.Block{block.Run('a', 128), block.Run('a', 2)},
			"130 same",
		},
		{
			bytes.Repeat([]byte{'a'}, 129),
			[]block.Block{block.Run('a', 128), block.Run('a', 1)},
			"129 same",
		},
		{
			bytes.Repeat([]byte{0}, 256),
			[]block.Block{block.Run(0, 128), block.Run(0, 128)},
			"exactly two full runs",
		},
		{
			append(bytes.Repeat([]byte{'a'}, 129), 'b'),
			[]block.Block{block.Run('a', 128), block.Literal('a', 'b')},
			"run overflow starts literal",
		},
		{
			longLiteral,
			[]block.Block{block.Literal(longLiteral[:128]...), block.Literal('o', 'p')},
			"130 different",
		},
		{
			append(pt.NoAdjacentDuplicates(qwertyPattern, 128), 'z', 'z'),
			[]block.Block{
				block.Literal(pt.NoAdjacentDuplicates(qwertyPattern, 128)...),
				block.Run('z', 2),
			},
			"full literal then run",
		},
	}
}

func TestCompress__Basic(t *testing.T) {
	for _, test := range encoderTestCases() {
		t.Run(
			test.Name,
			func(t *testing.T) {
				blocks, err := c.Compress(source.NewMemorySource(test.Input))
				require.NoError(t, err)
				assertBlocksEqual(t, test.ExpectedOutput, blocks)

				// The same input through a reader must give the same blocks.
				blocks, err = c.Compress(source.NewReaderSource(bytes.NewReader(test.Input)))
				require.NoError(t, err)
				assertBlocksEqual(t, test.ExpectedOutput, blocks)
			},
		)
	}
}

func TestCompress__MaximalRunSplitting(t *testing.T) {
	// A run whose length is 1 more than a multiple of 128 leaves a single byte
	// that joins the following literal, so those lengths are left out here.
	for _, runLength := range []int{2, 3, 127, 128, 130, 255, 256, 300, 1000} {
		input := []byte{'x'}
		input = append(input, bytes.Repeat([]byte{'a'}, runLength)...)
		input = append(input, 'z')

		blocks := c.CompressBytes(input)
		assertBlockInvariants(t, blocks)

		runCount := 0
		total := 0
		for _, b := range blocks {
			if b.IsRun() && b.Symbol() == 'a' {
				runCount++
				total += b.Size()
			}
		}
		assert.Equal(t, (runLength+127)/128, runCount, "wrong number of runs for %d", runLength)
		assert.Equal(t, runLength, total, "run lengths don't add up for %d", runLength)
	}
}

func TestCompress__RandomInvariants(t *testing.T) {
	inputs := map[string][]byte{
		"random":  pt.RandomBytes(t, 4093),
		"runs":    randomRuns(t, 200),
		"nulls":   make([]byte, 1000),
		"pattern": pt.NoAdjacentDuplicates([]byte{1, 2, 3}, 999),
	}

	for name, input := range inputs {
		t.Run(
			name,
			func(t *testing.T) {
				blocks := c.CompressBytes(input)
				assertBlockInvariants(t, blocks)

				output, err := c.Decompress(blocks)
				require.NoError(t, err)
				assert.Equal(t, input, output, "round trip failed")
			},
		)
	}
}

func TestEncoder__Incremental(t *testing.T) {
	enc := c.NewEncoder(source.NewMemorySource([]byte("aaabcdeee")))

	first, err := enc.Next()
	require.NoError(t, err)
	assert.True(t, block.Run('a', 3).Equal(first))

	second, err := enc.Next()
	require.NoError(t, err)
	assert.True(t, block.Literal('b', 'c', 'd').Equal(second))

	third, err := enc.Next()
	require.NoError(t, err)
	assert.True(t, block.Run('e', 3).Equal(third))

	_, err = enc.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = enc.Next()
	assert.ErrorIs(t, err, io.EOF, "EOF should be sticky")
}

func TestCompress__SourceFailure(t *testing.T) {
	failure := errors.New("read failed")
	rd := io.MultiReader(bytes.NewReader([]byte("aaaabcd")), iotest.ErrReader(failure))

	blocks, err := c.Compress(source.NewReaderSource(rd))
	require.Error(t, err)
	assert.ErrorIs(t, err, packrle.ErrSourceRead)
	assert.ErrorIs(t, err, failure)
	assert.Nil(t, blocks, "partial output returned on failure")
}

func TestCompress__Concurrent(t *testing.T) {
	inputs := make([][]byte, 8)
	for i := range inputs {
		inputs[i] = randomRuns(t, 50)
	}

	results := make([][]byte, len(inputs))
	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Decompress(c.CompressBytes(inputs[i]))
		}(i)
	}
	wg.Wait()

	for i := range inputs {
		assert.NoError(t, errs[i], "decoding input %d failed", i)
		assert.Equal(t, inputs[i], results[i], "input %d corrupted", i)
	}
}

////////////////////////////////////////////////////////////////////////////////
// Helper functions

func assertBlocksEqual(t *testing.T, expected, actual []block.Block) {
	if !assert.Equal(t, len(expected), len(actual), "wrong number of blocks: %v", actual) {
		return
	}
	for i := range expected {
		assert.True(
			t,
			expected[i].Equal(actual[i]),
			"block %d is wrong: expected %s, got %s",
			i,
			expected[i],
			actual[i],
		)
	}
}

// assertBlockInvariants checks the size bounds of every block and that no
// literal contains two adjacent equal bytes.
func assertBlockInvariants(t *testing.T, blocks []block.Block) {
	for i, b := range blocks {
		assert.NoError(t, b.Validate(), "block %d out of bounds", i)
		if !b.IsLiteral() {
			continue
		}

		symbols := b.Symbols()
		for j := 1; j < len(symbols); j++ {
			assert.NotEqual(
				t, symbols[j-1], symbols[j], "literal %d has a duplicate at %d", i, j)
		}
	}
}

// randomRuns builds data out of `numRuns` runs of random bytes with random
// lengths between 1 and 400.
func randomRuns(t *testing.T, numRuns int) []byte {
	seed := pt.RandomBytes(t, numRuns*3)
	output := []byte{}
	for i := 0; i < numRuns; i++ {
		length := (int(seed[i*3])<<8|int(seed[i*3+1]))%400 + 1
		output = append(output, bytes.Repeat([]byte{seed[i*3+2]}, length)...)
	}
	return output
}
