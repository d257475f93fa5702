package compression

import (
	"fmt"
	"io"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/packrle/block"
	"github.com/gocarina/gocsv"
)

// Stats summarizes a block sequence.
type Stats struct {
	Blocks        int
	RunBlocks     int
	LiteralBlocks int
	// DecodedSize is the number of bytes the blocks expand to.
	DecodedSize int64
	// EncodedSize is the number of bytes the blocks take up in the wire format.
	EncodedSize int64
	// RunSymbols has bit N set if byte value N occurs in at least one run block.
	RunSymbols bitmap.Bitmap
}

// Analyze computes [Stats] for the blocks. Malformed blocks are counted as-is;
// validate first if that matters.
func Analyze(blocks []block.Block) Stats {
	stats := Stats{
		Blocks:     len(blocks),
		RunSymbols: bitmap.New(256),
	}

	for _, b := range blocks {
		size := int64(b.Size())
		stats.DecodedSize += size

		switch b.Kind() {
		case block.KindRun:
			stats.RunBlocks++
			stats.EncodedSize += 3
			stats.RunSymbols.Set(int(b.Symbol()), true)
		case block.KindLiteral:
			stats.LiteralBlocks++
			stats.EncodedSize += 2 + size
		}
	}
	return stats
}

// Ratio gives the encoded size as a fraction of the decoded size. It's 0 for an
// empty sequence.
func (stats Stats) Ratio() float64 {
	if stats.DecodedSize == 0 {
		return 0
	}
	return float64(stats.EncodedSize) / float64(stats.DecodedSize)
}

// DistinctRunSymbols gives the number of different byte values used in runs.
func (stats Stats) DistinctRunSymbols() int {
	total := 0
	for i := 0; i < 256; i++ {
		if stats.RunSymbols.Get(i) {
			total++
		}
	}
	return total
}

// ManifestRow describes one block in a CSV manifest.
type ManifestRow struct {
	Index  int    `csv:"index"`
	Kind   string `csv:"kind"`
	Offset int64  `csv:"offset"`
	Size   int    `csv:"size"`
	// Symbol is the repeated byte of a run in hex, or empty for literals.
	Symbol string `csv:"symbol"`
}

// Manifest returns one row per block. Offset is where the block's expansion
// starts in the decoded output.
func Manifest(blocks []block.Block) []ManifestRow {
	rows := make([]ManifestRow, 0, len(blocks))
	offset := int64(0)

	for i, b := range blocks {
		row := ManifestRow{
			Index:  i,
			Kind:   b.Kind().String(),
			Offset: offset,
			Size:   b.Size(),
		}
		if b.IsRun() {
			row.Symbol = fmt.Sprintf("%02x", b.Symbol())
		}
		rows = append(rows, row)
		offset += int64(b.Size())
	}
	return rows
}

// WriteManifest writes the [Manifest] of the blocks to `output` as CSV with a
// header row.
func WriteManifest(output io.Writer, blocks []block.Block) error {
	rows := Manifest(blocks)
	return gocsv.Marshal(&rows, output)
}
