package compression

import (
	"fmt"
	"io"

	"github.com/dargueta/packrle"
	"github.com/dargueta/packrle/block"
	"github.com/hashicorp/go-multierror"
)

// validateBlocks checks every block and returns the total number of bytes they
// expand to. If any are malformed, the error lists all of them and matches
// [packrle.ErrMalformedBlock].
func validateBlocks(blocks []block.Block) (int, error) {
	var result *multierror.Error
	totalSize := 0

	for i, b := range blocks {
		err := b.Validate()
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("block %d: %w", i, err))
			continue
		}
		totalSize += b.Size()
	}

	if result != nil {
		return 0, packrle.ErrMalformedBlock.Wrap(result)
	}
	return totalSize, nil
}

// Decompress expands the blocks in order and returns the concatenated bytes.
//
// Every block is validated before anything is expanded; if any has a size
// outside [1, packrle.MaxBlockSize] the call fails with an error matching
// [packrle.ErrMalformedBlock] and no data is returned. Literals aren't checked
// for adjacent duplicates.
func Decompress(blocks []block.Block) ([]byte, error) {
	totalSize, err := validateBlocks(blocks)
	if err != nil {
		return nil, err
	}

	output := make([]byte, 0, totalSize)
	for _, b := range blocks {
		output = b.AppendTo(output)
	}
	return output, nil
}

// DecompressTo works like [Decompress] but writes the expanded bytes to
// `output` as a single write. The returned int64 is the number of bytes
// written. Nothing is written if any block is malformed.
func DecompressTo(blocks []block.Block, output io.Writer) (int64, error) {
	data, err := Decompress(blocks)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}

	n, err := output.Write(data)
	if err != nil {
		return int64(n), packrle.ErrSinkWrite.Wrap(err)
	}
	return int64(n), nil
}

// DecompressToSink works like [DecompressTo] but writes to a byte-at-a-time
// sink.
func DecompressToSink(blocks []block.Block, sink packrle.ByteSink) (int64, error) {
	data, err := Decompress(blocks)
	if err != nil {
		return 0, err
	}

	for i, value := range data {
		err = sink.WriteByte(value)
		if err != nil {
			return int64(i), packrle.ErrSinkWrite.Wrap(err)
		}
	}
	return int64(len(data)), nil
}
