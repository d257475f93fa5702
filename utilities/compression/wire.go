package compression

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/packrle"
	"github.com/dargueta/packrle/block"
)

// Tag bytes that start every block in the wire format.
const (
	TagRun     = byte(block.KindRun)
	TagLiteral = byte(block.KindLiteral)
)

// AppendBlock appends the wire encoding of a block to `dst`.
//
//	run:     [0x00] [symbol] [count - 1]
//	literal: [0x01] [length - 1] [symbols...]
//
// The block must be valid; sizes are stored biased by one so 1-128 fits in a
// byte.
func AppendBlock(dst []byte, b block.Block) ([]byte, error) {
	err := b.Validate()
	if err != nil {
		return dst, err
	}

	switch b.Kind() {
	case block.KindRun:
		dst = append(dst, TagRun, b.Symbol(), byte(b.Size()-1))
	case block.KindLiteral:
		dst = append(dst, TagLiteral, byte(b.Size()-1))
		dst = b.AppendTo(dst)
	}
	return dst, nil
}

// MarshalBlocks returns the wire encoding of the whole block sequence. There's
// no header or end marker.
func MarshalBlocks(blocks []block.Block) ([]byte, error) {
	output := make([]byte, 0, len(blocks)*3)
	for i, b := range blocks {
		var err error
		output, err = AppendBlock(output, b)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
	}
	return output, nil
}

// WriteBlocks writes the wire encoding of the blocks to `output` one block at a
// time. The returned int64 gives the number of bytes written.
func WriteBlocks(output io.Writer, blocks []block.Block) (int64, error) {
	totalBytesWritten := int64(0)
	buffer := make([]byte, 0, packrle.MaxBlockSize+2)

	for i, b := range blocks {
		var err error
		buffer, err = AppendBlock(buffer[:0], b)
		if err != nil {
			return totalBytesWritten, fmt.Errorf("block %d: %w", i, err)
		}

		n, err := output.Write(buffer)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, packrle.ErrSinkWrite.Wrap(err)
		}
	}
	return totalBytesWritten, nil
}

// BlockReader decodes wire-format blocks from a stream.
type BlockReader struct {
	rd     *bufio.Reader
	offset int64
}

func NewBlockReader(rd io.Reader) *BlockReader {
	return &BlockReader{rd: bufio.NewReader(rd)}
}

// Offset gives the number of wire bytes consumed so far.
func (reader *BlockReader) Offset() int64 {
	return reader.offset
}

// Next reads one block. It returns [io.EOF] if the stream ends cleanly between
// blocks, and an error wrapping [io.ErrUnexpectedEOF] if it ends in the middle
// of one. An unrecognized tag fails with [packrle.ErrUnknownBlockTag].
//
// The sizes read aren't range-checked; a run of 129-256 bytes decodes here and
// is rejected later by [Decompress].
func (reader *BlockReader) Next() (block.Block, error) {
	blockStart := reader.offset
	tag, err := reader.rd.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return block.Block{}, io.EOF
		}
		return block.Block{}, fmt.Errorf("error reading input: %w", err)
	}
	reader.offset++

	switch tag {
	case TagRun:
		var header [2]byte
		err = reader.readFull(header[:], blockStart, "run header")
		if err != nil {
			return block.Block{}, err
		}
		return block.Run(header[0], int(header[1])+1), nil

	case TagLiteral:
		lengthByte, err := reader.rd.ReadByte()
		if err != nil {
			return block.Block{}, reader.truncated(err, blockStart, "literal length")
		}
		reader.offset++

		symbols := make([]byte, int(lengthByte)+1)
		err = reader.readFull(symbols, blockStart, "literal body")
		if err != nil {
			return block.Block{}, err
		}
		return block.Literal(symbols...), nil

	default:
		return block.Block{}, packrle.ErrUnknownBlockTag.WithMessage(
			fmt.Sprintf("tag %#04x at offset %d", tag, blockStart))
	}
}

func (reader *BlockReader) readFull(buffer []byte, blockStart int64, what string) error {
	n, err := io.ReadFull(reader.rd, buffer)
	reader.offset += int64(n)
	if err != nil {
		return reader.truncated(err, blockStart, what)
	}
	return nil
}

func (reader *BlockReader) truncated(err error, blockStart int64, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf(
			"%w: missing %s of block at offset %d",
			io.ErrUnexpectedEOF,
			what,
			blockStart,
		)
	}
	return fmt.Errorf("error reading input: %w", err)
}

// ReadBlocks reads blocks until the input is exhausted. On error no blocks are
// returned.
func ReadBlocks(input io.Reader) ([]block.Block, error) {
	reader := NewBlockReader(input)
	blocks := []block.Block{}

	for {
		b, err := reader.Next()
		if err == io.EOF {
			return blocks, nil
		} else if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
}

// UnmarshalBlocks decodes a complete wire-format buffer.
func UnmarshalBlocks(data []byte) ([]block.Block, error) {
	return ReadBlocks(bytes.NewReader(data))
}
