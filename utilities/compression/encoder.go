package compression

import (
	"io"

	"github.com/dargueta/packrle"
	"github.com/dargueta/packrle/block"
	"github.com/dargueta/packrle/source"
)

// Encoder scans a byte source in a single pass and emits blocks one at a time.
//
// At each position it looks one byte ahead. Two equal bytes start a run, which
// continues until the byte changes, the stream ends, or the run reaches
// [packrle.MaxBlockSize]. Anything else starts a literal, which continues until
// the next two bytes are equal (the first of them is left for the following
// run), the stream ends, or the literal is full. A single byte left over at the
// very end of the stream with no open literal becomes a run of one.
//
// An Encoder holds no state besides its source, so several can run in parallel
// as long as each has its own source.
type Encoder struct {
	src packrle.ByteSource
}

func NewEncoder(src packrle.ByteSource) *Encoder {
	return &Encoder{src: src}
}

// Next returns the next block in the stream. It returns [io.EOF] once the
// source is exhausted. Errors from the source are returned unchanged, and the
// encoder must not be used afterwards.
func (enc *Encoder) Next() (block.Block, error) {
	current, ok, err := enc.src.Peek()
	if err != nil {
		return block.Block{}, err
	}
	if !ok {
		return block.Block{}, io.EOF
	}

	next, hasNext, err := enc.src.PeekNext()
	if err != nil {
		return block.Block{}, err
	}

	if !hasNext {
		err = enc.src.Advance()
		if err != nil {
			return block.Block{}, err
		}
		return block.Run(current, 1), nil
	}
	if current == next {
		return enc.scanRun(current)
	}
	return enc.scanLiteral()
}

func (enc *Encoder) scanRun(symbol byte) (block.Block, error) {
	count := 0
	for count < packrle.MaxBlockSize {
		current, ok, err := enc.src.Peek()
		if err != nil {
			return block.Block{}, err
		}
		if !ok || current != symbol {
			break
		}

		err = enc.src.Advance()
		if err != nil {
			return block.Block{}, err
		}
		count++
	}
	return block.Run(symbol, count), nil
}

func (enc *Encoder) scanLiteral() (block.Block, error) {
	builder := block.NewLiteralBuilder()

	for !builder.Full() {
		current, ok, err := enc.src.Peek()
		if err != nil {
			return block.Block{}, err
		}
		if !ok {
			break
		}

		next, hasNext, err := enc.src.PeekNext()
		if err != nil {
			return block.Block{}, err
		}
		if hasNext && current == next {
			// Leave `current` in the stream; it starts the next run.
			break
		}

		builder.Append(current)
		err = enc.src.Advance()
		if err != nil {
			return block.Block{}, err
		}
	}
	return builder.Seal(), nil
}

// Compress encodes everything in the source and returns the blocks in order.
// If the source fails, no blocks are returned.
func Compress(src packrle.ByteSource) ([]block.Block, error) {
	enc := NewEncoder(src)
	blocks := []block.Block{}

	for {
		b, err := enc.Next()
		if err == io.EOF {
			return blocks, nil
		} else if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
}

// CompressBytes is a convenience wrapper around [Compress] for in-memory data.
// Memory sources never fail, so there's no error to return.
func CompressBytes(data []byte) []block.Block {
	blocks, _ := Compress(source.NewMemorySource(data))
	return blocks
}
