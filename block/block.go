// Package block defines the output unit of the run-length encoder.
//
// A [Block] is a tagged variant with exactly one of two forms: a run of a single
// repeated byte, or a literal stretch of bytes copied verbatim. Blocks are plain
// values. Once created they're never modified, and equality is by content only.
package block

import (
	"bytes"
	"fmt"

	"github.com/dargueta/packrle"
)

// Kind identifies which form a [Block] takes. The numeric values double as the
// tag bytes of the wire format.
type Kind uint8

const (
	KindRun     = Kind(0x00)
	KindLiteral = Kind(0x01)
)

func (k Kind) String() string {
	switch k {
	case KindRun:
		return "run"
	case KindLiteral:
		return "literal"
	default:
		return fmt.Sprintf("Kind(%#04x)", uint8(k))
	}
}

// Block is a single unit of encoded output.
//
// The zero value is a run block with a count of 0, which is malformed. Use
// [Run], [Literal], or a [LiteralBuilder] to create blocks.
type Block struct {
	kind Kind
	// symbol is the repeated byte of a run block. Unused for literals.
	symbol byte
	// count is the number of repetitions of a run block. Unused for literals.
	count int
	// symbols holds the bytes of a literal block. It's never shared with a
	// caller, so a sealed literal can't be mutated.
	symbols []byte
}

// Run creates a block representing `count` consecutive occurrences of `symbol`.
//
// The count isn't checked here; use [Block.Validate] for that.
func Run(symbol byte, count int) Block {
	return Block{kind: KindRun, symbol: symbol, count: count}
}

// Literal creates a literal block holding a copy of `symbols`.
//
// Neither the length nor the absence of adjacent duplicates is checked here.
func Literal(symbols ...byte) Block {
	return Block{kind: KindLiteral, symbols: bytes.Clone(symbols)}
}

func (b Block) Kind() Kind {
	return b.kind
}

func (b Block) IsRun() bool {
	return b.kind == KindRun
}

func (b Block) IsLiteral() bool {
	return b.kind == KindLiteral
}

// Symbol returns the repeated byte of a run block. For a literal block it
// returns the first byte, or 0 if the literal is empty.
func (b Block) Symbol() byte {
	if b.kind == KindLiteral {
		if len(b.symbols) == 0 {
			return 0
		}
		return b.symbols[0]
	}
	return b.symbol
}

// Symbols returns a copy of the bytes of a literal block. For a run block it
// returns nil.
func (b Block) Symbols() []byte {
	if b.kind != KindLiteral {
		return nil
	}
	return bytes.Clone(b.symbols)
}

// Size returns the number of bytes this block expands to: the count of a run
// block or the number of symbols in a literal block.
func (b Block) Size() int {
	switch b.kind {
	case KindRun:
		return b.count
	case KindLiteral:
		return len(b.symbols)
	default:
		return 0
	}
}

// Equal returns true if both blocks are the same kind with the same content.
func (b Block) Equal(other Block) bool {
	if b.kind != other.kind {
		return false
	}
	switch b.kind {
	case KindRun:
		return b.symbol == other.symbol && b.count == other.count
	case KindLiteral:
		return bytes.Equal(b.symbols, other.symbols)
	default:
		return false
	}
}

// Validate checks that the block is one of the two known kinds and that its
// size is in [1, MaxBlockSize]. Errors match [packrle.ErrMalformedBlock].
func (b Block) Validate() error {
	if b.kind != KindRun && b.kind != KindLiteral {
		return packrle.ErrMalformedBlock.WithMessage(
			fmt.Sprintf("invalid block kind %s", b.kind))
	}

	size := b.Size()
	if size < 1 || size > packrle.MaxBlockSize {
		return packrle.ErrMalformedBlock.WithMessage(
			fmt.Sprintf(
				"%s block has size %d, not in [1, %d]",
				b.kind,
				size,
				packrle.MaxBlockSize,
			),
		)
	}
	return nil
}

// AppendTo appends the expansion of the block to `dst` and returns the extended
// slice. It doesn't validate the block.
func (b Block) AppendTo(dst []byte) []byte {
	switch b.kind {
	case KindRun:
		for i := 0; i < b.count; i++ {
			dst = append(dst, b.symbol)
		}
	case KindLiteral:
		dst = append(dst, b.symbols...)
	}
	return dst
}

// Expand returns the bytes this block represents, in a new slice.
func (b Block) Expand() []byte {
	size := b.Size()
	if size < 0 {
		size = 0
	}
	return b.AppendTo(make([]byte, 0, size))
}

func (b Block) String() string {
	switch b.kind {
	case KindRun:
		return fmt.Sprintf("Run(%#04x, %d)", b.symbol, b.count)
	case KindLiteral:
		return fmt.Sprintf("Literal(% x)", b.symbols)
	default:
		return fmt.Sprintf("Block(%s)", b.kind)
	}
}
