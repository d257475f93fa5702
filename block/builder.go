package block

import "github.com/dargueta/packrle"

// LiteralBuilder accumulates the symbols of a literal block. Symbols can only
// be appended. Calling Seal hands the buffer over to the new block and resets
// the builder, so the emitted block never aliases memory the builder can still
// write to.
type LiteralBuilder struct {
	symbols []byte
}

func NewLiteralBuilder() *LiteralBuilder {
	return &LiteralBuilder{}
}

// Append adds a symbol to the end of the literal under construction.
func (builder *LiteralBuilder) Append(symbol byte) {
	if builder.symbols == nil {
		builder.symbols = make([]byte, 0, packrle.MaxBlockSize)
	}
	builder.symbols = append(builder.symbols, symbol)
}

func (builder *LiteralBuilder) Len() int {
	return len(builder.symbols)
}

// Full returns true if the literal has reached the block size cap.
func (builder *LiteralBuilder) Full() bool {
	return len(builder.symbols) >= packrle.MaxBlockSize
}

// Seal returns a literal block with the symbols appended so far and empties the
// builder.
func (builder *LiteralBuilder) Seal() Block {
	sealed := Block{kind: KindLiteral, symbols: builder.symbols}
	builder.symbols = nil
	return sealed
}
