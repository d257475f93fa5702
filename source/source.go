// Package source provides [packrle.ByteSource] implementations over in-memory
// byte slices and arbitrary readers.
package source

import (
	"bufio"
	"errors"
	"io"

	"github.com/dargueta/packrle"
)

// MemorySource is a byte source over a slice. It never fails.
type MemorySource struct {
	data     []byte
	position int
}

func NewMemorySource(data []byte) *MemorySource {
	return &MemorySource{data: data}
}

func (src *MemorySource) Peek() (byte, bool, error) {
	return src.at(src.position)
}

func (src *MemorySource) PeekNext() (byte, bool, error) {
	return src.at(src.position + 1)
}

func (src *MemorySource) Advance() error {
	if src.position < len(src.data) {
		src.position++
	}
	return nil
}

// Remaining gives the number of bytes that haven't been consumed yet.
func (src *MemorySource) Remaining() int {
	return len(src.data) - src.position
}

func (src *MemorySource) at(index int) (byte, bool, error) {
	if index >= len(src.data) {
		return 0, false, nil
	}
	return src.data[index], true, nil
}

// -----------------------------------------------------------------------------

// ReaderSource is a byte source over an [io.Reader]. Lookahead is served from
// a bufio.Reader so the underlying reader is only ever read sequentially.
//
// Any error from the reader other than [io.EOF] is returned wrapped in
// [packrle.ErrSourceRead]. A truncated read that ends in
// [io.ErrUnexpectedEOF] is treated as a failure, not as the end of the stream.
type ReaderSource struct {
	rd *bufio.Reader
}

func NewReaderSource(rd io.Reader) ReaderSource {
	return ReaderSource{rd: bufio.NewReader(rd)}
}

func (src ReaderSource) Peek() (byte, bool, error) {
	return src.peekAt(0)
}

func (src ReaderSource) PeekNext() (byte, bool, error) {
	return src.peekAt(1)
}

func (src ReaderSource) Advance() error {
	_, err := src.rd.Discard(1)
	if err != nil && !errors.Is(err, io.EOF) {
		return packrle.ErrSourceRead.Wrap(err)
	}
	return nil
}

func (src ReaderSource) peekAt(offset int) (byte, bool, error) {
	buffer, err := src.rd.Peek(offset + 1)
	if len(buffer) > offset {
		return buffer[offset], true, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return 0, false, nil
	}
	return 0, false, packrle.ErrSourceRead.Wrap(err)
}
