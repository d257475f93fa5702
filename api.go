package packrle

// MaxBlockSize is the largest count a run block or length a literal block may
// have. Both kinds share the same cap.
const MaxBlockSize = 128

// ByteSource is the interface the encoder reads its input through. It gives
// exactly one byte of lookahead beyond the current position.
//
// The boolean returned by Peek and PeekNext is false if there is no byte at
// that position (the end of the stream). A non-nil error means the source
// failed and the caller must abort; implementations should return errors that
// match [ErrSourceRead] with errors.Is.
//
// A source is not safe for concurrent use, since Advance mutates the read
// position.
type ByteSource interface {
	// Peek returns the byte at the current position without consuming it.
	Peek() (byte, bool, error)
	// PeekNext returns the byte after the current one without consuming either.
	PeekNext() (byte, bool, error)
	// Advance consumes the current byte. Calling it at the end of the stream is
	// a no-op.
	Advance() error
}

// ByteSink is the interface decoded output can be written to one byte at a
// time. It's satisfied by *bufio.Writer and *bytes.Buffer.
type ByteSink interface {
	WriteByte(c byte) error
}
