// Package compression implements a PackBits-style run-length codec for
// arbitrary byte streams.
//
// The encoder turns a byte stream into a sequence of blocks (see package
// block): runs of one repeated byte, and literal stretches with no two adjacent
// bytes equal. Both kinds hold between 1 and 128 bytes. Longer runs and longer
// literals are split into consecutive blocks. For example:
//
//	aaabcdeee
//	Run(a, 3) Literal(b c d) Run(e, 3)
//
// The decoder expands blocks back into the original bytes. Encoding and
// decoding are pure functions of their input and are safe to run concurrently
// on independent data.
//
// Blocks are persisted in a simple binary format. Every block starts with a tag
// byte, 0x00 for runs and 0x01 for literals, and stores its size minus one so
// the range 1-128 fits in a single byte:
//
//	run:     00 SYMBOL COUNT-1
//	literal: 01 LENGTH-1 BYTES...
//
// There is no header or end marker; a stream ends when its input does. Using the
// example above:
//
//	00 61 02  01 02 62 63 64  00 65 02
//
// Unlike classic PackBits, which caps literals at 127 because of its signed
// control byte, both block kinds here go up to 128.
//
// For storage the block stream can be wrapped in gzip or LZ4 with [Pack] and
// [Unpack]. Run-length encoding first and compressing the result afterwards
// works well on data dominated by long runs, such as mostly-empty images.
package compression
