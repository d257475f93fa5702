package compression

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dargueta/packrle"
	"github.com/dargueta/packrle/source"
	"github.com/pierrec/lz4/v4"
)

// CompressStream reads bytes from the input and writes wire-format blocks to
// the output until the input is exhausted. Blocks are written as soon as
// they're complete. The return value is the number of bytes written, only valid
// if no error occurred.
func CompressStream(input io.Reader, output io.Writer) (int64, error) {
	enc := NewEncoder(source.NewReaderSource(input))
	buffer := make([]byte, 0, packrle.MaxBlockSize+2)

	totalBytesWritten := int64(0)
	for {
		b, err := enc.Next()
		if err == io.EOF {
			return totalBytesWritten, nil
		} else if err != nil {
			return totalBytesWritten, err
		}

		buffer, err = AppendBlock(buffer[:0], b)
		if err != nil {
			return totalBytesWritten, err
		}

		n, err := output.Write(buffer)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, packrle.ErrSinkWrite.Wrap(err)
		}
	}
}

// DecompressStream reads wire-format blocks from the input and writes the
// decoded bytes to the output. All blocks are read and validated first, so
// nothing is written if the input is corrupt.
//
// The returned int64 gives the number of bytes written to the output (i.e. the
// decompressed size). If an error occurred, the value is undefined and should
// not be used.
func DecompressStream(input io.Reader, output io.Writer) (int64, error) {
	blocks, err := ReadBlocks(input)
	if err != nil {
		return 0, err
	}
	return DecompressTo(blocks, output)
}

// Container selects an optional general-purpose compressor wrapped around the
// block stream. Run-length encoding removes long runs; gzip or LZ4 on top of
// that takes care of the repetition between blocks.
type Container int

const (
	ContainerNone Container = iota
	ContainerGzip
	ContainerLZ4
)

var containerNames = map[Container]string{
	ContainerNone: "none",
	ContainerGzip: "gzip",
	ContainerLZ4:  "lz4",
}

func (c Container) String() string {
	name, ok := containerNames[c]
	if !ok {
		return fmt.Sprintf("Container(%d)", int(c))
	}
	return name
}

// ParseContainer converts a container name ("none", "gzip", "lz4") into a
// [Container]. Matching is case-insensitive.
func ParseContainer(name string) (Container, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for container, containerName := range containerNames {
		if containerName == normalized {
			return container, nil
		}
	}
	return ContainerNone, packrle.ErrInvalidArgument.WithMessage(
		fmt.Sprintf("unknown container %q", name))
}

// Pack run-length encodes the input and writes it to the output inside the
// given container.
//
// The returned int64 gives the number of uncompressed wire bytes produced by
// the encoder, before the container is applied. If an error occurred, the value
// is undefined and should not be used.
func Pack(input io.Reader, output io.Writer, container Container) (int64, error) {
	switch container {
	case ContainerNone:
		return CompressStream(input, output)

	case ContainerGzip:
		// The highest level costs little here; run-length encoding has already
		// shrunk the input considerably.
		gzWriter, err := gzip.NewWriterLevel(output, gzip.BestCompression)
		if err != nil {
			return 0, err
		}
		n, err := CompressStream(input, gzWriter)
		return n, closeAfter(gzWriter, err)

	case ContainerLZ4:
		lzWriter := lz4.NewWriter(output)
		n, err := CompressStream(input, lzWriter)
		return n, closeAfter(lzWriter, err)

	default:
		return 0, packrle.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("unknown container %s", container))
	}
}

// Unpack takes a run-length encoded stream in the given container and writes the
// original bytes to the output.
//
// The returned int64 gives the number of bytes written to the output. If an
// error occurred, the value is undefined and should not be used.
func Unpack(input io.Reader, output io.Writer, container Container) (int64, error) {
	wire, err := NewContainerReader(input, container)
	if err != nil {
		return 0, err
	}
	defer wire.Close()
	return DecompressStream(wire, output)
}

// NewContainerReader strips the container from `input` and returns a reader for
// the raw block stream inside it. Closing the returned reader doesn't close
// `input`.
func NewContainerReader(input io.Reader, container Container) (io.ReadCloser, error) {
	switch container {
	case ContainerNone:
		return io.NopCloser(input), nil

	case ContainerGzip:
		return gzip.NewReader(input)

	case ContainerLZ4:
		return io.NopCloser(lz4.NewReader(input)), nil

	default:
		return nil, packrle.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("unknown container %s", container))
	}
}

// PackBytes is a convenience function wrapping [Pack]. It returns the packed
// data in a new byte slice instead of writing to an [io.Writer].
func PackBytes(data []byte, container Container) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, len(data)/2+16))
	_, err := Pack(bytes.NewReader(data), buffer, container)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// UnpackBytes is a convenience function wrapping [Unpack]. It returns the
// original data in a new byte slice.
func UnpackBytes(input io.Reader, container Container) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, 512))
	_, err := Unpack(input, buffer, container)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// closeAfter closes a container writer, which flushes its trailer. An earlier
// error takes precedence over one from closing.
func closeAfter(writer io.Closer, err error) error {
	closeErr := writer.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return packrle.ErrSinkWrite.Wrap(closeErr)
	}
	return nil
}

// containerCorruptionErrors are the errors gzip and LZ4 readers return for a
// damaged container, as opposed to a failing underlying reader.
var containerCorruptionErrors = []error{
	gzip.ErrChecksum,
	gzip.ErrHeader,
	lz4.ErrInvalidFrame,
	lz4.ErrInvalidHeaderChecksum,
	lz4.ErrInvalidBlockChecksum,
	lz4.ErrInvalidFrameChecksum,
	lz4.ErrInvalidSourceShortBuffer,
}

// IsCorrupt returns true if the error indicates the encoded input itself is bad,
// either the block stream or the container around it, as opposed to an I/O
// failure.
func IsCorrupt(err error) bool {
	if errors.Is(err, packrle.ErrMalformedBlock) ||
		errors.Is(err, packrle.ErrUnknownBlockTag) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	for _, corruption := range containerCorruptionErrors {
		if errors.Is(err, corruption) {
			return true
		}
	}
	return false
}
