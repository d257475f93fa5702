package testing

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/dargueta/packrle/utilities/compression"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// RandomBytes returns `size` random bytes. It is guaranteed to either return a
// valid slice or fail the test and abort.
func RandomBytes(t *testing.T, size int) []byte {
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to generate %d random bytes", size)
	return data
}

// NoAdjacentDuplicates returns `size` bytes cycling through `pattern`. The
// pattern must have no two adjacent bytes equal, and its first and last bytes
// must differ, so the result never contains a run.
func NoAdjacentDuplicates(pattern []byte, size int) []byte {
	return bytes.Repeat(pattern, size/len(pattern)+1)[:size]
}

// LoadFixture takes packed data and returns a stream to access the unpacked
// bytes.
//
//   - Writes to the stream do not affect `packed`.
//   - The stream's size is fixed to `expectedSize`. Attempting to write past
//     the end will trigger an error.
func LoadFixture(
	t *testing.T, packed []byte, container compression.Container, expectedSize int,
) io.ReadWriteSeeker {
	require.Greater(t, len(packed), 0, "packed fixture is empty")

	data, err := compression.UnpackBytes(bytes.NewReader(packed), container)
	require.NoError(t, err)
	require.Equal(t, expectedSize, len(data), "unpacked fixture is wrong size")
	return bytesextra.NewReadWriteSeeker(data)
}
