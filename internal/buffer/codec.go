package buffer

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// ErrCorrupt is returned when a compressed blob cannot be decoded
var ErrCorrupt = errors.New("corrupt compressed data")

// Codec compresses and restores line group payloads
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// sizeHeader is the little-endian uncompressed size prepended to each block
const sizeHeader = 4

// LZ4 is an LZ4 block codec with an embedded size header
type LZ4 struct{}

// Compress encodes data as [size:4][lz4 block]
func (LZ4) Compress(data []byte) ([]byte, error) {
	if uint64(len(data)) > uint64(^uint32(0)) {
		return nil, fmt.Errorf("lz4: block of %d bytes too large", len(data))
	}

	dst := make([]byte, sizeHeader+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(dst, uint32(len(data)))
	if len(data) == 0 {
		return dst[:sizeHeader], nil
	}

	n, err := lz4.CompressBlock(data, dst[sizeHeader:], nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("lz4 compress: incompressible block of %d bytes", len(data))
	}
	return dst[:sizeHeader+n], nil
}

// Decompress restores a block produced by Compress
func (LZ4) Decompress(data []byte) ([]byte, error) {
	if len(data) < sizeHeader {
		return nil, fmt.Errorf("lz4 decompress: missing size header: %w", ErrCorrupt)
	}

	size := binary.LittleEndian.Uint32(data)
	out := make([]byte, size)
	if size == 0 {
		return out, nil
	}

	n, err := lz4.UncompressBlock(data[sizeHeader:], out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %v: %w", err, ErrCorrupt)
	}
	if n != int(size) {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, header says %d: %w", n, size, ErrCorrupt)
	}
	return out, nil
}
