package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression of a Compressed codec.
type Compression uint8

const (
	// CompressionNone stores the inner encoding as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

// String returns the name used in codec names ("lz4", "zstd").
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression looks up a compression by name.
func ParseCompression(name string) (Compression, bool) {
	switch name {
	case "none":
		return CompressionNone, true
	case "lz4":
		return CompressionLZ4, true
	case "zstd":
		return CompressionZSTD, true
	default:
		return 0, false
	}
}

// ErrCorruptBlock is returned when compressed data cannot be decoded.
var ErrCorruptBlock = errors.New("codec: corrupt compressed block")

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Compressed wraps another codec and compresses its output.
//
// Block format: [Compression uint8][UncompressedSize uint32][Data...].
// A block that does not shrink is stored with CompressionNone.
type Compressed struct {
	Inner       Codec
	Compression Compression
}

const blockHeaderSize = 5

func (c Compressed) inner() Codec {
	if c.Inner == nil {
		return Default
	}
	return c.Inner
}

// Marshal encodes v with the inner codec and compresses the result.
func (c Compressed) Marshal(v any) ([]byte, error) {
	data, err := c.inner().Marshal(v)
	if err != nil {
		return nil, err
	}
	return compressBlock(data, c.Compression)
}

// Unmarshal decompresses data and decodes it with the inner codec.
// The compression is read from the block header.
func (c Compressed) Unmarshal(data []byte, v any) error {
	raw, err := decompressBlock(data)
	if err != nil {
		return err
	}
	return c.inner().Unmarshal(raw, v)
}

// Name returns "<inner>+<compression>", e.g. "cbor+zstd".
func (c Compressed) Name() string {
	return c.inner().Name() + "+" + c.Compression.String()
}

func compressBlock(data []byte, ct Compression) ([]byte, error) {
	var compressed []byte

	switch ct {
	case CompressionNone:
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n] // n == 0: incompressible
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("codec: unknown compression %d", uint8(ct))
	}

	if len(compressed) == 0 || len(compressed) >= len(data) {
		ct, compressed = CompressionNone, data
	}

	out := make([]byte, blockHeaderSize+len(compressed))
	out[0] = byte(ct)
	binary.LittleEndian.PutUint32(out[1:], uint32(len(data)))
	copy(out[blockHeaderSize:], compressed)
	return out, nil
}

func decompressBlock(data []byte) ([]byte, error) {
	if len(data) < blockHeaderSize {
		return nil, fmt.Errorf("%w: block too small for header", ErrCorruptBlock)
	}
	ct := Compression(data[0])
	size := binary.LittleEndian.Uint32(data[1:])
	payload := data[blockHeaderSize:]

	switch ct {
	case CompressionNone:
		if uint32(len(payload)) != size {
			return nil, fmt.Errorf("%w: size mismatch", ErrCorruptBlock)
		}
		return payload, nil

	case CompressionLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptBlock, err)
		}
		if uint32(n) != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorruptBlock)
		}
		return out, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		out, err := dec.DecodeAll(payload, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptBlock, err)
		}
		if uint32(len(out)) != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorruptBlock)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrCorruptBlock, uint8(ct))
	}
}
