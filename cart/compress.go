package cart

import (
	"github.com/klauspost/compress/zstd"
)

// COMPRESSION_LEVEL is the zstd level of compressed cartridge bodies.
const COMPRESSION_LEVEL = 18

// Compress compresses src into a single zstd frame, even when src is empty.
func Compress(src []byte) (dst []byte, err error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(COMPRESSION_LEVEL)),
		zstd.WithEncoderConcurrency(1),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return
	}
	defer enc.Close()

	dst = enc.EncodeAll(src, make([]byte, 0, len(src)))

	return
}

// Decompress expands zstd compressed src, expected to be size bytes.
// Frames that would expand past size are rejected; the output buffer is
// sized from the frames themselves, never from size.
func Decompress(src []byte, size int) (dst []byte, err error) {
	// Small frames may declare up to twice the minimum window.
	limit := uint64(max(size, 2*zstd.MinWindowSize))

	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(limit),
	)
	if err != nil {
		return
	}
	defer dec.Close()

	return dec.DecodeAll(src, nil)
}
