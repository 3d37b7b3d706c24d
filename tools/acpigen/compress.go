package main

import (
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdExt is appended to the name of compressed table files.
const zstdExt = ".zst"

// maxTableSize bounds the decompressed size of a table; the SDT length
// field is 32 bits wide.
const maxTableSize = 1 << 32

// Shared by all concurrent table builds. Only EncodeAll and DecodeAll may be
// called on them.
var (
	zstdEncoder = sync.OnceValues(func() (*zstd.Encoder, error) {
		return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	})
	zstdDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
		return zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxTableSize), zstd.WithDecoderConcurrency(0))
	})
)

// compressZstd compresses a generated table.
func compressZstd(data []byte) ([]byte, error) {
	enc, err := zstdEncoder()
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// decompressZstd decompresses a table written by compressZstd.
func decompressZstd(data []byte) ([]byte, error) {
	dec, err := zstdDecoder()
	if err != nil {
		return nil, err
	}
	return dec.DecodeAll(data, nil)
}

// isZstdFile checks if path names a compressed table.
func isZstdFile(path string) bool {
	return strings.HasSuffix(path, zstdExt)
}
