// Package zlibcodec implements the zlib(DEFLATE) stage (C2) of the Claim169
// pipeline: RFC 1950 zlib-wrapped DEFLATE compression on encode, and a
// size-bounded decompressor on decode that defends against decompression-bomb
// payloads by counting output bytes as they are produced rather than buffering
// an unbounded amount of data first.
//
// Grounded on the pack's COVID-certificate decoder (coronaqr, used as a
// reference), which reads the same RFC 1950 format through compress/zlib (the
// idiomatic choice; no pack repo reaches for a third-party zlib substitute).
package zlibcodec

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// DefaultMaxDecompressedBytes is the default ceiling on decompressed output
// size, matching spec §4.2.
const DefaultMaxDecompressedBytes = 65536

// LimitExceededError signals that decompression would have produced more than
// max bytes; the decoder stops before allocating the oversize buffer.
type LimitExceededError struct {
	Max int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("zlibcodec: decompressed output exceeds limit of %d bytes", e.Max)
}

// Compress produces a zlib-wrapped DEFLATE stream at the default compression
// level.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("zlibcodec: compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlibcodec: compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress inflates a zlib-wrapped DEFLATE stream, failing with
// *LimitExceededError the moment cumulative output would exceed maxBytes. If
// maxBytes <= 0, DefaultMaxDecompressedBytes is used.
func Decompress(compressed []byte, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDecompressedBytes
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("zlibcodec: malformed zlib stream: %w", err)
	}
	defer zr.Close()

	limited := &limitedWriter{max: maxBytes}
	n, err := io.Copy(limited, zr)
	if err != nil {
		if _, ok := err.(*LimitExceededError); ok {
			return nil, err
		}
		return nil, fmt.Errorf("zlibcodec: malformed DEFLATE stream: %w", err)
	}
	if err := zr.Close(); err != nil {
		return nil, fmt.Errorf("zlibcodec: zlib checksum mismatch: %w", err)
	}

	_ = n
	return limited.buf.Bytes(), nil
}

// limitedWriter accumulates at most max bytes, failing fast (without growing
// its buffer past the limit) the instant the cumulative write would exceed it.
type limitedWriter struct {
	buf bytes.Buffer
	max int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.buf.Len()+len(p) > w.max {
		return 0, &LimitExceededError{Max: w.max}
	}
	return w.buf.Write(p)
}
