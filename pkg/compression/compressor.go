// Package compression shrinks payloads before they are embedded, so more
// text fits into the same carrier.
package compression

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
)

// Names accepted by New.
const (
	None = "none"
	Gzip = "gzip"
	Zstd = "zstd"
)

// ErrUnknownCodec indicates a codec name New does not recognise.
var ErrUnknownCodec = errors.New("unknown compression codec")

// Compressor defines the contract for data compression
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// New returns the codec registered under name. An empty name means None.
func New(name string) (Compressor, error) {
	switch name {
	case "", None:
		return Noop{}, nil
	case Gzip:
		return NewGzipCompressor(), nil
	case Zstd:
		return NewZstdCompressor(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// Names lists every codec name in display order.
func Names() []string {
	return []string{None, Gzip, Zstd}
}

// Noop passes data through unchanged.
type Noop struct{}

func (Noop) Compress(data []byte) ([]byte, error)   { return data, nil }
func (Noop) Decompress(data []byte) ([]byte, error) { return data, nil }

// GzipCompressor implements standard gzip compression
type GzipCompressor struct{}

func NewGzipCompressor() *GzipCompressor {
	return &GzipCompressor{}
}

func (g *GzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	// Carriers are small; the best ratio matters more than speed.
	writer, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}

	if _, err := writer.Write(data); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (g *GzipCompressor) Decompress(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer reader.Close()

	return io.ReadAll(reader)
}
