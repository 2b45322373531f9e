package format

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxPreambleLines bounds the scan for HeaderMarker.
const maxPreambleLines = 16

// Reader separates the metadata header of an envelope from its binary body.
type Reader struct {
	Header *Header
	Body   io.Reader
}

// NewReader parses a shard envelope.
// It consumes the text header and returns a Reader whose Body is positioned
// at the start of the shard bytes.
func NewReader(r io.Reader) (*Reader, error) {
	// bufio lets us read line by line without losing the body that follows.
	bufReader := bufio.NewReader(r)

	foundHeader := false
	for i := 0; i < maxPreambleLines; i++ {
		line, err := bufReader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read stream while looking for header: %w", err)
		}
		if strings.TrimSpace(line) == HeaderMarker {
			foundHeader = true
			break
		}
	}

	if !foundHeader {
		return nil, fmt.Errorf("invalid format: could not find %q marker", HeaderMarker)
	}

	var jsonBuilder bytes.Buffer
	for {
		line, err := bufReader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read stream while reading header json: %w", err)
		}
		if strings.TrimSpace(line) == BodyMarker {
			break
		}
		jsonBuilder.WriteString(line)
	}

	header := &Header{}
	if err := json.Unmarshal(jsonBuilder.Bytes(), header); err != nil {
		return nil, fmt.Errorf("failed to parse header json: %w", err)
	}

	if err := header.Validate(); err != nil {
		return nil, fmt.Errorf("header validation failed: %w", err)
	}

	return &Reader{
		Header: header,
		Body:   bufReader,
	}, nil
}

// Parse reads a whole envelope held in memory.
func Parse(b []byte) (*Header, []byte, error) {
	r, err := NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, nil, err
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, nil, err
	}
	return r.Header, body, nil
}
