package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Writer handles the writing of a single shard envelope.
type Writer struct {
	w io.Writer
}

// NewWriter creates a new Writer around an io.Writer (usually a bytes.Buffer
// that is embedded afterwards).
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write serializes the header and content to the underlying writer.
func (hw *Writer) Write(header *Header, content []byte) error {
	if err := header.Validate(); err != nil {
		return fmt.Errorf("invalid header: %w", err)
	}

	magicText := fmt.Sprintf(MagicHeader, header.Index, header.Total, header.Threshold)
	if _, err := fmt.Fprint(hw.w, magicText); err != nil {
		return fmt.Errorf("failed to write magic header: %w", err)
	}

	if _, err := fmt.Fprintln(hw.w, HeaderMarker); err != nil {
		return fmt.Errorf("failed to write header marker: %w", err)
	}

	headerBytes, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if _, err := hw.w.Write(headerBytes); err != nil {
		return fmt.Errorf("failed to write json header: %w", err)
	}
	if _, err := fmt.Fprintln(hw.w); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(hw.w, BodyMarker); err != nil {
		return fmt.Errorf("failed to write body marker: %w", err)
	}

	if _, err := hw.w.Write(content); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}

	return nil
}
