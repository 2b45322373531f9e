package format

import (
	"errors"
	"fmt"
)

// Standard Markers used to delineate sections of a shard envelope
const (
	// MagicHeader is the human readable introduction at the top of an envelope
	MagicHeader = `# PIXELSTASH SHARD %d OF %d.
# ANY %d SHARD(S) REBUILD THE ORIGINAL PAYLOAD.
`
	// HeaderMarker indicates the start of the JSON metadata
	HeaderMarker = "-- HEADER --"

	// BodyMarker indicates the start of the binary shard content
	BodyMarker = "-- BODY --"
)

// Header contains all the metadata required to gather shards back together.
type Header struct {
	// Timestamp is the unix timestamp of the scatter.
	// Used to ensure we aren't mixing shards from different sessions.
	Timestamp int64 `json:"timestamp"`

	// Index is the shard index (1-based)
	Index int `json:"index"`

	// Total is the total number of shards created
	Total int `json:"total"`

	// Threshold is the number of shards required to recover the payload
	Threshold int `json:"threshold"`

	// Size is the length of the compressed payload before padding.
	Size int `json:"size"`

	// Compression names the codec applied before sharding.
	Compression string `json:"compression"`

	// Name is the base name of the scattered file, if any.
	Name string `json:"name,omitempty"`
}

// Validate checks if the header contains sane values.
func (h *Header) Validate() error {
	if h.Index < 1 || h.Index > h.Total {
		return fmt.Errorf("invalid index %d for total %d", h.Index, h.Total)
	}
	if h.Threshold < 1 || h.Threshold > h.Total {
		return fmt.Errorf("invalid threshold %d for total %d", h.Threshold, h.Total)
	}
	if h.Size < 1 {
		return errors.New("header is missing payload size")
	}
	return nil
}

// SameSession reports whether two headers come from the same scatter.
func (h *Header) SameSession(o *Header) bool {
	return h.Timestamp == o.Timestamp &&
		h.Total == o.Total &&
		h.Threshold == o.Threshold &&
		h.Size == o.Size &&
		h.Compression == o.Compression
}
