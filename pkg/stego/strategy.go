// Package stego hides payloads in the channel bits of RGBA pixel buffers.
//
// Every strategy works in place on an interleaved R,G,B,A byte slice owned by
// the caller and never touches alpha bytes. Encoders write incrementally, so a
// failed Embed may leave the buffer partly modified; EmbedImage works on a copy
// for callers that need all-or-nothing behaviour.
package stego

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Beastly713/pixelstash/pkg/crypto/encryptor"
)

// Mode names one of the embedding strategies.
type Mode string

const (
	ModeLSB     Mode = "lsb"
	ModeSplit   Mode = "split"
	ModeHSV     Mode = "hsv"
	ModeLayered Mode = "layered"
)

// Modes lists every supported mode in display order.
func Modes() []Mode {
	return []Mode{ModeLSB, ModeSplit, ModeHSV, ModeLayered}
}

// ParseMode validates a mode name.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, name)
}

// Strategy embeds and extracts payloads for one mode.
type Strategy interface {
	Mode() Mode

	// Capacity returns the raw number of payload-carrying bits of a
	// width x height carrier. Frame headers are carved out of it.
	Capacity(width, height int) int

	Embed(pix []byte, payload []byte) error
	Extract(pix []byte) ([]byte, error)
}

// Crypto is the password-keyed cipher capability used by the layered mode.
type Crypto interface {
	DeriveKey(password string, salt []byte) ([]byte, error)
	Encrypt(key, iv, plaintext []byte) ([]byte, error)
	Decrypt(key, iv, ciphertext []byte) ([]byte, error)
}

// Defaults applied by New.
const (
	DefaultBitsPerChannel = 1
	DefaultMaxAttempts    = 100
)

// DefaultAllocation is the split mode's per-channel bit table (R, G, B).
var DefaultAllocation = []int{2, 2, 4}

// Config selects and parameterises a strategy.
type Config struct {
	Mode Mode

	// BitsPerChannel is used by ModeLSB (1..8).
	BitsPerChannel int

	// Allocation is the split mode's R, G, B bit table.
	Allocation []int

	// Password enables the cipher layer of ModeLayered.
	Password string
	KDF      encryptor.KDF
	Crypto   Crypto

	// MaxAttempts bounds per-pixel retries in ModeHSV.
	MaxAttempts int

	// Rand supplies seeds, salts and IVs. Defaults to crypto/rand.
	Rand io.Reader
}

// New builds the strategy described by cfg. The strategy keeps its own copy
// of every parameter.
func New(cfg Config) (Strategy, error) {
	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.Reader
	}

	switch cfg.Mode {
	case ModeLSB:
		bits := cfg.BitsPerChannel
		if bits == 0 {
			bits = DefaultBitsPerChannel
		}
		if bits < 1 || bits > 8 {
			return nil, fmt.Errorf("%w: bits per channel %d (want 1..8)", ErrInvalidConfig, bits)
		}
		return &BasicLSB{bits: bits, rand: rnd}, nil

	case ModeSplit:
		alloc := cfg.Allocation
		if len(alloc) == 0 {
			alloc = DefaultAllocation
		}
		if len(alloc) != 3 {
			return nil, fmt.Errorf("%w: allocation needs 3 entries, got %d", ErrInvalidConfig, len(alloc))
		}
		for _, n := range alloc {
			if n < 1 || n > 8 {
				return nil, fmt.Errorf("%w: allocation entry %d (want 1..8)", ErrInvalidConfig, n)
			}
		}
		return &FixedSplit{alloc: append([]int(nil), alloc...)}, nil

	case ModeHSV:
		attempts := cfg.MaxAttempts
		if attempts == 0 {
			attempts = DefaultMaxAttempts
		}
		if attempts < 0 {
			return nil, fmt.Errorf("%w: max attempts %d", ErrInvalidConfig, attempts)
		}
		return &HSV{maxAttempts: attempts, rand: rnd}, nil

	case ModeLayered:
		kdf, err := encryptor.ParseKDF(string(cfg.KDF))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return &Layered{password: cfg.Password, kdf: kdf, crypto: cfg.Crypto, rand: rnd}, nil
	}

	return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, cfg.Mode)
}

// pixelCount validates pix and returns the number of RGBA pixels in it.
func pixelCount(pix []byte) (int, error) {
	if len(pix)%4 != 0 {
		return 0, fmt.Errorf("%w: %d bytes", ErrInvalidPixels, len(pix))
	}
	return len(pix) / 4, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func readRandom(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("failed to read randomness: %w", err)
	}
	return b, nil
}

func randomSeed(r io.Reader) (int64, error) {
	b, err := readRandom(r, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}
