package stego

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Beastly713/pixelstash/pkg/bitstream"
	"github.com/Beastly713/pixelstash/pkg/crypto/encryptor"
	"github.com/Beastly713/pixelstash/pkg/crypto/secrets"
	"github.com/Beastly713/pixelstash/pkg/frame"
	"github.com/Beastly713/pixelstash/pkg/seeded"
)

// layeredBits is the fixed rate of the layered mode.
const layeredBits = 2

// Layered runs a text payload through a cipher chain before storing it at
// two bits per channel.
//
// The classical chain is a Caesar shift over a freshly shuffled alphabet, a
// rail fence, then "alphabet:cipher" in base64. With a password the result is
// sealed again with AES-GCM into "kdf:iv:salt:ciphertext".
type Layered struct {
	password string
	kdf      encryptor.KDF
	crypto   Crypto
	rand     io.Reader
}

func (s *Layered) Mode() Mode { return ModeLayered }

func (s *Layered) Capacity(width, height int) int {
	return width * height * 3 * layeredBits
}

func (s *Layered) Embed(pix []byte, payload []byte) error {
	pixels, err := pixelCount(pix)
	if err != nil {
		return err
	}
	if !utf8.Valid(payload) {
		return fmt.Errorf("%w: payload is not UTF-8 text", ErrDecodeFailed)
	}

	envelope, err := s.seal(string(payload))
	if err != nil {
		return err
	}
	if len(envelope) > frame.MaxPayload {
		return fmt.Errorf("%w: envelope of %d bytes exceeds limit %d", ErrCapacityExceeded, len(envelope), frame.MaxPayload)
	}
	bits := (frame.HeaderSize(false) + len(envelope)) * 8
	if capacity := s.Capacity(pixels, 1); bits > capacity {
		return fmt.Errorf("%w: need %d bits, have %d", ErrCapacityExceeded, bits, capacity)
	}

	w := newChannelWriter(pix, []int{layeredBits})
	frame.Encode(w, frame.Header{Length: uint32(len(envelope))})
	src := bitstream.NewReader(envelope, false)
	for !src.IsOver() {
		w.PutBit(src.NextBit())
	}
	return nil
}

func (s *Layered) Extract(pix []byte) ([]byte, error) {
	pixels, err := pixelCount(pix)
	if err != nil {
		return nil, err
	}
	capacity := s.Capacity(pixels, 1)
	room := capacity - frame.HeaderSize(false)*8
	if room < 0 {
		return nil, fmt.Errorf("%w: carrier too small for a frame header", ErrInvalidLength)
	}

	r := newChannelReader(pix, []int{layeredBits})
	h, err := frame.Decode(r, false)
	if err != nil {
		return nil, err
	}
	if int(h.Length)*8 > room {
		return nil, fmt.Errorf("%w: %d bytes do not fit the carrier", ErrInvalidLength, h.Length)
	}

	envelope := make([]byte, h.Length)
	dst := bitstream.NewWriter(envelope, false)
	for !dst.IsOver() {
		dst.PutBit(r.NextBit())
	}
	return s.open(envelope)
}

func (s *Layered) cryptoFor(kdf encryptor.KDF) Crypto {
	if s.crypto != nil {
		return s.crypto
	}
	return encryptor.Provider{KDF: kdf}
}

func (s *Layered) seal(text string) ([]byte, error) {
	seed, err := randomSeed(s.rand)
	if err != nil {
		return nil, err
	}
	alphabet := shuffledAlphabet(seeded.New(seed))
	scrambled := railFenceEncrypt(caesar([]rune(text), alphabet, caesarShift), railCount)
	inner := base64.StdEncoding.EncodeToString([]byte(alphabet + ":" + string(scrambled)))

	if s.password == "" {
		return []byte(inner), nil
	}

	salt, err := readRandom(s.rand, encryptor.SaltSize)
	if err != nil {
		return nil, err
	}
	iv, err := readRandom(s.rand, encryptor.IVSize)
	if err != nil {
		return nil, err
	}

	c := s.cryptoFor(s.kdf)
	raw, err := c.DeriveKey(s.password, salt)
	if err != nil {
		return nil, fmt.Errorf("%w: key derivation: %v", ErrCryptoFailure, err)
	}
	key := secrets.WrapSecret(raw)
	defer key.Destroy()

	ct, err := c.Encrypt(key.Bytes(), iv, []byte(inner))
	if err != nil {
		return nil, fmt.Errorf("%w: encrypt: %v", ErrCryptoFailure, err)
	}

	enc := base64.StdEncoding
	return []byte(strings.Join([]string{
		string(s.kdf), enc.EncodeToString(iv), enc.EncodeToString(salt), enc.EncodeToString(ct),
	}, ":")), nil
}

func (s *Layered) open(envelope []byte) ([]byte, error) {
	if !utf8.Valid(envelope) {
		return nil, fmt.Errorf("%w: envelope is not text", ErrDecodeFailed)
	}
	inner := string(envelope)

	if parts := strings.Split(inner, ":"); len(parts) == 4 {
		plain, err := s.unseal(parts)
		if err != nil {
			return nil, err
		}
		inner = string(plain)
	}

	decoded, err := base64.StdEncoding.DecodeString(inner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	alphabet, scrambled, ok := strings.Cut(string(decoded), ":")
	if !ok || utf8.RuneCountInString(alphabet) != utf8.RuneCountInString(baseAlphabet) {
		return nil, fmt.Errorf("%w: malformed cipher envelope", ErrDecodeFailed)
	}

	text := caesar(railFenceDecrypt([]rune(scrambled), railCount), alphabet, -caesarShift)
	return []byte(string(text)), nil
}

func (s *Layered) unseal(parts []string) ([]byte, error) {
	if s.password == "" {
		return nil, fmt.Errorf("%w: payload is password protected", ErrCryptoFailure)
	}
	kdf, err := encryptor.ParseKDF(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	enc := base64.StdEncoding
	iv, errIV := enc.DecodeString(parts[1])
	salt, errSalt := enc.DecodeString(parts[2])
	ct, errCT := enc.DecodeString(parts[3])
	if errIV != nil || errSalt != nil || errCT != nil {
		return nil, fmt.Errorf("%w: malformed sealed envelope", ErrDecodeFailed)
	}

	c := s.cryptoFor(kdf)
	raw, err := c.DeriveKey(s.password, salt)
	if err != nil {
		return nil, fmt.Errorf("%w: key derivation: %v", ErrCryptoFailure, err)
	}
	key := secrets.WrapSecret(raw)
	defer key.Destroy()

	plain, err := c.Decrypt(key.Bytes(), iv, ct)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoFailure, err)
	}
	return plain, nil
}
