package encryptor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	salt := bytes.Repeat([]byte{7}, SaltSize)
	iv := bytes.Repeat([]byte{9}, IVSize)

	for _, kdf := range []KDF{PBKDF2, Scrypt} {
		key, err := DeriveKey(kdf, "correct horse", salt)
		require.NoError(t, err)
		require.Equal(t, KeySize, key.Len())

		ct, err := Encrypt(key.Bytes(), iv, []byte("mischief managed"))
		require.NoError(t, err)
		assert.NotContains(t, string(ct), "mischief")

		pt, err := Decrypt(key.Bytes(), iv, ct)
		require.NoError(t, err)
		assert.Equal(t, "mischief managed", string(pt))
		key.Destroy()
	}
}

func TestWrongPasswordFailsAuthentication(t *testing.T) {
	salt := make([]byte, SaltSize)
	iv := make([]byte, IVSize)
	p := Provider{KDF: PBKDF2}

	good, err := p.DeriveKey("right", salt)
	require.NoError(t, err)
	bad, err := p.DeriveKey("wrong", salt)
	require.NoError(t, err)

	ct, err := p.Encrypt(good, iv, []byte("payload"))
	require.NoError(t, err)

	_, err = p.Decrypt(bad, iv, ct)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{1}, SaltSize)
	a, err := DeriveKey(PBKDF2, "pw", salt)
	require.NoError(t, err)
	b, err := DeriveKey(PBKDF2, "pw", salt)
	require.NoError(t, err)
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestParameterValidation(t *testing.T) {
	_, err := DeriveKey(PBKDF2, "pw", []byte("short"))
	assert.Error(t, err)

	_, err = DeriveKey("bcrypt", "pw", make([]byte, SaltSize))
	assert.ErrorIs(t, err, ErrUnknownKDF)

	_, err = Encrypt(make([]byte, KeySize), make([]byte, 12), nil)
	assert.Error(t, err)

	_, err = ParseKDF("argon")
	assert.ErrorIs(t, err, ErrUnknownKDF)

	kdf, err := ParseKDF("")
	require.NoError(t, err)
	assert.Equal(t, PBKDF2, kdf)
}
