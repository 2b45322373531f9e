package secrets

// Secret wraps a byte slice that contains sensitive data (e.g., derived keys).
// It provides a mechanism to zero out the memory when no longer needed.
type Secret struct {
	data []byte
}

// WrapSecret takes ownership of data. The caller must not keep using the slice.
func WrapSecret(data []byte) *Secret {
	return &Secret{data: data}
}

// Bytes returns the raw bytes of the secret, or nil after Destroy.
func (s *Secret) Bytes() []byte {
	return s.data
}

// Len returns the secret size in bytes.
func (s *Secret) Len() int {
	return len(s.data)
}

// Destroy overwrites the secret data with zeros. It is idempotent.
func (s *Secret) Destroy() {
	if s.data != nil {
		for i := range s.data {
			s.data[i] = 0
		}
		s.data = nil
	}
}
