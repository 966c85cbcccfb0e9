// Package testvectors loads the known-answer vectors kept in fixtures/.
package testvectors

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Ed25519Key is an RFC 8032 key: the seed, its clamped SHA-512 half, that
// value reduced mod l, and the public keys in both curve models.
type Ed25519Key struct {
	Seed            string `json:"seed"`
	ClampedScalar   string `json:"clamped_scalar"`
	ReducedScalar   string `json:"reduced_scalar"`
	PublicKey       string `json:"public_key"`
	X25519PublicKey string `json:"x25519_public_key"`
}

// BasepointMultiple is scalar*B in compressed form.
type BasepointMultiple struct {
	Scalar string `json:"scalar"`
	Point  string `json:"point"`
}

// InvalidEncoding is a 32-byte string that must not decode as a point.
type InvalidEncoding struct {
	Name     string `json:"name"`
	Encoding string `json:"encoding"`
	Error    string `json:"error"`
}

// X25519 is an RFC 7748 function vector.
type X25519 struct {
	Scalar string `json:"scalar"`
	U      string `json:"u"`
	Output string `json:"output"`
}

// Vectors is the content of fixtures/vectors.json.
type Vectors struct {
	Ed25519Keys        []Ed25519Key        `json:"ed25519_keys"`
	BasepointMultiples []BasepointMultiple `json:"basepoint_multiples"`
	InvalidEncodings   []InvalidEncoding   `json:"invalid_encodings"`
	X25519             []X25519            `json:"x25519"`
	EightTorsion       []string            `json:"eight_torsion"`
}

// FixturesDir returns the path to the fixtures directory, wherever the
// caller runs from.
func FixturesDir() string {
	_, f, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(f), "..", "..", "fixtures")
}

// Load reads fixtures/vectors.json.
func Load() (*Vectors, error) {
	return LoadFile(filepath.Join(FixturesDir(), "vectors.json"))
}

// LoadFile reads a vectors file from path.
func LoadFile(path string) (*Vectors, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening vectors")
	}
	defer file.Close()

	var v Vectors
	if err := json.NewDecoder(file).Decode(&v); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return &v, nil
}

// Hex decodes s, with or without a 0x prefix.
func Hex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return hex.DecodeString(s)
}

// Hex32 decodes s into exactly 32 bytes.
func Hex32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := Hex(s)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, errors.Errorf("want 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}
