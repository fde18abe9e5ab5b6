package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/gamingclub/internal/common"
)

// Hasher turns passwords into self-describing one-way hashes.
type Hasher interface {
	Hash(password []byte) (string, error)
	Verify(password []byte, encoded string) (bool, error)
}

var _ Hasher = (*Argon2)(nil)

var errHashFormat = errors.New("invalid hash format")

// maxArgon2Memory caps the m= parameter read from stored hashes (1 GiB).
const maxArgon2Memory = 1 << 20

// Argon2 hashes with argon2id and encodes the result in the PHC string
// format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>.
type Argon2 struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

func NewArgon2() *Argon2 {
	return &Argon2{
		Memory:      64 * 1024,
		Iterations:  1,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (a *Argon2) Hash(password []byte) (string, error) {
	salt := common.GenerateRandByteArray(int(a.SaltLength))
	key := argon2.IDKey(password, salt, a.Iterations, a.Memory, a.Parallelism, a.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, a.Memory, a.Iterations, a.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify recomputes the key with the parameters stored in encoded, so
// hashes made with other settings still verify.
func (a *Argon2) Verify(password []byte, encoded string) (bool, error) {
	params, salt, key, err := decodeArgon2(encoded)
	if err != nil {
		return false, err
	}
	got := argon2.IDKey(password, salt, params.Iterations, params.Memory, params.Parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, got) == 1, nil
}

func decodeArgon2(encoded string) (*Argon2, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, nil, nil, errHashFormat
	}
	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("unsupported algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: version: %v", errHashFormat, err)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	p := &Argon2{}
	var par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &par); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: params: %v", errHashFormat, err)
	}
	if par == 0 || par > 255 {
		return nil, nil, nil, fmt.Errorf("%w: parallelism %d", errHashFormat, par)
	}
	p.Parallelism = uint8(par)
	if p.Iterations < 1 {
		return nil, nil, nil, fmt.Errorf("%w: iterations %d", errHashFormat, p.Iterations)
	}
	if p.Memory > maxArgon2Memory || p.Memory < 8*par {
		return nil, nil, nil, fmt.Errorf("%w: memory %d", errHashFormat, p.Memory)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: salt: %v", errHashFormat, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: key", errHashFormat)
	}
	return p, salt, key, nil
}
