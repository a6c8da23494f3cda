// Package cryptox hashes and verifies account credentials with Argon2id.
// Hashes are stored in the PHC string format:
//
//	$argon2id$v=19$m=<KiB>,t=<iterations>,p=<parallelism>$<salt>$<hash>
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ecovate/internal/common"
	"golang.org/x/crypto/argon2"
)

// ErrMismatch is returned by VerifySecret when the secret does not match.
var ErrMismatch = errors.New("secret does not match")

// ErrMalformedHash is returned when an encoded hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed argon2id hash")

// Params tunes Argon2id.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
	SaltLength  int
}

// DefaultParams follows the OWASP minimum for Argon2id.
var DefaultParams = Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

// HashSecret derives an Argon2id hash of secret with a fresh random salt and
// returns it PHC-encoded.
func HashSecret(secret []byte, p Params) (string, error) {
	if p.SaltLength <= 0 || p.KeyLength == 0 {
		return "", fmt.Errorf("invalid argon2id params: %+v", p)
	}
	salt := common.GenerateRandByteArray(p.SaltLength)
	hash := argon2.IDKey(secret, salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Upper bounds accepted when decoding a stored hash. They keep a corrupt or
// hostile record from pinning the CPU or exhausting memory.
const (
	MaxMemory      = 256 * 1024 // KiB
	MaxIterations  = 16
	MaxParallelism = 16
	MaxKeyLength   = 64
)

type decoded struct {
	params Params
	salt   []byte
	hash   []byte
}

func decode(encoded string) (decoded, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return decoded{}, fmt.Errorf("%w: expected 6 parts", ErrMalformedHash)
	}
	if parts[1] != "argon2id" {
		return decoded{}, fmt.Errorf("%w: not argon2id", ErrMalformedHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return decoded{}, fmt.Errorf("%w: unsupported version %s", ErrMalformedHash, parts[2])
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return decoded{}, fmt.Errorf("%w: params: %v", ErrMalformedHash, err)
	}
	switch {
	case p.Memory == 0 || p.Memory > MaxMemory:
		return decoded{}, fmt.Errorf("%w: memory %d out of range", ErrMalformedHash, p.Memory)
	case p.Iterations == 0 || p.Iterations > MaxIterations:
		return decoded{}, fmt.Errorf("%w: iterations %d out of range", ErrMalformedHash, p.Iterations)
	case p.Parallelism == 0 || p.Parallelism > MaxParallelism:
		return decoded{}, fmt.Errorf("%w: parallelism %d out of range", ErrMalformedHash, p.Parallelism)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return decoded{}, fmt.Errorf("%w: salt", ErrMalformedHash)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 || len(hash) > MaxKeyLength {
		return decoded{}, fmt.Errorf("%w: hash", ErrMalformedHash)
	}
	p.SaltLength = len(salt)
	p.KeyLength = uint32(len(hash))
	return decoded{params: p, salt: salt, hash: hash}, nil
}

// CheckEncoded reports whether encoded is a well-formed Argon2id hash whose
// parameters are within the accepted bounds. It does not derive any key.
func CheckEncoded(encoded string) error {
	_, err := decode(encoded)
	return err
}

// VerifySecret checks secret against a PHC-encoded Argon2id hash using the
// parameters recorded in the hash itself.
func VerifySecret(secret []byte, encoded string) error {
	d, err := decode(encoded)
	if err != nil {
		return err
	}
	p := d.params
	got := argon2.IDKey(secret, d.salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	if subtle.ConstantTimeCompare(got, d.hash) != 1 {
		return ErrMismatch
	}
	return nil
}
