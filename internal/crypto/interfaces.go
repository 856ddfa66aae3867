// Package crypto implements the document fingerprint engine and the
// secret-key credential manager.
//
// The fingerprint side is pure: a fixed canonical serialization of a
// letter's five identity fields fed into SHA-256. The canonical form is a
// frozen compatibility surface — any change silently invalidates every
// previously issued fingerprint, so it is pinned by known-answer tests.
//
// The credential side issues opaque bearer keys, stores only their bcrypt
// hashes, and verifies presented keys through bcrypt's own comparison.
package crypto

import "time"

// FingerprintService computes and verifies deterministic content
// fingerprints. Implementations are stateless and safe for concurrent use.
type FingerprintService interface {
	// HashContent returns the lowercase-hex SHA-256 digest of data.
	HashContent(data []byte) string

	// LetterFingerprint canonicalizes the five letter identity fields and
	// returns the digest of the canonical form. An absent body must be
	// passed as the empty string; the canonical form has no other
	// representation for "no content".
	LetterFingerprint(letterNumber string, letterDate time.Time, subject, attachment, content string) string

	// SignatureFingerprint derives an audit digest binding a letter
	// fingerprint to a signer identity and a signing time. The letter's
	// stored content hash is always the LetterFingerprint, not this value.
	SignatureFingerprint(letterDigest, signerID string, signedAt time.Time) string

	// VerifyLetterIntegrity recomputes the letter fingerprint and compares
	// it byte-for-byte against storedDigest.
	VerifyLetterIntegrity(letterNumber string, letterDate time.Time, subject, attachment, content, storedDigest string) bool
}

// CredentialService manages the secret-key lifecycle: generation, one-way
// hashing for storage, and verification against stored hashes.
//
// A raw secret key surfaces exactly once, from the generation call; only
// the hash is ever persisted. There is no way to recover a key — loss
// requires generating a replacement.
type CredentialService interface {
	// GenerateSecretKey returns a new opaque key from the OS CSPRNG,
	// formatted for one-time display ("SK-" prefix, uppercase hex groups).
	GenerateSecretKey() (string, error)

	// HashSecretKey returns a salted bcrypt hash of secretKey. Two calls
	// with the same input produce different hashes; equality comparison of
	// hashes is meaningless, use VerifySecretKey.
	HashSecretKey(secretKey string) (string, error)

	// VerifySecretKey reports whether secretKey matches storedHash using
	// bcrypt's comparison (never rehash-and-compare).
	VerifySecretKey(secretKey, storedHash string) bool
}
