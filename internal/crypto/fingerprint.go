package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// canonicalTimeLayout renders timestamps the way the canonical form
// requires: UTC, millisecond precision, trailing "Z"
// (e.g. "2024-01-10T00:00:00.000Z").
const canonicalTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// canonicalLetter is the frozen serialization of a letter's identity
// fields. Field order and JSON names are part of the compatibility
// contract; struct-field order pins the marshaled key order.
type canonicalLetter struct {
	LetterNumber string `json:"letterNumber"`
	LetterDate   string `json:"letterDate"`
	Subject      string `json:"subject"`
	Attachment   string `json:"attachment"`
	Content      string `json:"content"`
}

// canonicalSignature is the frozen serialization hashed by
// SignatureFingerprint.
type canonicalSignature struct {
	LetterHash string `json:"letterHash"`
	SignerID   string `json:"signerId"`
	Timestamp  string `json:"timestamp"`
}

// fingerprintService is the stateless implementation of
// [FingerprintService].
type fingerprintService struct{}

// NewFingerprintService constructs a [FingerprintService].
func NewFingerprintService() FingerprintService {
	return &fingerprintService{}
}

// HashContent implements [FingerprintService].
func (f *fingerprintService) HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// LetterFingerprint implements [FingerprintService]. The date is
// normalized to UTC milliseconds before serialization so that the same
// logical instant always canonicalizes identically regardless of the
// source time zone.
func (f *fingerprintService) LetterFingerprint(letterNumber string, letterDate time.Time, subject, attachment, content string) string {
	return f.HashContent(marshalCanonical(canonicalLetter{
		LetterNumber: letterNumber,
		LetterDate:   canonicalTime(letterDate),
		Subject:      subject,
		Attachment:   attachment,
		Content:      content,
	}))
}

// SignatureFingerprint implements [FingerprintService].
func (f *fingerprintService) SignatureFingerprint(letterDigest, signerID string, signedAt time.Time) string {
	return f.HashContent(marshalCanonical(canonicalSignature{
		LetterHash: letterDigest,
		SignerID:   signerID,
		Timestamp:  canonicalTime(signedAt),
	}))
}

// VerifyLetterIntegrity implements [FingerprintService]. Exact string
// equality only: any byte difference in the five canonical fields flips
// the result to false.
func (f *fingerprintService) VerifyLetterIntegrity(letterNumber string, letterDate time.Time, subject, attachment, content, storedDigest string) bool {
	return f.LetterFingerprint(letterNumber, letterDate, subject, attachment, content) == storedDigest
}

func canonicalTime(t time.Time) string {
	return t.UTC().Format(canonicalTimeLayout)
}

// marshalCanonical serializes v without HTML escaping, so "<", ">" and "&"
// appear verbatim in the canonical form. Fingerprints issued over content
// containing those characters depend on it.
func marshalCanonical(v any) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	// Encoding a flat struct of strings cannot fail.
	if err := enc.Encode(v); err != nil {
		panic("crypto: canonical serialization failed: " + err.Error())
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}
