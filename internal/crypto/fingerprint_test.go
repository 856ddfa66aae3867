package crypto

import (
	"strings"
	"testing"
	"time"
)

var fp = NewFingerprintService()

func TestHashContent_KnownAnswer(t *testing.T) {
	got := fp.HashContent([]byte("hello world"))
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got != want {
		t.Fatalf("digest mismatch:\n got  %s\n want %s", got, want)
	}
}

// TestLetterFingerprint_KnownAnswer pins the canonical serialization.
// If this test fails, the canonical form changed and every previously
// issued fingerprint is invalid — that is a breaking change, not a test
// to update casually.
func TestLetterFingerprint_KnownAnswer(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	got := fp.LetterFingerprint("001/A/2024", date, "Test", "-", "")
	want := "53ae89030be840268b85bea555e71b06fa953585049ad621581072a3d449b415"
	if got != want {
		t.Fatalf("canonical form drifted:\n got  %s\n want %s", got, want)
	}
}

func TestSignatureFingerprint_KnownAnswer(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	letterDigest := fp.LetterFingerprint("001/A/2024", date, "Test", "-", "")

	signedAt := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)
	got := fp.SignatureFingerprint(letterDigest, "u1", signedAt)
	want := "6870669970a8638a82d638dbaebac788ec893bd78bf807112cff46915216a99d"
	if got != want {
		t.Fatalf("signature canonical form drifted:\n got  %s\n want %s", got, want)
	}
}

func TestLetterFingerprint_Deterministic(t *testing.T) {
	date := time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC)

	first := fp.LetterFingerprint("100/B/2023", date, "Budget", "3 sheets", "body")
	second := fp.LetterFingerprint("100/B/2023", date, "Budget", "3 sheets", "body")
	if first != second {
		t.Fatalf("same inputs produced different digests: %s vs %s", first, second)
	}
}

func TestLetterFingerprint_TimeZoneNormalized(t *testing.T) {
	utc := time.Date(2024, 1, 10, 7, 0, 0, 0, time.UTC)
	jakarta := utc.In(time.FixedZone("WIB", 7*3600))

	if fp.LetterFingerprint("1", utc, "s", "a", "") != fp.LetterFingerprint("1", jakarta, "s", "a", "") {
		t.Fatal("same instant in different zones must canonicalize identically")
	}
}

func TestLetterFingerprint_FieldSensitivity(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	base := fp.LetterFingerprint("001/A/2024", date, "Test", "-", "")

	variants := map[string]string{
		"letterNumber": fp.LetterFingerprint("001/A/2025", date, "Test", "-", ""),
		"letterDate":   fp.LetterFingerprint("001/A/2024", date.Add(time.Millisecond), "Test", "-", ""),
		"subject":      fp.LetterFingerprint("001/A/2024", date, "Test!", "-", ""),
		"attachment":   fp.LetterFingerprint("001/A/2024", date, "Test", "1 sheet", ""),
		"content":      fp.LetterFingerprint("001/A/2024", date, "Test", "-", "x"),
	}
	for field, digest := range variants {
		if digest == base {
			t.Errorf("changing %s did not change the fingerprint", field)
		}
	}
}

// Concatenation without separators would collide ("ab","c") with ("a","bc").
// The JSON canonical form keeps field boundaries.
func TestLetterFingerprint_NoBoundaryCollision(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	left := fp.LetterFingerprint("ab", date, "c", "-", "")
	right := fp.LetterFingerprint("a", date, "bc", "-", "")
	if left == right {
		t.Fatal("field boundary collision in canonical form")
	}
}

func TestLetterFingerprint_HTMLCharactersNotEscaped(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	withAmp := fp.LetterFingerprint("1", date, "R&D <review>", "-", "")
	canonical := `{"letterNumber":"1","letterDate":"2024-01-10T00:00:00.000Z","subject":"R&D <review>","attachment":"-","content":""}`
	if withAmp != fp.HashContent([]byte(canonical)) {
		t.Fatal("canonical form must not HTML-escape content")
	}
}

func TestVerifyLetterIntegrity(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	digest := fp.LetterFingerprint("001/A/2024", date, "Test", "-", "")

	if !fp.VerifyLetterIntegrity("001/A/2024", date, "Test", "-", "", digest) {
		t.Fatal("round-trip verification failed")
	}
	if fp.VerifyLetterIntegrity("001/A/2024", date, "Tampered", "-", "", digest) {
		t.Fatal("verification passed against a different subject")
	}
	if fp.VerifyLetterIntegrity("001/A/2024", date, "Test", "-", "", strings.ToUpper(digest)) {
		t.Fatal("comparison must be exact, not case-tolerant")
	}
}
