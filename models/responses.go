package models

import "time"

// DocumentType tags the variant carried by a VerificationResult.
type DocumentType string

const (
	// DocumentLetter means the verified ID resolved to a letter.
	DocumentLetter DocumentType = "letter"

	// DocumentCertificate means the verified ID resolved to a claim.
	DocumentCertificate DocumentType = "certificate"
)

// VerificationResult is the outcome of the public verification endpoint.
//
// It is a tagged variant: Type selects which of the optional summaries are
// populated. For letters, IsValid and IsIntegrityValid are reported
// separately so a caller can distinguish "never signed" from "signed but
// tampered". For certificates, validity is existence itself.
type VerificationResult struct {
	// Type selects the variant: letter or certificate.
	Type DocumentType `json:"type"`

	// IsValid reports overall validity. For letters:
	// signed AND signature present AND integrity holds.
	IsValid bool `json:"is_valid"`

	// IsIntegrityValid reports whether the recomputed fingerprint matches
	// the stored one. Always false when the letter has no stored hash.
	// Letter variant only.
	IsIntegrityValid bool `json:"is_integrity_valid,omitempty"`

	// Letter summarizes the verified letter (letter variant).
	Letter *LetterSummary `json:"letter,omitempty"`

	// Signature summarizes the letter's signature, nil when unsigned
	// (letter variant).
	Signature *SignatureSummary `json:"signature,omitempty"`

	// Claim summarizes the verified claim (certificate variant).
	Claim *ClaimSummary `json:"claim,omitempty"`

	// Event summarizes the claim's parent event (certificate variant).
	Event *EventSummary `json:"event,omitempty"`
}

// LetterSummary is the public projection of a letter used by verification.
type LetterSummary struct {
	ID           string       `json:"id"`
	LetterNumber string       `json:"letter_number"`
	LetterDate   time.Time    `json:"letter_date"`
	Subject      string       `json:"subject"`
	Attachment   string       `json:"attachment"`
	Status       LetterStatus `json:"status"`
	ContentHash  string       `json:"content_hash,omitempty"`
}

// SignatureSummary is the public projection of a signature.
type SignatureSummary struct {
	ID         string    `json:"id"`
	SignerName string    `json:"signer_name"`
	SignedAt   time.Time `json:"signed_at"`
}

// ClaimSummary is the public projection of a certificate claim.
type ClaimSummary struct {
	ID                string    `json:"id"`
	RecipientName     string    `json:"recipient_name"`
	CallSign          string    `json:"call_sign,omitempty"`
	CertificateNumber string    `json:"certificate_number"`
	ClaimedAt         time.Time `json:"claimed_at"`
}

// EventSummary is the public projection of an event.
type EventSummary struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// Stats aggregates dashboard counters.
type Stats struct {
	TotalLetters   int `json:"total_letters"`
	SignedLetters  int `json:"signed_letters"`
	DraftLetters   int `json:"draft_letters"`
	InvalidLetters int `json:"invalid_letters"`
	TotalUsers     int `json:"total_users"`
	ActiveUsers    int `json:"active_users"`
	TotalEvents    int `json:"total_events"`
	TotalClaims    int `json:"total_claims"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
