package models

import "time"

// Signature is the recorded attestation created when a letter is signed:
// who attested to what content and when. It is not an asymmetric
// cryptographic signature; the binding to the content is the fingerprint
// copied into ContentHash at sign time.
//
// A letter has at most one signature, created transactionally with the
// letter's transition to signed.
type Signature struct {
	// ID is the unique identifier of the signature (UUID string).
	ID string `json:"id"`

	// LetterID references the owning letter (1:1).
	LetterID string `json:"letter_id"`

	// SignerID is the ID of the user who signed.
	SignerID string `json:"signer_id"`

	// SignerName is the signer's display name captured at sign time.
	SignerName string `json:"signer_name"`

	// SignedAt is the timestamp of the signing transaction.
	SignedAt time.Time `json:"signed_at"`

	// ContentHash is the letter fingerprint at sign time. It must equal the
	// letter's own ContentHash; verification recomputes and compares.
	ContentHash string `json:"content_hash"`

	// Metadata carries optional request context recorded for audit.
	Metadata SignatureMetadata `json:"metadata"`
}

// SignatureMetadata is the optional request context stored with a signature.
type SignatureMetadata struct {
	// IPAddress is the remote address of the signing request, when known.
	IPAddress string `json:"ip_address,omitempty"`

	// UserAgent is the client identification of the signing request.
	UserAgent string `json:"user_agent,omitempty"`

	// Timestamp mirrors the signing time inside the metadata envelope.
	Timestamp time.Time `json:"timestamp"`
}

// TableName returns the name of the database table
// associated with the Signature model.
func (s Signature) TableName() string {
	return "signatures"
}
