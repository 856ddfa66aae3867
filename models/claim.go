package models

import "time"

// CertificateClaim records a participant claiming a certificate for an
// event. Claims are immutable once created and are removed only by the
// cascading delete of their event.
type CertificateClaim struct {
	// ID is the unique identifier of the claim (UUID string). It is the
	// true identity of the claim and the key used by verification lookups.
	ID string `json:"id"`

	// EventID references the owning event.
	EventID string `json:"event_id"`

	// UserID optionally links the claim to an account (empty for public
	// claims).
	UserID string `json:"user_id,omitempty"`

	// RecipientName is the name printed on the certificate. Multiple claims
	// with the same name are permitted; re-claims are not deduplicated.
	RecipientName string `json:"recipient_name"`

	// CallSign is an optional amateur-radio style identifier shown next to
	// the recipient name.
	CallSign string `json:"call_sign,omitempty"`

	// CertificateNumber is a human-scannable display label derived from
	// truncated event and claim IDs. It is not collision-free and must
	// never be used as a lookup key.
	CertificateNumber string `json:"certificate_number"`

	// QRPayload is the canonical certificate verification payload encoded
	// into the printed QR code.
	QRPayload string `json:"qr_payload"`

	// ClaimedAt is the timestamp when the claim was created.
	ClaimedAt time.Time `json:"claimed_at"`
}

// TableName returns the name of the database table
// associated with the CertificateClaim model.
func (c CertificateClaim) TableName() string {
	return "certificate_claims"
}
