package models

import "time"

// LetterStatus defines the lifecycle state of a letter.
type LetterStatus string

const (
	// StatusDraft is the initial state: the letter is editable and unsigned.
	StatusDraft LetterStatus = "draft"

	// StatusSigned is terminal: the letter is sealed, has a content hash and
	// a verification payload, and can no longer be edited or deleted.
	StatusSigned LetterStatus = "signed"

	// StatusInvalid marks a letter that has been administratively voided.
	StatusInvalid LetterStatus = "invalid"
)

// Letter represents an official letter going through the draft → signed
// lifecycle.
//
// ContentHash and QRPayload are set if and only if Status is signed; the
// pair is written together with the Signature record inside one storage
// transaction.
type Letter struct {
	// ID is the unique identifier of the letter (UUID string).
	ID string `json:"id"`

	// LetterNumber is the unique human-facing reference (e.g. "001/A/2024").
	LetterNumber string `json:"letter_number"`

	// LetterDate is the official date of the letter.
	LetterDate time.Time `json:"letter_date"`

	// Subject is the letter subject line.
	Subject string `json:"subject"`

	// Attachment describes the attachments ("-" when none).
	Attachment string `json:"attachment"`

	// Content is the optional body text. An absent body is stored as the
	// empty string: the fingerprint canonicalization treats missing and
	// empty content identically, and the store must too.
	Content string `json:"content,omitempty"`

	// Status is the current lifecycle state.
	Status LetterStatus `json:"status"`

	// ContentHash is the letter fingerprint computed at sign time.
	// Empty until the letter is signed.
	ContentHash string `json:"content_hash,omitempty"`

	// QRPayload is the verification payload bound to this letter at sign
	// time (a public verification URL). Empty until signed.
	QRPayload string `json:"qr_payload,omitempty"`

	// CreatedBy is the ID of the user who created the letter.
	CreatedBy string `json:"created_by"`

	// CreatedAt is the timestamp when the letter was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Letter model.
func (l Letter) TableName() string {
	return "letters"
}

// LetterUpdate describes a partial update of a draft letter.
// Nil fields are left unchanged. Updates are rejected entirely once the
// letter is signed, regardless of which fields are set.
type LetterUpdate struct {
	LetterNumber *string    `json:"letter_number,omitempty"`
	LetterDate   *time.Time `json:"letter_date,omitempty"`
	Subject      *string    `json:"subject,omitempty"`
	Attachment   *string    `json:"attachment,omitempty"`
	Content      *string    `json:"content,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u LetterUpdate) Empty() bool {
	return u.LetterNumber == nil && u.LetterDate == nil && u.Subject == nil &&
		u.Attachment == nil && u.Content == nil
}
