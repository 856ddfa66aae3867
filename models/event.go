package models

import "time"

// Event represents an activity for which participants may claim
// certificates until the claim deadline passes.
type Event struct {
	// ID is the unique identifier of the event (UUID string).
	ID string `json:"id"`

	// Name is the event title printed on certificates.
	Name string `json:"name"`

	// Date is when the event takes place.
	Date time.Time `json:"date"`

	// ClaimDeadline is the instant after which claims are rejected.
	ClaimDeadline time.Time `json:"claim_deadline"`

	// TemplateRef points to the certificate background image. It is stored
	// and served verbatim; compositing happens outside this system.
	TemplateRef string `json:"template_ref,omitempty"`

	// TemplateConfig holds overlay positions consumed by the external
	// certificate renderer.
	TemplateConfig TemplateConfig `json:"template_config"`

	// CreatedBy is the ID of the user who created the event.
	CreatedBy string `json:"created_by"`

	// CreatedAt is the timestamp when the event was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateConfig describes where the recipient name and the QR code are
// placed when a certificate image is composed by the external renderer.
type TemplateConfig struct {
	NameX        int `json:"name_x"`
	NameY        int `json:"name_y"`
	NameFontSize int `json:"name_font_size"`
	QRX          int `json:"qr_x"`
	QRY          int `json:"qr_y"`
	QRSize       int `json:"qr_size"`
}

// TableName returns the name of the database table
// associated with the Event model.
func (e Event) TableName() string {
	return "events"
}

// EventUpdate describes a partial update of an event.
// Nil fields are left unchanged.
type EventUpdate struct {
	Name           *string         `json:"name,omitempty"`
	Date           *time.Time      `json:"date,omitempty"`
	ClaimDeadline  *time.Time      `json:"claim_deadline,omitempty"`
	TemplateRef    *string         `json:"template_ref,omitempty"`
	TemplateConfig *TemplateConfig `json:"template_config,omitempty"`
}
