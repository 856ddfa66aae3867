package models

import "time"

// Request payload types decoded by the HTTP layer. Validation tags are
// enforced with go-playground/validator before a request reaches a service.

// LoginRequest carries the credentials for POST /api/auth/login.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	SecretKey string `json:"secret_key" validate:"required"`
}

// CreateLetterRequest carries the fields for POST /api/letters.
type CreateLetterRequest struct {
	LetterNumber string    `json:"letter_number" validate:"required"`
	LetterDate   time.Time `json:"letter_date" validate:"required"`
	Subject      string    `json:"subject" validate:"required"`
	Attachment   string    `json:"attachment" validate:"required"`
	Content      string    `json:"content"`
}

// SignLetterRequest carries the signer's secret key for
// POST /api/letters/{id}/sign. The signer identity comes from the session
// token, never from the payload.
type SignLetterRequest struct {
	SecretKey string `json:"secret_key" validate:"required"`
}

// CreateUserRequest carries the fields for POST /api/users.
// The secret key is generated server-side and revealed once in the response.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     Role   `json:"role" validate:"required,oneof=super_admin admin user"`
	IsActive *bool  `json:"is_active"`
}

// CreateEventRequest carries the fields for POST /api/events.
type CreateEventRequest struct {
	Name           string         `json:"name" validate:"required"`
	Date           time.Time      `json:"date" validate:"required"`
	ClaimDeadline  time.Time      `json:"claim_deadline" validate:"required"`
	TemplateRef    string         `json:"template_ref"`
	TemplateConfig TemplateConfig `json:"template_config"`
}

// ClaimCertificateRequest carries the fields for
// POST /api/events/{id}/claims. The endpoint is public; UserID is optional.
type ClaimCertificateRequest struct {
	RecipientName string `json:"recipient_name" validate:"required"`
	CallSign      string `json:"call_sign"`
	UserID        string `json:"user_id"`
}
