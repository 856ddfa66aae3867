package models

import "time"

// ActivityAction enumerates the recorded audit actions.
type ActivityAction string

const (
	ActionLogin            ActivityAction = "login"
	ActionLogout           ActivityAction = "logout"
	ActionSignLetter       ActivityAction = "sign_letter"
	ActionCreateLetter     ActivityAction = "create_letter"
	ActionUpdateLetter     ActivityAction = "update_letter"
	ActionDeleteLetter     ActivityAction = "delete_letter"
	ActionCreateUser       ActivityAction = "create_user"
	ActionUpdateUser       ActivityAction = "update_user"
	ActionDeleteUser       ActivityAction = "delete_user"
	ActionResetSecretKey   ActivityAction = "reset_secret_key"
	ActionFailedKeyAttempt ActivityAction = "failed_secret_key_attempt"
	ActionCreateEvent      ActivityAction = "create_event"
	ActionUpdateEvent      ActivityAction = "update_event"
	ActionDeleteEvent      ActivityAction = "delete_event"
	ActionClaimCertificate ActivityAction = "claim_certificate"
)

// ActivityLog is an append-only audit record. Logs are written on every
// mutating action and are never updated or deleted by the application.
type ActivityLog struct {
	// ID is the unique identifier of the record (UUID string).
	ID string `json:"id"`

	// UserID is the acting user, empty for anonymous actions (public claims).
	UserID string `json:"user_id,omitempty"`

	// UserName is the acting user's display name captured at write time.
	UserName string `json:"user_name,omitempty"`

	// Action is the recorded action kind.
	Action ActivityAction `json:"action"`

	// Description is a human-readable summary of what happened.
	Description string `json:"description"`

	// Metadata carries optional structured context (entity IDs, etc.).
	Metadata map[string]any `json:"metadata,omitempty"`

	// IPAddress is the remote address of the originating request.
	IPAddress string `json:"ip_address,omitempty"`

	// CreatedAt is the timestamp when the record was appended.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the ActivityLog model.
func (a ActivityLog) TableName() string {
	return "activity_logs"
}
