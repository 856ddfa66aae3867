// Package qr produces the verification payloads bound to sealed documents
// and renders them as QR code images.
//
// Payload shapes are frozen compatibility surfaces: QR codes are printed on
// paper, so a change to the certificate JSON shape or the verification URL
// path breaks every certificate and letter already issued.
package qr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// PayloadBuilder builds the payload strings encoded into QR codes: a public
// verification URL for letters, a JSON identity envelope for certificates.
type PayloadBuilder struct {
	baseURL string
}

// NewPayloadBuilder constructs a builder rooted at the public base URL of
// the verification frontend (e.g. "https://letters.example.org").
func NewPayloadBuilder(baseURL string) *PayloadBuilder {
	return &PayloadBuilder{baseURL: strings.TrimRight(baseURL, "/")}
}

// VerificationURL returns the public verification URL for a document ID.
// The "/verify/{id}" path is frozen: already-printed letters carry it.
func (b *PayloadBuilder) VerificationURL(documentID string) string {
	return fmt.Sprintf("%s/verify/%s", b.baseURL, documentID)
}

// certificatePayload is the frozen JSON envelope for certificate QR codes.
// Field order and names must not change.
type certificatePayload struct {
	Type          string `json:"type"`
	EventID       string `json:"eventId"`
	ClaimID       string `json:"claimId"`
	RecipientName string `json:"recipientName"`
	CallSign      string `json:"callSign,omitempty"`
	Valid         bool   `json:"valid"`
}

// CertificatePayload returns the canonical certificate payload JSON.
// An empty callSign is omitted entirely, never rendered as null or "".
func (b *PayloadBuilder) CertificatePayload(eventID, claimID, recipientName, callSign string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(certificatePayload{
		Type:          "certificate",
		EventID:       eventID,
		ClaimID:       claimID,
		RecipientName: recipientName,
		CallSign:      callSign,
		Valid:         true,
	})
	if err != nil {
		return "", fmt.Errorf("error encoding certificate payload: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}
