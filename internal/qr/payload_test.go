package qr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationURL(t *testing.T) {
	builder := NewPayloadBuilder("https://letters.example.org")

	got := builder.VerificationURL("0192aef1-8c4d-7f32-b1aa-3d2f00112233")

	assert.Equal(t, "https://letters.example.org/verify/0192aef1-8c4d-7f32-b1aa-3d2f00112233", got)
}

func TestVerificationURL_TrailingSlashBase(t *testing.T) {
	builder := NewPayloadBuilder("https://letters.example.org/")

	got := builder.VerificationURL("abc")

	assert.Equal(t, "https://letters.example.org/verify/abc", got)
}

func TestCertificatePayload_StableShape(t *testing.T) {
	builder := NewPayloadBuilder("https://letters.example.org")

	got, err := builder.CertificatePayload("ev-1234", "cl-5678", "Budi Santoso", "YD1ABC")
	require.NoError(t, err)

	want := `{"type":"certificate","eventId":"ev-1234","claimId":"cl-5678","recipientName":"Budi Santoso","callSign":"YD1ABC","valid":true}`
	assert.Equal(t, want, got)
}

func TestCertificatePayload_OmitsEmptyCallSign(t *testing.T) {
	builder := NewPayloadBuilder("https://letters.example.org")

	got, err := builder.CertificatePayload("ev-1234", "cl-5678", "Budi Santoso", "")
	require.NoError(t, err)

	want := `{"type":"certificate","eventId":"ev-1234","claimId":"cl-5678","recipientName":"Budi Santoso","valid":true}`
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "callSign")
}

func TestCertificatePayload_NoHTMLEscaping(t *testing.T) {
	builder := NewPayloadBuilder("https://letters.example.org")

	got, err := builder.CertificatePayload("ev", "cl", "R&D <Team>", "")
	require.NoError(t, err)

	assert.Contains(t, got, `"R&D <Team>"`)
	assert.NotContains(t, got, `&`)
}

func TestEncodePNG(t *testing.T) {
	encoder := NewEncoder()

	png, err := encoder.EncodePNG("https://letters.example.org/verify/abc", EncodeOptions{})
	require.NoError(t, err)

	pngMagic := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	require.True(t, len(png) > len(pngMagic))
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestEncodePNG_EmptyPayload(t *testing.T) {
	encoder := NewEncoder()

	_, err := encoder.EncodePNG("", EncodeOptions{})

	assert.Error(t, err)
}
