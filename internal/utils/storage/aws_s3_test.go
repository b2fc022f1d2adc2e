package storage

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64Image(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	data, ext, err := DecodeBase64Image(payload)
	require.NoError(t, err)
	assert.Equal(t, raw, data)
	assert.Equal(t, "png", ext)
}

func TestDecodeBase64ImageRejectsNonImagePayload(t *testing.T) {
	_, _, err := DecodeBase64Image("data:text/plain;base64,aGVsbG8=")
	assert.ErrorIs(t, err, ErrInvalidBase64Payload)
}

func TestDecodeBase64ImageRejectsMissingMarker(t *testing.T) {
	_, _, err := DecodeBase64Image("data:image/png,aGVsbG8=")
	assert.ErrorIs(t, err, ErrInvalidBase64Payload)
}

func TestDecodeBase64ImageRejectsMalformedBase64(t *testing.T) {
	_, _, err := DecodeBase64Image("data:image/png;base64,!!not-base64!!")
	assert.ErrorIs(t, err, ErrInvalidBase64Payload)
}
