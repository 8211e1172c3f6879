package certdata

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/quickcert/quickcert-api/internal/models"
)

// Decode deserializes a stored cert_data blob into its typed payload.
// The payload is validated before being returned; a blob that does not
// match its type's schema is an error, never a partial result.
func Decode(certType models.CertType, raw string) (Payload, error) {
	var payload Payload
	switch certType {
	case models.CertTypeMedicalLeave:
		var p MedicalLeave
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", certType, err)
		}
		payload = p
	case models.CertTypeLabRequest:
		var p LabRequest
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", certType, err)
		}
		payload = p
	case models.CertTypeResultSummary:
		var p ResultSummary
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", certType, err)
		}
		payload = p
	default:
		return nil, fmt.Errorf("unknown certificate type: %q", certType)
	}

	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", certType, err)
	}
	return payload, nil
}

// Encode serializes a payload for storage
func Encode(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s payload: %w", p.CertType(), err)
	}
	return string(data), nil
}
