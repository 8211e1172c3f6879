package certdata

import (
	"testing"

	"github.com/quickcert/quickcert-api/internal/models"
)

func TestDecodeRoundTrip(t *testing.T) {
	payloads := []Payload{
		MedicalLeave{
			StartDate: date(2024, 3, 1),
			EndDate:   date(2024, 3, 3),
			Days:      3,
			Remarks:   "bed rest",
		},
		LabRequest{
			Tests:           []string{"CBC", "FBS"},
			FastingRequired: true,
		},
		ResultSummary{
			Results: []ResultRow{{Test: "Glucose", Value: "90", Reference: "70-100"}},
			Remarks: "within normal limits",
		},
	}

	for _, p := range payloads {
		encoded, err := Encode(p)
		if err != nil {
			t.Fatalf("Encode(%s) failed: %v", p.CertType(), err)
		}
		decoded, err := Decode(p.CertType(), encoded)
		if err != nil {
			t.Fatalf("Decode(%s) failed: %v", p.CertType(), err)
		}
		if decoded.CertType() != p.CertType() {
			t.Errorf("decoded type = %s, want %s", decoded.CertType(), p.CertType())
		}
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	if _, err := Decode(models.CertTypeMedicalLeave, "{not json"); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestDecodeUnknownType(t *testing.T) {
	if _, err := Decode("prescription", "{}"); err == nil {
		t.Fatal("expected error for unknown certificate type")
	}
}

func TestDecodeRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name     string
		certType models.CertType
		raw      string
	}{
		{"leave without dates", models.CertTypeMedicalLeave, `{"days":1,"remarks":""}`},
		{"leave with zero days", models.CertTypeMedicalLeave, `{"start_date":"2024-03-01","end_date":"2024-03-03","days":0}`},
		{"lab request without tests", models.CertTypeLabRequest, `{"tests":[],"fasting_required":false}`},
		{"lab request with empty test name", models.CertTypeLabRequest, `{"tests":["CBC",""]}`},
		{"summary row with empty test", models.CertTypeResultSummary, `{"results":[{"test":"","value":"1","reference":""}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.certType, tt.raw); err == nil {
				t.Errorf("Decode accepted invalid payload %q", tt.raw)
			}
		})
	}
}

func TestDecodeAcceptsEmptyResultSummary(t *testing.T) {
	payload, err := Decode(models.CertTypeResultSummary, `{"results":[],"remarks":""}`)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := len(payload.(ResultSummary).Results); got != 0 {
		t.Errorf("got %d rows, want 0", got)
	}
}
