package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	CertType string `json:"cert_type" validate:"required,oneof=medical_leave lab_request result_summary"`
	CertData string `json:"cert_data" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	ok := sampleRequest{CertType: "medical_leave", CertData: "{}"}
	if err := ValidateStruct(&ok); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}

	missing := sampleRequest{CertType: "medical_leave"}
	if err := ValidateStruct(&missing); err == nil {
		t.Error("missing cert_data accepted")
	}

	wrong := sampleRequest{CertType: "prescription", CertData: "{}"}
	if err := ValidateStruct(&wrong); err == nil {
		t.Error("unknown cert_type accepted")
	}
}

func TestFormatFirstError(t *testing.T) {
	err := ValidateStruct(&sampleRequest{CertType: "medical_leave"})
	msg := FormatFirstError(err)
	if !strings.Contains(msg, "required") {
		t.Errorf("message = %q, want a required-field message", msg)
	}

	err = ValidateStruct(&sampleRequest{CertType: "prescription", CertData: "{}"})
	msg = FormatFirstError(err)
	if !strings.Contains(msg, "must be one of") {
		t.Errorf("message = %q, want a oneof message", msg)
	}

	if got := FormatFirstError(nil); got != "invalid request" {
		t.Errorf("FormatFirstError(nil) = %q", got)
	}
}
