package certdoc

import (
	"bytes"
	"testing"
	"time"

	"github.com/quickcert/quickcert-api/internal/models"
)

func TestPDFFilename(t *testing.T) {
	if got := PDFFilename(42); got != "certificate-42.pdf" {
		t.Errorf("PDFFilename = %q", got)
	}
}

func TestExportPDF(t *testing.T) {
	cert := &models.Certificate{
		ID:        7,
		CertType:  models.CertTypeResultSummary,
		CertData:  `{"results":[{"test":"Glucose","value":"90","reference":"70-100"}],"remarks":"normal"}`,
		CreatedAt: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
	}

	doc, err := NewRenderer(testClinic).Render(cert, testPatient(), testVisit(), renderTime())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	data, err := ExportPDF(doc)
	if err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("export produced no bytes")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", data[:8])
	}
}

func TestExportPDFNilDocument(t *testing.T) {
	_, err := ExportPDF(nil)
	if err == nil {
		t.Fatal("expected error for nil document")
	}
	if _, ok := err.(*ExportError); !ok {
		t.Errorf("error is %T, want *ExportError", err)
	}
}
