package certdoc

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// A4 portrait geometry in millimeters
const (
	pageWidth  = 210.0
	pageMargin = 18.0
)

// ExportError marks a failed PDF encode. The rendered document itself is
// unaffected; only the export action fails.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("pdf export failed: %v", e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// PDFFilename names the downloadable artifact for a certificate
func PDFFilename(certificateID uint) string {
	return fmt.Sprintf("certificate-%d.pdf", certificateID)
}

// ExportPDF encodes a rendered document onto a single-width A4 portrait
// page. Content matches the document tree exactly; only layout is added.
func ExportPDF(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, &ExportError{Err: fmt.Errorf("nil document")}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	contentWidth := pageWidth - 2*pageMargin

	// Clinic header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentWidth, 8, doc.Header.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentWidth, 5, doc.Header.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentWidth, 5, doc.Header.Contact, "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.SetLineWidth(0.6)
	pdf.Line(pageMargin, pdf.GetY(), pageWidth-pageMargin, pdf.GetY())
	pdf.Ln(6)

	// Title block
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentWidth, 7, doc.Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentWidth, 5, "Certificate No: "+doc.Code, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Patient/visit summary
	pdf.SetFont("Helvetica", "", 10)
	half := contentWidth / 2
	pdf.CellFormat(half, 6, "Patient Name: "+doc.Summary.PatientName, "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, fmt.Sprintf("Age: %d years old", doc.Summary.Age), "", 1, "L", false, 0, "")
	pdf.CellFormat(half, 6, "Date of Birth: "+doc.Summary.DateOfBirth, "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, "Visit Date: "+doc.Summary.VisitDate, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	for _, section := range doc.Body {
		writeSection(pdf, section, contentWidth)
	}

	// Footer with signature line
	pdf.Ln(16)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(half, 5, "Issued on: "+doc.Footer.IssuedOn, "", 0, "L", false, 0, "")
	sigX := pageWidth - pageMargin - 60
	y := pdf.GetY()
	pdf.Line(sigX, y+5, pageWidth-pageMargin, y+5)
	pdf.SetXY(sigX, y+6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 5, doc.Footer.Doctor, "", 2, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(60, 5, doc.Footer.Caption, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &ExportError{Err: err}
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *gofpdf.Fpdf, s Section, width float64) {
	switch s.Kind {
	case SectionParagraph:
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(width, 5.5, s.Text, "", "L", false)
		pdf.Ln(2)
	case SectionList:
		pdf.SetFont("Helvetica", "", 10)
		for _, item := range s.Items {
			pdf.CellFormat(6, 5.5, "-", "", 0, "R", false, 0, "")
			pdf.MultiCell(width-6, 5.5, item, "", "L", false)
		}
		pdf.Ln(2)
	case SectionTable:
		if s.Table != nil {
			writeTable(pdf, s.Table, width)
		}
	case SectionLine:
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(width, 5.5, s.Label+": "+s.Value, "", "L", false)
		pdf.Ln(1)
	case SectionWarning:
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(200, 30, 30)
		pdf.MultiCell(width, 5.5, s.Text, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
}

func writeTable(pdf *gofpdf.Fpdf, t *Table, width float64) {
	if len(t.Columns) == 0 {
		return
	}
	colWidth := width / float64(len(t.Columns))

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	for _, col := range t.Columns {
		pdf.CellFormat(colWidth, 7, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range t.Rows {
		for i := range t.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(colWidth, 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}
