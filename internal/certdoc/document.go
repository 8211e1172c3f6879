// Package certdoc renders stored certificates into a medium-independent
// document tree shared by the on-screen, print, and PDF outputs.
package certdoc

// SectionKind discriminates the body section variants
type SectionKind string

const (
	SectionParagraph SectionKind = "paragraph"
	SectionList      SectionKind = "list"
	SectionTable     SectionKind = "table"
	SectionLine      SectionKind = "line"
	SectionWarning   SectionKind = "warning"
)

// Header is the fixed clinic identity block at the top of every document
type Header struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}

// Summary is the patient/visit block under the title
type Summary struct {
	PatientName string `json:"patient_name"`
	Age         int    `json:"age"`
	DateOfBirth string `json:"date_of_birth"`
	VisitDate   string `json:"visit_date"`
}

// Table is a simple column/row grid; empty cells are allowed
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Section is one body element. Kind selects which fields are meaningful:
// paragraph and warning use Text, list uses Items, table uses Table,
// line uses Label and Value.
type Section struct {
	Kind  SectionKind `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Items []string    `json:"items,omitempty"`
	Table *Table      `json:"table,omitempty"`
	Label string      `json:"label,omitempty"`
	Value string      `json:"value,omitempty"`
}

// Footer closes the document with issuance details and a signature line
type Footer struct {
	IssuedOn string `json:"issued_on"`
	Doctor   string `json:"doctor"`
	Caption  string `json:"caption"`
}

// Document is the complete rendered certificate. Given the same inputs the
// renderer always produces an identical tree.
type Document struct {
	Header  Header    `json:"header"`
	Title   string    `json:"title"`
	Code    string    `json:"code"`
	Summary Summary   `json:"summary"`
	Body    []Section `json:"body"`
	Footer  Footer    `json:"footer"`
}

func paragraph(text string) Section {
	return Section{Kind: SectionParagraph, Text: text}
}

func list(items []string) Section {
	return Section{Kind: SectionList, Items: items}
}

func line(label, value string) Section {
	return Section{Kind: SectionLine, Label: label, Value: value}
}

func warning(text string) Section {
	return Section{Kind: SectionWarning, Text: text}
}
