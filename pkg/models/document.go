package models

// CVDocument is one uploaded CV handed to an extraction provider
type CVDocument struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"-"`
}

// IsPDF reports whether the document should be sent as a binary PDF
func (d CVDocument) IsPDF() bool {
	return d.MIMEType == "application/pdf"
}

// IsHTML reports whether the document is an HTML-exported CV
func (d CVDocument) IsHTML() bool {
	return d.MIMEType == "text/html" || d.MIMEType == "application/xhtml+xml"
}
