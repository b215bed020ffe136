// Package render produces the document attached to supplier emails.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/kellerh/ai-procurement/internal/models"
)

// PDF renders an RFP into a PDF document. The RFP content is markdown-ish
// text; hash-prefixed lines become headings sized by their nesting level.
type PDF struct{}

// NewPDF creates a PDF renderer
func NewPDF() *PDF {
	return &PDF{}
}

// Render renders the RFP to PDF bytes
func (p *PDF) Render(rfp *models.RFP) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, rfp.Title, "", 1, "C", false, 0, "")
	doc.Ln(5)

	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 10, fmt.Sprintf("Category: %s", rfp.Category), "", 1, "L", false, 0, "")
	doc.Ln(5)

	doc.SetFont("Arial", "", 11)
	for _, line := range strings.Split(rfp.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			level := headingLevel(trimmed)
			text := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))

			switch level {
			case 1:
				doc.SetFont("Arial", "B", 14)
			case 2:
				doc.SetFont("Arial", "B", 12)
			default:
				doc.SetFont("Arial", "B", 11)
			}
			doc.CellFormat(0, 10, text, "", 1, "L", false, 0, "")
			doc.SetFont("Arial", "", 11)
			continue
		}

		doc.MultiCell(0, 5, trimmed, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render RFP %s to PDF: %w", rfp.ID, err)
	}
	return buf.Bytes(), nil
}

func headingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	return level
}
