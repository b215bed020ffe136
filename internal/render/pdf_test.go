package render

import (
	"testing"

	"github.com/kellerh/ai-procurement/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDF_Render(t *testing.T) {
	rfp := models.NewRFP("req-1", "RFP for CRM Platform", models.CategorySoftware, `# REQUEST FOR PROPOSAL: SOFTWARE PROCUREMENT
## Project Overview
A CRM platform for the sales team.

## Budget
$250,000
`)

	data, err := NewPDF().Render(rfp)

	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]), "output must be a PDF document")
}

func TestPDF_RenderEmptyContent(t *testing.T) {
	rfp := models.NewRFP("req-2", "RFP for Nothing", models.CategoryServices, "")

	data, err := NewPDF().Render(rfp)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestHeadingLevel(t *testing.T) {
	assert.Equal(t, 1, headingLevel("# Title"))
	assert.Equal(t, 2, headingLevel("## Section"))
	assert.Equal(t, 3, headingLevel("### Sub"))
	assert.Equal(t, 0, headingLevel("plain text"))
}
