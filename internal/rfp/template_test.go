package rfp

import (
	"testing"

	"github.com/kellerh/ai-procurement/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_SoftwareTemplate(t *testing.T) {
	fields := map[string]string{
		"project_overview":        "A CRM platform for 200 users.",
		"requirements":            "Cloud hosted, SSO, API access.",
		"timeline":                "Delivery within 90 days.",
		"budget":                  "$250,000",
		"evaluation_criteria":     "Cost, fit, support.",
		"submission_instructions": "Submit by email.",
	}

	content, err := Render(models.CategorySoftware, fields)
	require.NoError(t, err)

	assert.Contains(t, content, "# REQUEST FOR PROPOSAL: SOFTWARE PROCUREMENT")
	assert.Contains(t, content, "## Project Overview\nA CRM platform for 200 users.")
	assert.Contains(t, content, "## Budget\n$250,000")
	assert.NotContains(t, content, "{{")
}

func TestRender_HardwareTemplateUsesQuantityAndWarranty(t *testing.T) {
	fields := map[string]string{
		"project_overview": "Replace aging rack servers.",
		"requirements":     "64-core, 512GB RAM.",
		"quantity":         "12 units",
		"warranty":         "3 years on-site",
		"timeline":         "Q3 delivery",
		"budget":           "180,000 USD",
	}

	content, err := Render(models.CategoryHardware, fields)
	require.NoError(t, err)

	assert.Contains(t, content, "HARDWARE PROCUREMENT")
	assert.Contains(t, content, "## Quantity\n12 units")
	assert.Contains(t, content, "## Warranty Requirements\n3 years on-site")
}

func TestRender_MissingFieldsDefaultToEmpty(t *testing.T) {
	content, err := Render(models.CategoryRawMaterials, map[string]string{
		"project_overview": "Steel sheet supply.",
	})
	require.NoError(t, err)

	assert.Contains(t, content, "## Material Overview\nSteel sheet supply.")
	assert.Contains(t, content, "## Quality Standards\n\n")
	assert.NotContains(t, content, "<no value>")
}

func TestRender_UnknownCategoryFallsBackToServices(t *testing.T) {
	content, err := Render(models.ParseCategory("Consulting"), map[string]string{
		"project_overview": "Advisory engagement.",
	})
	require.NoError(t, err)

	assert.Contains(t, content, "SERVICES PROCUREMENT")
	assert.Contains(t, content, "## Service Overview\nAdvisory engagement.")
}

func TestRender_NilFields(t *testing.T) {
	content, err := Render(models.CategoryServices, nil)
	require.NoError(t, err)
	assert.Contains(t, content, "SERVICES PROCUREMENT")
}
