// Package rfp renders category-specific RFP documents from the field
// values extracted by the drafting model.
package rfp

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/kellerh/ai-procurement/internal/models"
)

// templateFields are the named placeholders every template may reference.
// Any field the drafting model omits is defaulted to an empty string so
// rendering never fails on a missing key.
var templateFields = []string{
	"project_overview",
	"requirements",
	"timeline",
	"budget",
	"evaluation_criteria",
	"submission_instructions",
	"quantity",
	"warranty",
	"sla",
	"quality",
}

const softwareTemplate = `# REQUEST FOR PROPOSAL: SOFTWARE PROCUREMENT
## Project Overview
{{.project_overview}}

## Requirements
{{.requirements}}

## Timeline
{{.timeline}}

## Budget
{{.budget}}

## Evaluation Criteria
{{.evaluation_criteria}}

## Submission Instructions
{{.submission_instructions}}
`

const hardwareTemplate = `# REQUEST FOR PROPOSAL: HARDWARE PROCUREMENT
## Project Overview
{{.project_overview}}

## Technical Specifications
{{.requirements}}

## Quantity
{{.quantity}}

## Delivery Timeline
{{.timeline}}

## Budget
{{.budget}}

## Warranty Requirements
{{.warranty}}

## Submission Instructions
{{.submission_instructions}}
`

const servicesTemplate = `# REQUEST FOR PROPOSAL: SERVICES PROCUREMENT
## Service Overview
{{.project_overview}}

## Scope of Work
{{.requirements}}

## Service Level Requirements
{{.sla}}

## Timeline
{{.timeline}}

## Budget
{{.budget}}

## Evaluation Criteria
{{.evaluation_criteria}}

## Submission Instructions
{{.submission_instructions}}
`

const rawMaterialsTemplate = `# REQUEST FOR PROPOSAL: RAW MATERIALS PROCUREMENT
## Material Overview
{{.project_overview}}

## Material Specifications
{{.requirements}}

## Quantity
{{.quantity}}

## Quality Standards
{{.quality}}

## Delivery Timeline
{{.timeline}}

## Budget
{{.budget}}

## Submission Instructions
{{.submission_instructions}}
`

var templates = map[models.Category]*template.Template{
	models.CategorySoftware:     template.Must(template.New("software").Parse(softwareTemplate)),
	models.CategoryHardware:     template.Must(template.New("hardware").Parse(hardwareTemplate)),
	models.CategoryServices:     template.Must(template.New("services").Parse(servicesTemplate)),
	models.CategoryRawMaterials: template.Must(template.New("raw_materials").Parse(rawMaterialsTemplate)),
}

// Render renders the RFP content for the category from the drafted field
// values. Unknown categories fall back to the Services template.
func Render(category models.Category, fields map[string]string) (string, error) {
	tmpl, ok := templates[category]
	if !ok {
		tmpl = templates[models.CategoryServices]
	}

	data := make(map[string]string, len(templateFields))
	for _, field := range templateFields {
		data[field] = fields[field]
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", category, err)
	}
	return b.String(), nil
}
