package models

import "strings"

// Category represents a procurement category. The known set is closed;
// anything the classifier invents outside of it is carried verbatim and
// treated as an "other" category that falls back to the default template.
type Category string

const (
	CategorySoftware     Category = "Software"
	CategoryHardware     Category = "Hardware"
	CategoryServices     Category = "Services"
	CategoryRawMaterials Category = "Raw Materials"
)

// KnownCategories returns the recognized procurement categories in a stable order
func KnownCategories() []Category {
	return []Category{CategorySoftware, CategoryHardware, CategoryServices, CategoryRawMaterials}
}

// ParseCategory maps a free-text label to a Category. Known labels are
// matched case-insensitively; unknown labels are preserved as-is so the
// original classifier output remains visible in reports.
func ParseCategory(label string) Category {
	trimmed := strings.TrimSpace(label)
	for _, c := range KnownCategories() {
		if strings.EqualFold(trimmed, string(c)) {
			return c
		}
	}
	return Category(trimmed)
}

// IsKnown returns true if the category is one of the recognized set
func (c Category) IsKnown() bool {
	for _, known := range KnownCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}
