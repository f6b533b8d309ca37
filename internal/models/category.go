package models

import "strings"

// Category is the mutually exclusive classification of a Report.
type Category string

const (
	CategoryPromotion  Category = "PROMOTION"
	CategoryInternship Category = "INTERNSHIP"
	CategoryScam       Category = "SCAM"
	CategoryUnknown    Category = "UNKNOWN"
)

// CategoryInfo carries the display attributes of a category.
type CategoryInfo struct {
	ID    Category `json:"id"`
	Name  string   `json:"name"`
	Color string   `json:"color"`
}

// Categories lists every category in canonical order.
var Categories = []CategoryInfo{
	{ID: CategoryPromotion, Name: "Promotion", Color: "#3b82f6"},
	{ID: CategoryInternship, Name: "Internship", Color: "#ec4899"},
	{ID: CategoryScam, Name: "Scam", Color: "#ef4444"},
	{ID: CategoryUnknown, Name: "Unknown", Color: "#f59e0b"},
}

// Valid reports whether c is one of the four categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPromotion, CategoryInternship, CategoryScam, CategoryUnknown:
		return true
	}
	return false
}

// ParseCategory accepts a category id in any letter case.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}
