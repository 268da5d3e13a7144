package types

import "strings"

// Category groups risks (e.g. vendor, cloud, privacy). It is always stored lowercase
// and the empty category means uncategorized.
type Category string

// UncategorizedLabel is the label used for risks without a category
const UncategorizedLabel = "(uncategorized)"

// NewCategory normalizes a user supplied category
func NewCategory(s string) Category {
	return Category(strings.ToLower(s))
}

// IsEmpty reports whether the category is unset
func (c Category) IsEmpty() bool {
	return c == ""
}

// Label returns the category for display, substituting the uncategorized label
func (c Category) Label() string {
	if c.IsEmpty() {
		return UncategorizedLabel
	}
	return string(c)
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}
