package expense

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the closed set of expense categories.
type Category int

const (
	Food Category = iota
	Transportation
	Entertainment
	Shopping
	Bills
	Other
)

// Categories lists every category in enumeration order. The order breaks ties
// when ranking categories.
var Categories = []Category{Food, Transportation, Entertainment, Shopping, Bills, Other}

var categoryNames = map[Category]string{
	Food:           "Food",
	Transportation: "Transportation",
	Entertainment:  "Entertainment",
	Shopping:       "Shopping",
	Bills:          "Bills",
	Other:          "Other",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Valid reports whether c belongs to the enumeration.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory matches s case-insensitively against the category names.
func ParseCategory(s string) (Category, error) {
	name := strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(categoryNames[c], name) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// ParseCategories parses a comma separated list of category names.
func ParseCategories(s string) ([]Category, error) {
	if strings.TrimSpace(s) == "" {
		return []Category{}, nil
	}

	parts := strings.Split(s, ",")
	categories := make([]Category, 0, len(parts))
	for _, part := range parts {
		c, err := ParseCategory(part)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var _ json.Marshaler = Category(0)

func (c Category) MarshalJSON() ([]byte, error) {
	text, err := c.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return c.UnmarshalText([]byte(s))
}
