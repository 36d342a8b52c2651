package export

import (
	"slices"

	"github.com/GustavoCaso/expenselog/internal/expense"
)

// Options narrows and names an export. Date bounds are inclusive YYYY-MM-DD
// strings; an empty bound is not applied.
type Options struct {
	Format               Format
	Filename             string
	StartDate            string
	EndDate              string
	Categories           []expense.Category
	IncludeAllCategories bool
}

// Filter returns the expenses matching the date bounds and category set of
// options, keeping their input order. Bounds are not validated: an end date
// before the start date simply matches nothing.
func Filter(expenses []expense.Expense, options Options) []expense.Expense {
	filtered := make([]expense.Expense, 0, len(expenses))

	for _, ex := range expenses {
		if options.StartDate != "" && ex.Date < options.StartDate {
			continue
		}
		if options.EndDate != "" && ex.Date > options.EndDate {
			continue
		}
		if !options.IncludeAllCategories && !slices.Contains(options.Categories, ex.Category) {
			continue
		}
		filtered = append(filtered, ex)
	}

	return filtered
}
