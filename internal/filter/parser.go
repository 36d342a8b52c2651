package filter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/expenselog/internal/expense"
)

// parseAmount parses a non-negative decimal amount.
// Examples: "10.50", "5"
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount cannot be empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format: %w", err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount cannot be negative")
	}

	return d, nil
}

// parseSort parses a sort string like "date:desc" into SortOptions.
func parseSort(s string) (*SortOptions, error) {
	if s == "" {
		return nil, fmt.Errorf("sort string cannot be empty")
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid sort format, expected field:direction")
	}

	field := SortField(parts[0])
	direction := SortDirection(parts[1])

	// Validate field
	if field != SortByDate && field != SortByAmount {
		return nil, fmt.Errorf("invalid sort field: %s (must be date or amount)", field)
	}

	// Validate direction
	if direction != SortAsc && direction != SortDesc {
		return nil, fmt.Errorf("invalid sort direction: %s (must be asc or desc)", direction)
	}

	return &SortOptions{
		Field:     field,
		Direction: direction,
	}, nil
}

func parseDate(name, s string) (*string, error) {
	if !expense.ValidDate(s) {
		return nil, fmt.Errorf("invalid %s: %w: %q", name, expense.ErrInvalidDate, s)
	}
	return &s, nil
}

// ParseExpenseFilters parses query parameters into filter and sort options.
// Recognised keys: category, q, amount_min, amount_max, date_from, date_to
// and sort.
func ParseExpenseFilters(params url.Values) (*ExpenseFilter, *SortOptions, error) {
	filter := &ExpenseFilter{}
	sort := DefaultSortOptions()

	if name := params.Get("category"); name != "" {
		c, err := expense.ParseCategory(name)
		if err != nil {
			return nil, nil, err
		}
		filter.Category = &c
	}

	if query := params.Get("q"); query != "" {
		filter.Query = &query
	}

	// Parse amount range
	if minStr := params.Get("amount_min"); minStr != "" {
		val, err := parseAmount(minStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid amount_min: %w", err)
		}
		filter.AmountMin = &val
	}

	if maxStr := params.Get("amount_max"); maxStr != "" {
		val, err := parseAmount(maxStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid amount_max: %w", err)
		}
		filter.AmountMax = &val
	}

	// Parse date range
	if fromStr := params.Get("date_from"); fromStr != "" {
		val, err := parseDate("date_from", fromStr)
		if err != nil {
			return nil, nil, err
		}
		filter.DateFrom = val
	}

	if toStr := params.Get("date_to"); toStr != "" {
		val, err := parseDate("date_to", toStr)
		if err != nil {
			return nil, nil, err
		}
		filter.DateTo = val
	}

	// Parse sort
	if sortStr := params.Get("sort"); sortStr != "" {
		parsed, err := parseSort(sortStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid sort: %w", err)
		}
		sort = parsed
	}

	return filter, sort, nil
}
