package expense

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the only accepted representation of an expense date. Keeping
// every date in this layout makes string ordering chronological.
const DateLayout = "2006-01-02"

//nolint:gochecknoinits // amounts are exported as JSON numbers, not strings
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	ErrMissingDate      = errors.New("date is required")
	ErrInvalidDate      = errors.New("date must be formatted as YYYY-MM-DD")
	ErrMissingAmount    = errors.New("amount is required")
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidCategory  = errors.New("invalid category")
)

// Expense is a single dated, categorized, monetary transaction.
type Expense struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Input holds the raw user supplied fields of the add and edit flows.
type Input struct {
	Date        string
	Amount      string
	Category    string
	Description string
}

type fields struct {
	date        string
	amount      decimal.Decimal
	category    Category
	description string
}

// Validate reports every invalid field of the input at once.
func (in Input) Validate() error {
	_, err := in.parse()
	return err
}

func (in Input) parse() (fields, error) {
	var f fields
	var errs []error

	date := strings.TrimSpace(in.Date)
	switch {
	case date == "":
		errs = append(errs, ErrMissingDate)
	case !ValidDate(date):
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDate, date))
	default:
		f.date = date
	}

	amount := strings.TrimSpace(in.Amount)
	if amount == "" {
		errs = append(errs, ErrMissingAmount)
	} else {
		d, err := decimal.NewFromString(amount)
		if err != nil || !d.IsPositive() {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidAmount, amount))
		} else {
			f.amount = d
		}
	}

	category, err := ParseCategory(in.Category)
	if err != nil {
		errs = append(errs, err)
	} else {
		f.category = category
	}

	description := strings.TrimSpace(in.Description)
	switch {
	case description == "":
		errs = append(errs, ErrEmptyDescription)
	default:
		f.description = description
	}

	return f, errors.Join(errs...)
}

// New validates the input and creates an expense with a fresh id. Both
// timestamps are set to now.
func New(in Input, now time.Time) (Expense, error) {
	f, err := in.parse()
	if err != nil {
		return Expense{}, err
	}

	ts := timestamp(now)

	return Expense{
		ID:          uuid.NewString(),
		Date:        f.date,
		Amount:      f.amount,
		Category:    f.category,
		Description: f.description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}, nil
}

// Edit returns the replacement for existing built from the input. The id and
// creation time are carried over.
func Edit(existing Expense, in Input, now time.Time) (Expense, error) {
	f, err := in.parse()
	if err != nil {
		return Expense{}, err
	}

	return Expense{
		ID:          existing.ID,
		Date:        f.date,
		Amount:      f.amount,
		Category:    f.category,
		Description: f.description,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   timestamp(now),
	}, nil
}

// timestamp keeps millisecond precision, the precision of every export format.
func timestamp(now time.Time) time.Time {
	return now.UTC().Truncate(time.Millisecond)
}

// ToInput converts the expense back into editable form.
func (e Expense) ToInput() Input {
	return Input{
		Date:        e.Date,
		Amount:      e.Amount.String(),
		Category:    e.Category.String(),
		Description: e.Description,
	}
}

// ValidDate reports whether s is a real calendar date in DateLayout.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(DateLayout) == s
}

// Total sums the amounts of the given expenses.
func Total(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, ex := range expenses {
		total = total.Add(ex.Amount)
	}
	return total
}
