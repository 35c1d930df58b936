package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// TagModeAnd keeps contracts carrying every selected tag.
	TagModeAnd TagMode = "and"
	// TagModeOr keeps contracts carrying at least one selected tag.
	TagModeOr TagMode = "or"
)

// DefaultIntervalDays is used for contracts without an active pricing period
// so they still appear in the listing with a zero run-rate.
const DefaultIntervalDays = 365

type (
	TagMode string

	// Date is a naive calendar date (UTC midnight, no timezone semantics).
	Date struct {
		time.Time
	}

	Contract struct {
		ID       int64
		Name     string
		Company  string
		Notes    string
		Reminder *Date
	}

	// PricingPeriod is one entry in a contract's pricing history.
	// End == nil means open-ended ("current") pricing.
	PricingPeriod struct {
		ID                  int64
		ContractID          int64
		Start               Date
		End                 *Date
		PaymentIntervalDays int
		Price               decimal.Decimal
	}

	Tag struct {
		ID   int64
		Name string
		// Count is the number of contracts referencing the tag. Derived,
		// only populated by listing queries.
		Count int
	}

	// ContractDocument references a file stored relative to the database
	// directory. Whether the file exists is re-checked on read, never stored.
	ContractDocument struct {
		ID          int64
		ContractID  int64
		File        string
		Description string
		Date        Date
	}
)

var (
	ErrInvalidInterval    = errors.New("payment interval must be at least 1 day")
	ErrInvalidPeriod      = errors.New("period end date before start date")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrEmptyName          = errors.New("empty contract name")
	ErrEmptyTagName       = errors.New("empty tag name")
	ErrDuplicateTagName   = errors.New("tag name already exists")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses an ISO date (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// OnOrBefore reports d <= other.
func (d Date) OnOrBefore(other Date) bool {
	return !d.Time.After(other.Time)
}

// OnOrAfter reports d >= other.
func (d Date) OnOrAfter(other Date) bool {
	return !d.Time.Before(other.Time)
}

func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

func (m TagMode) Validate() error {
	switch m {
	case TagModeAnd, TagModeOr:
		return nil
	}
	return errors.New("invalid tag mode: " + string(m))
}

func (c Contract) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > 200 {
		return errors.New("contract name too long (max 200 characters)")
	}
	return nil
}

// ReminderDue reports whether the reminder date has been reached.
func (c Contract) ReminderDue(today Date) bool {
	return c.Reminder != nil && c.Reminder.OnOrBefore(today)
}

// Validate checks the field constraints enforced at save time. Period
// adjacency and end-before-start are deliberately not rejected here; they are
// flagged at read time instead (see DetectDiscontinuities).
func (p PricingPeriod) Validate() error {
	if p.PaymentIntervalDays < 1 {
		return ErrInvalidInterval
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Start.IsZero() {
		return errors.New("period start date missing")
	}
	return nil
}

func (t Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyTagName
	}
	return nil
}

func (d ContractDocument) Validate() error {
	if strings.TrimSpace(d.File) == "" {
		return errors.New("document file path missing")
	}
	if strings.TrimSpace(d.Description) == "" {
		return errors.New("document description missing")
	}
	return nil
}
