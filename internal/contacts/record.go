package contacts

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tartampluch/go-contactbook/internal/config"
)

// PhoneStatus tells the caller how AddPhone changed the record.
type PhoneStatus int

const (
	// PhoneCreated means the record had no phone before.
	PhoneCreated PhoneStatus = iota + 1
	// PhoneAdded means the number joined existing ones.
	PhoneAdded
)

func (s PhoneStatus) String() string {
	switch s {
	case PhoneCreated:
		return "created"
	case PhoneAdded:
		return "added"
	default:
		return "unknown"
	}
}

// Record is a single contact: a name, its phone numbers and an optional birthday.
type Record struct {
	name     Field
	phones   []Phone
	birthday *Birthday
}

// RecordOption configures a Record at construction time.
type RecordOption func(*Record)

// WithPhone attaches an initial phone number.
func WithPhone(p Phone) RecordOption {
	return func(r *Record) {
		r.phones = append(r.phones, p)
	}
}

// WithBirthday attaches a birthday.
func WithBirthday(b Birthday) RecordOption {
	return func(r *Record) {
		r.birthday = &b
	}
}

// NewRecord creates a record. The name is trimmed and must not be empty.
func NewRecord(name string, opts ...RecordOption) (*Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newError(ErrEmptyName, name)
	}
	r := &Record{name: NewField(name)}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Name returns the contact name, the record's key in an AddressBook.
func (r *Record) Name() string {
	return r.name.Value()
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	return slices.Clone(r.phones)
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// HasPhone reports whether an equal number is already stored.
func (r *Record) HasPhone(p Phone) bool {
	return r.indexOf(p) >= 0
}

// AddPhone appends p. Numbers already present are rejected.
func (r *Record) AddPhone(p Phone) (PhoneStatus, error) {
	if r.HasPhone(p) {
		return 0, newError(ErrDuplicatePhone, p.Value())
	}
	status := PhoneAdded
	if len(r.phones) == 0 {
		status = PhoneCreated
	}
	r.phones = append(r.phones, p)
	return status, nil
}

// EditPhone replaces old with replacement. The new number goes to the end
// of the list. Replacing a number with itself is a no-op.
func (r *Record) EditPhone(old, replacement Phone) error {
	i := r.indexOf(old)
	if i < 0 {
		return newError(ErrPhoneNotFound, old.Value())
	}
	if old.Equal(replacement) {
		return nil
	}
	if r.HasPhone(replacement) {
		return newError(ErrDuplicatePhone, replacement.Value())
	}
	r.phones = append(slices.Delete(r.phones, i, i+1), replacement)
	return nil
}

// RemovePhone drops the first number equal to p.
func (r *Record) RemovePhone(p Phone) error {
	i := r.indexOf(p)
	if i < 0 {
		return newError(ErrPhoneNotFound, p.Value())
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// SetBirthday validates the triple and overwrites any previous birthday.
func (r *Record) SetBirthday(day, month, year int) error {
	b, err := ParseBirthday(day, month, year)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// AssignBirthday stores an already validated birthday.
func (r *Record) AssignBirthday(b Birthday) {
	r.birthday = &b
}

// DaysToBirthday counts whole days from the calendar date of now to the next
// occurrence of the birthday. A birthday today yields 0.
func (r *Record) DaysToBirthday(now time.Time) (int, error) {
	if r.birthday == nil {
		return 0, newError(ErrNoBirthday, r.Name())
	}
	today := calendarDate(now.Year(), now.Month(), now.Day())
	next := nextOccurrence(today, *r.birthday)
	return int(next.Sub(today).Hours() / config.HoursPerDay), nil
}

// String renders the one-line summary used by lookups and listings.
func (r *Record) String() string {
	birthday := config.NoBirthdayDisplay
	if r.birthday != nil {
		birthday = r.birthday.String()
	}
	numbers := make([]string, len(r.phones))
	for i, p := range r.phones {
		numbers[i] = p.Value()
	}
	return fmt.Sprintf(config.FormatRecordSummary,
		r.Name(), birthday, strings.Join(numbers, config.PhoneListSeparator))
}

// Clone returns a deep copy that shares no state with r.
func (r *Record) Clone() *Record {
	c := &Record{name: r.name, phones: slices.Clone(r.phones)}
	if r.birthday != nil {
		b := *r.birthday
		c.birthday = &b
	}
	return c
}

func (r *Record) indexOf(p Phone) int {
	return slices.IndexFunc(r.phones, p.Equal)
}

// nextOccurrence returns this year's anniversary if it is today or later,
// otherwise next year's. Dates are built in UTC so that day arithmetic is
// not skewed by DST transitions. Feb 29 falls on Mar 1 in common years
// because time.Date normalizes it.
func nextOccurrence(today time.Time, b Birthday) time.Time {
	candidate := calendarDate(today.Year(), b.Month(), b.Day())
	if candidate.Before(today) {
		candidate = calendarDate(today.Year()+1, b.Month(), b.Day())
	}
	return candidate
}

func calendarDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
