package contacts

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-contactbook/internal/config"
)

// Birthday is a calendar date rendered as YYYY-MM-DD.
type Birthday struct {
	date time.Time
}

// ParseBirthday builds a Birthday from a day/month/year triple. The triple is
// checked against the strict dd.mm.yyyy grammar, which rejects impossible
// dates such as 31.04 or 29.02 of a common year.
func ParseBirthday(day, month, year int) (Birthday, error) {
	input := fmt.Sprintf(config.FormatDateInput, day, month, year)
	if year < config.MinBirthdayYear {
		return Birthday{}, newError(ErrBirthdayFormat, input)
	}
	t, err := time.Parse(config.DateFormatInput, input)
	if err != nil {
		return Birthday{}, newError(ErrBirthdayFormat, input)
	}
	return Birthday{date: t}, nil
}

// ParseBirthdayString accepts "d.m.yyyy" with or without zero padding.
func ParseBirthdayString(s string) (Birthday, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, config.DateInputSeparator)
	if len(parts) != config.DateInputParts {
		return Birthday{}, newError(ErrBirthdayFormat, s)
	}

	var nums [config.DateInputParts]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Birthday{}, newError(ErrBirthdayFormat, s)
		}
		nums[i] = n
	}
	return ParseBirthday(nums[0], nums[1], nums[2])
}

// ParseBirthdayISO accepts the canonical YYYY-MM-DD form and the basic
// YYYYMMDD form found in vCard BDAY values.
func ParseBirthdayISO(s string) (Birthday, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{config.DateFormatISO, config.DateFormatBasic} {
		if t, err := time.Parse(layout, s); err == nil {
			return ParseBirthday(t.Day(), int(t.Month()), t.Year())
		}
	}
	return Birthday{}, newError(ErrBirthdayFormat, s)
}

// Set validates the triple and replaces the date. On error the birthday is unchanged.
func (b *Birthday) Set(day, month, year int) error {
	parsed, err := ParseBirthday(day, month, year)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Date returns the birthday at midnight UTC.
func (b Birthday) Date() time.Time {
	return b.date
}

// Day returns the day of the month.
func (b Birthday) Day() int {
	return b.date.Day()
}

// Month returns the month of the year.
func (b Birthday) Month() time.Month {
	return b.date.Month()
}

// Year returns the birth year.
func (b Birthday) Year() int {
	return b.date.Year()
}

// IsZero reports whether b was never parsed.
func (b Birthday) IsZero() bool {
	return b.date.IsZero()
}

func (b Birthday) String() string {
	return b.date.Format(config.DateFormatISO)
}
