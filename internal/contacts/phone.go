package contacts

import (
	"strings"

	"github.com/tartampluch/go-contactbook/internal/config"
)

// phoneSeparators are the formatting characters tolerated in raw input.
var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// Phone is a phone number in canonical international form ("+380501234567").
// The zero value is not a valid phone; use NewPhone or NewPhoneIn.
type Phone struct {
	field       Field
	countryCode string
}

// NewPhone normalizes raw with the default country code.
func NewPhone(raw string) (Phone, error) {
	return NewPhoneIn(raw, config.DefaultCountryCode)
}

// NewPhoneIn normalizes raw, completing 10-digit local numbers with countryCode.
func NewPhoneIn(raw, countryCode string) (Phone, error) {
	canonical, err := NormalizePhone(raw, countryCode)
	if err != nil {
		return Phone{}, err
	}
	return Phone{field: NewField(canonical), countryCode: countryCode}, nil
}

// MustPhone is like NewPhone but panics on invalid input. Intended for tests
// and literals.
func MustPhone(raw string) Phone {
	p, err := NewPhone(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// NormalizePhone converts raw into "+<12 digits>".
//
// Surrounding whitespace and one leading '+' are dropped, then spaces,
// hyphens and parentheses. What remains must be digits only. Twelve digits
// are kept as is, ten digits get countryCode in front, anything else is a
// length error.
func NormalizePhone(raw, countryCode string) (string, error) {
	if err := CheckCountryCode(countryCode); err != nil {
		return "", err
	}

	digits := strings.TrimPrefix(strings.TrimSpace(raw), config.PhonePrefix)
	digits = phoneSeparators.Replace(digits)
	if !isDigits(digits) {
		return "", newError(ErrPhoneFormat, raw)
	}

	switch n := len(digits); {
	case n == config.PhoneDigitsInternational:
		return config.PhonePrefix + digits, nil
	case n == config.PhoneDigitsLocal:
		return config.PhonePrefix + countryCode + digits, nil
	case n > config.PhoneDigitsInternational:
		return "", newError(ErrPhoneTooLong, raw)
	default:
		return "", newError(ErrPhoneTooShort, raw)
	}
}

// Value returns the canonical number.
func (p Phone) Value() string {
	return p.field.Value()
}

// Set normalizes raw and replaces the number. On error the phone is unchanged.
func (p *Phone) Set(raw string) error {
	cc := p.countryCode
	if cc == "" {
		cc = config.DefaultCountryCode
	}
	canonical, err := NormalizePhone(raw, cc)
	if err != nil {
		return err
	}
	p.field.Set(canonical)
	p.countryCode = cc
	return nil
}

// Equal compares canonical values.
func (p Phone) Equal(other Phone) bool {
	return p.field.Equal(other.field)
}

// Masked hides all but the last digits, for logs.
func (p Phone) Masked() string {
	runes := []rune(p.Value())
	visible := 0
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] < '0' || runes[i] > '9' {
			continue
		}
		if visible < config.PhoneMaskVisible {
			visible++
			continue
		}
		runes[i] = config.PhoneMaskRune
	}
	return string(runes)
}

func (p Phone) String() string {
	return p.Value()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isCountryCode(cc string) bool {
	return len(cc) == config.CountryCodeDigits && isDigits(cc)
}

// CheckCountryCode rejects anything but exactly two ASCII digits.
func CheckCountryCode(cc string) error {
	if !isCountryCode(cc) {
		return newError(ErrCountryCode, cc)
	}
	return nil
}
