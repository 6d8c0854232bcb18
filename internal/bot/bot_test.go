package bot

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contactbook/internal/config"
	"github.com/tartampluch/go-contactbook/internal/contacts"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func newTestBot(t *testing.T, lang string) *Bot {
	t.Helper()
	return &Bot{
		Book:  contacts.NewAddressBook(),
		Tr:    NewTranslator(lang),
		Clock: MockClock{CurrentTime: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)},
	}
}

// TestHandle_Session replays a full session; each step depends on the
// previous ones.
func TestHandle_Session(t *testing.T) {
	b := newTestBot(t, "en")

	steps := []struct {
		line string
		want string
	}{
		{"hello", "How can I help you?"},
		{"show all", "No contacts to show."},
		{"add Anna 0501234567", "Contact Anna created with phone +380501234567."},
		{`add Anna "+38 (067) 111-22-33"`, "Phone +380671112233 added to Anna."},
		{"add Anna 0501234567", "Phone +380501234567 is already recorded."},
		{"days Anna", "No birthday is set for Anna."},
		{"birthday Anna 16.06.1990", "Birthday of Anna set to 1990-06-16."},
		{"days Anna", "1 day left until the birthday of Anna."},
		{"birthday Anna 15.06.1990", "Birthday of Anna set to 1990-06-15."},
		{"days anna", `Contact "anna" not found.`},
		{"days Anna", "Today is the birthday of Anna!"},
		{"change Anna 0501234567 0931112233", "Phone of Anna changed from +380501234567 to +380931112233."},
		{"remove Anna 0501234567", "Phone +380501234567 not found."},
		{"phone Anna", "Name: Anna (Birthday: 1990-06-15); Phone: +380671112233, +380931112233"},
		{`add "Bob Stone" 0501112233 01.01.2000`, "Contact Bob Stone created with phone +380501112233.\nBirthday of Bob Stone set to 2000-01-01."},
		{"page 1", "Name: Anna (Birthday: 1990-06-15); Phone: +380671112233, +380931112233"},
		{"page 1 1", "Name: Bob Stone (Birthday: 2000-01-01); Phone: +380501112233"},
		{"page 5 9", "No contacts to show."},
		{"remove Anna 0671112233", "Phone +380671112233 removed from Anna."},
		{"delete Anna", "Contact Anna deleted."},
		{"delete Anna", `Contact "Anna" not found.`},
		{"show all", "Name: Bob Stone (Birthday: 2000-01-01); Phone: +380501112233"},
	}

	for _, s := range steps {
		reply, exit := b.Handle(s.line)
		assert.Equal(t, s.want, reply, s.line)
		assert.False(t, exit, s.line)
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"add Anna 123", `Phone number "123" is too short: enter 10 or 12 digits.`},
		{"add Anna 1234567890123", `Phone number "1234567890123" is too long: enter 10 or 12 digits.`},
		{"add Anna 050-abc-1234", `"050-abc-1234" is not a phone number: only digits, spaces, dashes and brackets are allowed.`},
		{"add Anna 0501234567 31.02.2000", `"31.02.2000" is not a valid date. Use DD.MM.YYYY.`},
		{"add Anna 0501234567 2000-01-01", `"2000-01-01" is not a valid date. Use DD.MM.YYYY.`},
		{`add "  " 0501234567`, "The contact name cannot be empty."},
		{"birthday Nobody 01.01.2000", `Contact "Nobody" not found.`},
		{"change Nobody 0501234567 0501234568", `Contact "Nobody" not found.`},
		{"page x", `"x" is not a valid number.`},
		{"page 1 -2", `"-2" is not a valid number.`},
		{"save", "Saving is not available in this session."},
		{"fly", `Unknown command "fly". Type help to list the commands.`},
		{"add Anna", "Usage: " + config.UsageAdd},
		{"change Anna 1 2 3", "Usage: " + config.UsageChange},
		{"delete", "Usage: " + config.UsageDelete},
		{"page 1 2 3", "Usage: " + config.UsagePage},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			b := newTestBot(t, "en")
			reply, exit := b.Handle(tt.line)
			assert.Equal(t, tt.want, reply)
			assert.False(t, exit)
			assert.Zero(t, b.Book.Len(), "a rejected command must not store anything")
		})
	}
}

func TestHandle_Exit(t *testing.T) {
	for _, line := range []string{"exit", "close", "good bye", "Good  Bye"} {
		t.Run(line, func(t *testing.T) {
			reply, exit := newTestBot(t, "en").Handle(line)
			assert.True(t, exit)
			assert.Equal(t, "Good bye!", reply)
		})
	}
}

// TestHandle_PaddedName keeps an existing contact when a quoted name with
// surrounding spaces is added again.
func TestHandle_PaddedName(t *testing.T) {
	b := newTestBot(t, "en")

	b.Handle("add Anna 0501234567 15.06.1990")

	reply, _ := b.Handle(`add "Anna " 0671112233`)
	assert.Equal(t, "Phone +380671112233 added to Anna.", reply)

	reply, _ = b.Handle("phone Anna")
	assert.Equal(t, "Name: Anna (Birthday: 1990-06-15); Phone: +380501234567, +380671112233", reply)
	assert.Equal(t, 1, b.Book.Len())

	steps := []struct {
		line string
		want string
	}{
		{`phone " Anna"`, "Name: Anna (Birthday: 1990-06-15); Phone: +380501234567, +380671112233"},
		{`change "Anna " 0671112233 0931112233`, "Phone of Anna changed from +380671112233 to +380931112233."},
		{`days "  Anna"`, "Today is the birthday of Anna!"},
		{`delete " Anna "`, "Contact Anna deleted."},
	}
	for _, s := range steps {
		reply, _ := b.Handle(s.line)
		assert.Equal(t, s.want, reply, s.line)
	}
	assert.Zero(t, b.Book.Len())
}

func TestHandle_BlankLine(t *testing.T) {
	reply, exit := newTestBot(t, "en").Handle("   ")
	assert.Empty(t, reply)
	assert.False(t, exit)
}

func TestHandle_OnChange(t *testing.T) {
	b := newTestBot(t, "en")
	changes := 0
	b.OnChange = func() { changes++ }

	b.Handle("add Anna 0501234567")
	b.Handle("show all")
	b.Handle("add Anna 123")
	b.Handle("birthday Anna 01.01.1990")
	b.Handle("days Anna")
	b.Handle("delete Nobody")
	b.Handle("delete Anna")

	assert.Equal(t, 3, changes, "only successful mutations notify")
}

func TestHandle_Save(t *testing.T) {
	b := newTestBot(t, "en")

	b.Save = func() (string, error) { return "/tmp/contacts.vcf", nil }
	reply, _ := b.Handle("save")
	assert.Equal(t, "Address book saved to /tmp/contacts.vcf.", reply)

	b.Save = func() (string, error) { return "", errors.New("disk full") }
	reply, _ = b.Handle("save")
	assert.Equal(t, "Something went wrong. Check the log for details.", reply)
}

func TestHandle_PageDefaultSize(t *testing.T) {
	b := newTestBot(t, "en")
	b.PageSize = 2
	for _, line := range []string{"add A 0500000001", "add B 0500000002", "add C 0500000003"} {
		b.Handle(line)
	}

	reply, _ := b.Handle("page")
	assert.Equal(t, b.Book.Page(2), reply)
	assert.NotContains(t, reply, "Name: C")
}

func TestHandle_CustomCountryCode(t *testing.T) {
	b := newTestBot(t, "en")
	b.CountryCode = "48"

	reply, _ := b.Handle("add Ola 0501234567")
	assert.Equal(t, "Contact Ola created with phone +480501234567.", reply)
}

func TestHandle_Ukrainian(t *testing.T) {
	b := newTestBot(t, "uk")

	reply, _ := b.Handle("add Анна 0501234567 20.06.1990")
	assert.Contains(t, reply, "Контакт Анна створено")

	reply, _ = b.Handle("days Анна")
	assert.Equal(t, "До дня народження Анна залишилося 5 днів.", reply)

	reply, _ = b.Handle("add Анна 12")
	assert.Equal(t, `Номер "12" закороткий: введіть 10 або 12 цифр.`, reply)
}

func TestTranslateError_KeepsValue(t *testing.T) {
	b := newTestBot(t, "en")
	_, err := contacts.NewPhone("12")
	require.Error(t, err)

	assert.Equal(t, `Phone number "12" is too short: enter 10 or 12 digits.`, b.translateError(err))
	assert.Equal(t, contacts.ErrPhoneTooShort, reason(err))
}
