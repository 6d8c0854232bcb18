package contacts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecord(t *testing.T, name string, opts ...RecordOption) *Record {
	t.Helper()
	r, err := NewRecord(name, opts...)
	require.NoError(t, err)
	return r
}

func mustBirthday(t *testing.T, day, month, year int) Birthday {
	t.Helper()
	b, err := ParseBirthday(day, month, year)
	require.NoError(t, err)
	return b
}

func TestNewRecord(t *testing.T) {
	r := mustRecord(t, "  Anna ", WithPhone(MustPhone("0501234567")))
	assert.Equal(t, "Anna", r.Name())
	assert.Len(t, r.Phones(), 1)

	_, ok := r.Birthday()
	assert.False(t, ok)

	_, err := NewRecord("   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestRecord_AddPhone(t *testing.T) {
	r := mustRecord(t, "Anna")

	status, err := r.AddPhone(MustPhone("0501234567"))
	require.NoError(t, err)
	assert.Equal(t, PhoneCreated, status)

	status, err = r.AddPhone(MustPhone("0671112233"))
	require.NoError(t, err)
	assert.Equal(t, PhoneAdded, status)

	// Same number in another spelling is a duplicate.
	_, err = r.AddPhone(MustPhone("+38 050 123 45 67"))
	assert.ErrorIs(t, err, ErrDuplicatePhone)
	assert.Len(t, r.Phones(), 2)
}

func TestRecord_EditPhone(t *testing.T) {
	first := MustPhone("0501234567")
	second := MustPhone("0671112233")
	third := MustPhone("0931234567")

	r := mustRecord(t, "Anna", WithPhone(first), WithPhone(second))

	require.NoError(t, r.EditPhone(first, third))
	assert.Equal(t, []Phone{second, third}, r.Phones(), "Replacement is appended")

	err := r.EditPhone(first, third)
	assert.ErrorIs(t, err, ErrPhoneNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	err = r.EditPhone(second, third)
	assert.ErrorIs(t, err, ErrDuplicatePhone)
	assert.Equal(t, []Phone{second, third}, r.Phones(), "Rejected edit must not mutate")

	require.NoError(t, r.EditPhone(second, second))
	assert.Equal(t, []Phone{second, third}, r.Phones())
}

func TestRecord_RemovePhone(t *testing.T) {
	p := MustPhone("0501234567")
	r := mustRecord(t, "Anna", WithPhone(p))

	require.NoError(t, r.RemovePhone(p))
	assert.Empty(t, r.Phones())

	err := r.RemovePhone(p)
	assert.ErrorIs(t, err, ErrPhoneNotFound)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "+380501234567", cerr.Value)
}

func TestRecord_SetBirthday(t *testing.T) {
	r := mustRecord(t, "Anna")

	require.NoError(t, r.SetBirthday(15, 6, 1990))
	b, ok := r.Birthday()
	require.True(t, ok)
	assert.Equal(t, "1990-06-15", b.String())

	// Invalid input keeps the previous value.
	assert.ErrorIs(t, r.SetBirthday(31, 6, 1990), ErrBirthdayFormat)
	b, _ = r.Birthday()
	assert.Equal(t, "1990-06-15", b.String())

	r.AssignBirthday(mustBirthday(t, 1, 1, 2000))
	b, _ = r.Birthday()
	assert.Equal(t, "2000-01-01", b.String())
}

// TestRecord_DaysToBirthday covers today, past, future and year boundaries.
func TestRecord_DaysToBirthday(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		birthday Birthday
		want     int
	}{
		{
			name:     "Birthday today",
			now:      time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC),
			birthday: mustBirthday(t, 15, 6, 1990),
			want:     0,
		},
		{
			name:     "Tomorrow",
			now:      time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
			birthday: mustBirthday(t, 16, 6, 1990),
			want:     1,
		},
		{
			name:     "Yesterday, next year is common",
			now:      time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
			birthday: mustBirthday(t, 14, 6, 1990),
			want:     364,
		},
		{
			name:     "Yesterday, crossing Feb 29",
			now:      time.Date(2023, 6, 15, 8, 0, 0, 0, time.UTC),
			birthday: mustBirthday(t, 14, 6, 1990),
			want:     365,
		},
		{
			name:     "New year's eve to Jan 1",
			now:      time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC),
			birthday: mustBirthday(t, 1, 1, 2000),
			want:     1,
		},
		{
			name:     "Leapling in a leap year",
			now:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			birthday: mustBirthday(t, 29, 2, 2000),
			want:     28,
		},
		{
			name:     "Leapling in a common year lands on Mar 1",
			now:      time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC),
			birthday: mustBirthday(t, 29, 2, 2000),
			want:     2,
		},
		{
			name:     "Local time zone uses the local calendar date",
			now:      time.Date(2025, 6, 15, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)),
			birthday: mustBirthday(t, 15, 6, 1990),
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRecord(t, "Anna", WithBirthday(tt.birthday))
			got, err := r.DaysToBirthday(tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestRecord_DaysToBirthday_NotSet(t *testing.T) {
	r := mustRecord(t, "Anna")
	_, err := r.DaysToBirthday(time.Now())
	assert.ErrorIs(t, err, ErrNoBirthday)
}

func TestNextOccurrence(t *testing.T) {
	today := calendarDate(2025, time.June, 15)

	got := nextOccurrence(today, mustBirthday(t, 1, 1, 1990))
	assert.Equal(t, calendarDate(2026, time.January, 1), got)

	got = nextOccurrence(today, mustBirthday(t, 31, 12, 1990))
	assert.Equal(t, calendarDate(2025, time.December, 31), got)
}

func TestRecord_String(t *testing.T) {
	r := mustRecord(t, "Anna", WithPhone(MustPhone("0501234567")), WithPhone(MustPhone("0671112233")))
	assert.Equal(t, "Name: Anna (Birthday: none); Phone: +380501234567, +380671112233", r.String())

	r.AssignBirthday(mustBirthday(t, 29, 2, 2024))
	assert.Equal(t, "Name: Anna (Birthday: 2024-02-29); Phone: +380501234567, +380671112233", r.String())

	assert.Equal(t, "Name: Bob (Birthday: none); Phone: ", mustRecord(t, "Bob").String())
}

func TestRecord_Clone(t *testing.T) {
	r := mustRecord(t, "Anna", WithPhone(MustPhone("0501234567")), WithBirthday(mustBirthday(t, 1, 1, 2000)))
	c := r.Clone()

	_, err := c.AddPhone(MustPhone("0671112233"))
	require.NoError(t, err)
	require.NoError(t, c.SetBirthday(2, 2, 2002))

	assert.Len(t, r.Phones(), 1, "Clone must not share the phone slice")
	b, _ := r.Birthday()
	assert.Equal(t, "2000-01-01", b.String(), "Clone must not share the birthday")
}

func TestPhoneStatus_String(t *testing.T) {
	assert.Equal(t, "created", PhoneCreated.String())
	assert.Equal(t, "added", PhoneAdded.String())
	assert.Equal(t, "unknown", PhoneStatus(0).String())
}
