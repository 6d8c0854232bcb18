package engine_test

import (
	"context"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contactbook/internal/config"
	"github.com/tartampluch/go-contactbook/internal/contacts"
	"github.com/tartampluch/go-contactbook/internal/engine"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the engine.VCardFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func record(t *testing.T, name, bday string, phones ...string) *contacts.Record {
	t.Helper()
	var opts []contacts.RecordOption
	for _, p := range phones {
		opts = append(opts, contacts.WithPhone(contacts.MustPhone(p)))
	}
	if bday != "" {
		b, err := contacts.ParseBirthdayString(bday)
		require.NoError(t, err)
		opts = append(opts, contacts.WithBirthday(b))
	}
	r, err := contacts.NewRecord(name, opts...)
	require.NoError(t, err)
	return r
}

func uidLines(ics string) []string {
	var uids []string
	for _, line := range strings.Split(ics, "\r\n") {
		if strings.HasPrefix(line, config.PropUID+":") {
			uids = append(uids, line)
		}
	}
	slices.Sort(uids)
	return uids
}

// -----------------------------------------------------------------------------
// Generator
// -----------------------------------------------------------------------------

func TestGenerate_BirthdayToday(t *testing.T) {
	gen := &engine.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)},
	}
	recs := []*contacts.Record{
		record(t, "John Doe", "01.01.2000", "0501234567"),
		record(t, "No Date", "", "0507654321"),
	}

	data, today, err := gen.Generate(context.Background(), recs)
	require.NoError(t, err)
	assert.Equal(t, 1, today)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "SUMMARY:Birthday: John Doe (25)")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20250101")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20240101")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20260101")
	assert.NotContains(t, ics, "No Date")
	assert.NotContains(t, ics, "BEGIN:VALARM", "Alarms are disabled without a trigger")
	assert.Len(t, uidLines(ics), 3)
}

func TestGenerate_SkipsYearsBeforeBirth(t *testing.T) {
	gen := &engine.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	data, today, err := gen.Generate(context.Background(), []*contacts.Record{
		record(t, "Baby", "01.03.2025"),
	})
	require.NoError(t, err)
	assert.Zero(t, today)

	ics := string(data)
	assert.Contains(t, ics, "SUMMARY:Birthday: Baby (birth)")
	assert.Contains(t, ics, "SUMMARY:Birthday: Baby (1)")
	assert.NotContains(t, ics, "DTSTART;VALUE=DATE:2024")
	assert.Len(t, uidLines(ics), 2)
}

func TestGenerate_LeapDayInCommonYear(t *testing.T) {
	gen := &engine.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
	}
	data, today, err := gen.Generate(context.Background(), []*contacts.Record{
		record(t, "Leapling", "29.02.2000"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, today, "Feb 29 is celebrated on Mar 1 in common years")
	assert.Contains(t, string(data), "DTSTART;VALUE=DATE:20250301")
	assert.Contains(t, string(data), "DTSTART;VALUE=DATE:20240229")
}

func TestGenerate_EmptyReturnsStub(t *testing.T) {
	gen := &engine.Generator{Clock: contacts.RealClock{}}

	data, today, err := gen.Generate(context.Background(), []*contacts.Record{
		record(t, "No Date", ""),
	})
	require.NoError(t, err)
	assert.Zero(t, today)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestGenerate_ReminderAndCustomSummary(t *testing.T) {
	gen := &engine.Generator{
		Clock:           MockClock{CurrentTime: time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)},
		ReminderTrigger: "-P2D",
		FormatSummary: func(name string, age int) string {
			return "BD " + name
		},
	}
	data, _, err := gen.Generate(context.Background(), []*contacts.Record{
		record(t, "Anna", "10.05.1990"),
	})
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VALARM")
	assert.Contains(t, ics, "TRIGGER:-P2D")
	assert.Contains(t, ics, "ACTION:DISPLAY")
	assert.Contains(t, ics, "SUMMARY:BD Anna")
	assert.NotContains(t, ics, "TRIGGER;VALUE=TEXT")
}

func TestGenerate_StableUIDs(t *testing.T) {
	recs := []*contacts.Record{record(t, "Anna", "10.05.1990")}

	first := &engine.Generator{Clock: MockClock{CurrentTime: time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)}}
	second := &engine.Generator{Clock: MockClock{CurrentTime: time.Date(2025, 9, 9, 12, 0, 0, 0, time.UTC)}}

	a, _, err := first.Generate(context.Background(), recs)
	require.NoError(t, err)
	b, _, err := second.Generate(context.Background(), recs)
	require.NoError(t, err)

	assert.Equal(t, uidLines(string(a)), uidLines(string(b)))
	for _, uid := range uidLines(string(a)) {
		assert.True(t, strings.HasSuffix(uid, "@"+config.ICalDomain), uid)
	}
}

func TestGenerate_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &engine.Generator{Clock: contacts.RealClock{}}
	_, _, err := gen.Generate(ctx, []*contacts.Record{record(t, "Anna", "10.05.1990")})
	assert.ErrorIs(t, err, context.Canceled)
}
