package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-contactbook/internal/config"
	"github.com/tartampluch/go-contactbook/internal/contacts"
)

const (
	telURIPrefix = "tel:"
	nameParts    = ";"

	// maxConsecutiveCardErrors stops decoding a stream that keeps failing.
	maxConsecutiveCardErrors = 16
)

// DecodeStats summarizes a decoding pass.
type DecodeStats struct {
	Cards   int // cards read successfully
	Records int // records produced
	Skipped int // cards or values dropped
}

// DecodeRecords reads every vCard in r and converts it into a record.
// Cards without a usable name are skipped. Phone numbers and birthdays that
// fail validation are dropped from their record and logged, so one bad value
// does not lose the whole contact.
func DecodeRecords(r io.Reader, countryCode string) ([]*contacts.Record, DecodeStats, error) {
	var (
		stats   DecodeStats
		records []*contacts.Record
		failed  int
	)

	decoder := vcard.NewDecoder(r)
	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			failed++
			stats.Skipped++
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			if failed >= maxConsecutiveCardErrors {
				return records, stats, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
			}
			continue
		}
		failed = 0
		stats.Cards++

		rec, skipped := cardToRecord(card, countryCode)
		stats.Skipped += skipped
		if rec == nil {
			continue
		}
		records = append(records, rec)
		stats.Records++
	}
	return records, stats, nil
}

// EncodeRecords writes one vCard 4.0 per record.
func EncodeRecords(w io.Writer, recs []*contacts.Record) error {
	enc := vcard.NewEncoder(w)
	for _, r := range recs {
		if err := enc.Encode(recordToCard(r)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return nil
}

// cardToRecord maps FN (or N), TEL and BDAY. It returns the number of values
// it had to drop.
func cardToRecord(card vcard.Card, countryCode string) (*contacts.Record, int) {
	name := cardName(card)
	rec, err := contacts.NewRecord(name)
	if err != nil {
		slog.Debug(config.MsgSkippedName, config.LogKeyComponent, config.CompEngine)
		return nil, 1
	}

	skipped := 0
	for _, raw := range card.Values(config.VCardTEL) {
		phone, err := contacts.NewPhoneIn(strings.TrimPrefix(raw, telURIPrefix), countryCode)
		if err == nil {
			_, err = rec.AddPhone(phone)
		}
		if err != nil {
			skipped++
			slog.Warn(config.MsgSkippedPhone,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, name,
				config.LogKeyError, err)
		}
	}

	if bday := card.Value(config.VCardBDAY); bday != "" {
		// Drop a time part ("1990-06-15T00:00:00Z"); truncated dates without a
		// year ("--0615") cannot form a Birthday and are skipped.
		date, _, _ := strings.Cut(bday, "T")
		if b, err := contacts.ParseBirthdayISO(date); err == nil {
			rec.AssignBirthday(b)
		} else {
			skipped++
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, name,
				config.LogKeyValue, bday)
		}
	}
	return rec, skipped
}

// cardName prefers the formatted name and falls back to the structured one.
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.Value(config.VCardFN)); fn != "" {
		return fn
	}
	// N is "Family;Given;Additional;Prefix;Suffix".
	parts := strings.Split(card.Value(config.VCardN), nameParts)
	var words []string
	if len(parts) > 1 {
		words = append(words, parts[1])
	}
	words = append(words, parts[0])
	return strings.TrimSpace(strings.Join(strings.Fields(strings.Join(words, " ")), " "))
}

func recordToCard(r *contacts.Record) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(config.VCardVersion, config.VCardVersionValue)
	card.SetValue(config.VCardFN, r.Name())
	for _, p := range r.Phones() {
		card.AddValue(config.VCardTEL, p.Value())
	}
	if b, ok := r.Birthday(); ok {
		card.SetValue(config.VCardBDAY, b.String())
	}
	return card
}
