package bot

import (
	"log/slog"

	"github.com/tartampluch/go-contactbook/internal/config"
	"github.com/tartampluch/go-contactbook/internal/contacts"
)

func (b *Bot) hello([]string) (string, error) {
	return b.Tr.Msg(config.TKeyGreeting, nil), nil
}

func (b *Bot) help([]string) (string, error) {
	return b.Tr.Msg(config.TKeyHelp, nil), nil
}

func (b *Bot) farewell([]string) (string, error) {
	return b.Tr.Msg(config.TKeyFarewell, nil), nil
}

// add creates the contact or appends a phone to an existing one. An optional
// date sets the birthday in the same step; nothing is stored unless every
// value is valid.
func (b *Bot) add(args []string) (string, error) {
	phone, err := contacts.NewPhoneIn(args[1], b.countryCode())
	if err != nil {
		return "", err
	}

	opts := []contacts.RecordOption{contacts.WithPhone(phone)}
	var bday *contacts.Birthday
	if len(args) == 3 {
		parsed, err := contacts.ParseBirthdayString(args[2])
		if err != nil {
			return "", err
		}
		bday = &parsed
		opts = append(opts, contacts.WithBirthday(parsed))
	}

	rec, err := contacts.NewRecord(args[0], opts...)
	if err != nil {
		return "", err
	}
	name := rec.Name()

	// Stays PhoneCreated unless the merge runs.
	status := contacts.PhoneCreated
	_, err = b.Book.Upsert(rec, func(existing *contacts.Record) error {
		var err error
		if status, err = existing.AddPhone(phone); err != nil {
			return err
		}
		if bday != nil {
			existing.AssignBirthday(*bday)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Debug(config.MsgRecordAdded,
		config.LogKeyComponent, config.CompBot,
		config.LogKeyName, name,
		config.LogKeyPhone, phone.Masked(),
	)

	key := config.TKeyPhoneAdded
	if status == contacts.PhoneCreated {
		key = config.TKeyPhoneCreated
	}
	reply := b.Tr.Msg(key, map[string]any{"Name": name, "Phone": phone.Value()})
	if bday != nil {
		reply += config.RecordSeparator + b.Tr.Msg(config.TKeyBirthdaySet, map[string]any{"Name": name, "Date": bday.String()})
	}
	return reply, nil
}

func (b *Bot) change(args []string) (string, error) {
	old, err := contacts.NewPhoneIn(args[1], b.countryCode())
	if err != nil {
		return "", err
	}
	replacement, err := contacts.NewPhoneIn(args[2], b.countryCode())
	if err != nil {
		return "", err
	}
	if err := b.Book.ChangePhone(args[0], old, replacement); err != nil {
		return "", err
	}
	return b.Tr.Msg(config.TKeyPhoneChanged, map[string]any{
		"Name": args[0],
		"Old":  old.Value(),
		"New":  replacement.Value(),
	}), nil
}

// remove drops a phone when one is given, the whole contact otherwise.
func (b *Bot) remove(args []string) (string, error) {
	name := args[0]
	if len(args) == 1 {
		if !b.Book.Delete(name) {
			return "", &contacts.Error{Err: contacts.ErrContactNotFound, Value: name}
		}
		slog.Debug(config.MsgRecordDeleted,
			config.LogKeyComponent, config.CompBot,
			config.LogKeyName, name,
		)
		return b.Tr.Msg(config.TKeyRecordDeleted, map[string]any{"Name": name}), nil
	}

	phone, err := contacts.NewPhoneIn(args[1], b.countryCode())
	if err != nil {
		return "", err
	}
	if err := b.Book.Update(name, func(r *contacts.Record) error {
		return r.RemovePhone(phone)
	}); err != nil {
		return "", err
	}
	return b.Tr.Msg(config.TKeyPhoneRemoved, map[string]any{"Name": name, "Phone": phone.Value()}), nil
}

func (b *Bot) birthday(args []string) (string, error) {
	bday, err := contacts.ParseBirthdayString(args[1])
	if err != nil {
		return "", err
	}
	if err := b.Book.Update(args[0], func(r *contacts.Record) error {
		r.AssignBirthday(bday)
		return nil
	}); err != nil {
		return "", err
	}
	return b.Tr.Msg(config.TKeyBirthdaySet, map[string]any{"Name": args[0], "Date": bday.String()}), nil
}

func (b *Bot) days(args []string) (string, error) {
	rec, err := b.Book.Find(args[0])
	if err != nil {
		return "", err
	}
	n, err := rec.DaysToBirthday(b.clock().Now())
	if err != nil {
		return "", err
	}
	if n == 0 {
		return b.Tr.Msg(config.TKeyBirthdayToday, map[string]any{"Name": rec.Name()}), nil
	}
	return b.Tr.Count(config.TKeyDaysLeft, n, map[string]any{"Name": rec.Name()}), nil
}

func (b *Bot) phone(args []string) (string, error) {
	return b.Book.Lookup(args[0])
}

func (b *Bot) showAll([]string) (string, error) {
	return b.orEmpty(b.Book.RenderAll()), nil
}

// page prints one block of at most count records starting at offset.
func (b *Bot) page(args []string) (string, error) {
	n, offset := b.pageSize(), 0
	var err error
	if len(args) > 0 {
		if n, err = count(args[0]); err != nil {
			return "", err
		}
	}
	if len(args) > 1 {
		if offset, err = count(args[1]); err != nil {
			return "", err
		}
	}
	return b.orEmpty(b.Book.PageAt(offset, n)), nil
}

func (b *Bot) save([]string) (string, error) {
	if b.Save == nil {
		return "", errNoSaver
	}
	path, err := b.Save()
	if err != nil {
		return "", err
	}
	return b.Tr.Msg(config.TKeySaved, map[string]any{"Path": path}), nil
}

func (b *Bot) orEmpty(s string) string {
	if s == "" {
		return b.Tr.Msg(config.TKeyEmptyBook, nil)
	}
	return s
}
