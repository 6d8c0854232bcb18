// Package bot implements the interactive contact assistant: it parses command
// lines, runs them against an address book and answers with localized text.
package bot

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tartampluch/go-contactbook/internal/config"
	"github.com/tartampluch/go-contactbook/internal/contacts"
)

var (
	errNotNumber = errors.New(config.ErrNotNumber)
	errNoSaver   = errors.New(config.ErrNoSaver)
)

// Bot answers command lines. Book and Tr are required; the rest is optional.
type Bot struct {
	Book        *contacts.AddressBook
	Tr          *Translator
	Clock       contacts.Clock
	CountryCode string
	PageSize    int

	// Save persists the book and returns where it was written.
	// Nil disables the save command.
	Save func() (string, error)

	// OnChange runs after every successful mutation of the book.
	OnChange func()
}

type command struct {
	min, max int
	usage    string
	mutates  bool
	exit     bool
	run      func(b *Bot, args []string) (string, error)
}

var commands = map[string]command{
	config.BotCmdHello:    {run: (*Bot).hello},
	config.BotCmdHelp:     {run: (*Bot).help},
	config.BotCmdAdd:      {min: 2, max: 3, usage: config.UsageAdd, mutates: true, run: (*Bot).add},
	config.BotCmdChange:   {min: 3, max: 3, usage: config.UsageChange, mutates: true, run: (*Bot).change},
	config.BotCmdRemove:   {min: 2, max: 2, usage: config.UsageRemove, mutates: true, run: (*Bot).remove},
	config.BotCmdDelete:   {min: 1, max: 1, usage: config.UsageDelete, mutates: true, run: (*Bot).remove},
	config.BotCmdBirthday: {min: 2, max: 2, usage: config.UsageBirthday, mutates: true, run: (*Bot).birthday},
	config.BotCmdDays:     {min: 1, max: 1, usage: config.UsageDays, run: (*Bot).days},
	config.BotCmdPhone:    {min: 1, max: 1, usage: config.UsagePhone, run: (*Bot).phone},
	config.BotCmdShowAll:  {run: (*Bot).showAll},
	config.BotCmdPage:     {max: 2, usage: config.UsagePage, run: (*Bot).page},
	config.BotCmdSave:     {run: (*Bot).save},
	config.BotCmdExit:     {exit: true, run: (*Bot).farewell},
	config.BotCmdClose:    {exit: true, run: (*Bot).farewell},
	config.BotCmdGoodBye:  {exit: true, run: (*Bot).farewell},
}

// Handle runs one command line and returns the reply. exit reports whether
// the user asked to leave. Blank lines produce an empty reply.
func (b *Bot) Handle(line string) (reply string, exit bool) {
	name, args := parseLine(line)
	if name == "" {
		return "", false
	}
	// Quoted arguments may carry padding; names are stored trimmed.
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}

	cmd, ok := commands[name]
	if !ok {
		return b.Tr.Msg(config.TKeyUnknownCommand, map[string]any{"Command": name}), false
	}
	if len(args) < cmd.min || len(args) > cmd.max {
		return b.Tr.Msg(config.TKeyUsage, map[string]any{"Usage": cmd.usage}), false
	}

	log := slog.With(
		config.LogKeyComponent, config.CompBot,
		config.LogKeyCommand, name,
	)

	reply, err := cmd.run(b, args)
	if err != nil {
		log.Info(config.MsgCommandFailed, config.LogKeyError, reason(err))
		return b.translateError(err), false
	}
	log.Debug(config.MsgCommand, config.LogKeyArgs, len(args))

	if cmd.mutates && b.OnChange != nil {
		b.OnChange()
	}
	return reply, cmd.exit
}

// translateError maps a failure to its localized reply. Unexpected errors get
// a generic message; the details stay in the log.
func (b *Bot) translateError(err error) string {
	var value string
	var ce *contacts.Error
	if errors.As(err, &ce) {
		value = ce.Value
	}

	var key string
	switch {
	case errors.Is(err, contacts.ErrPhoneTooShort):
		key = config.TKeyErrPhoneShort
	case errors.Is(err, contacts.ErrPhoneTooLong):
		key = config.TKeyErrPhoneLong
	case errors.Is(err, contacts.ErrPhoneFormat):
		key = config.TKeyErrPhoneFormat
	case errors.Is(err, contacts.ErrCountryCode):
		key = config.TKeyErrCountryCode
	case errors.Is(err, contacts.ErrBirthdayFormat):
		key = config.TKeyErrBirthdayFormat
	case errors.Is(err, contacts.ErrContactNotFound):
		key = config.TKeyErrContactMissing
	case errors.Is(err, contacts.ErrPhoneNotFound):
		key = config.TKeyErrPhoneMissing
	case errors.Is(err, contacts.ErrNoBirthday):
		key = config.TKeyErrNoBirthday
	case errors.Is(err, contacts.ErrDuplicatePhone):
		key = config.TKeyErrDuplicatePhone
	case errors.Is(err, contacts.ErrEmptyName):
		key = config.TKeyErrEmptyName
	case errors.Is(err, errNotNumber):
		key = config.TKeyErrNumber
	case errors.Is(err, errNoSaver):
		key = config.TKeyErrSaveDisabled
	default:
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompBot,
			config.LogKeyError, err,
		)
		key = config.TKeyErrInternal
	}
	return b.Tr.Msg(key, map[string]any{"Value": value})
}

// reason strips the rejected value so user input does not reach the logs.
func reason(err error) error {
	var ce *contacts.Error
	if errors.As(err, &ce) {
		return ce.Err
	}
	return err
}

func (b *Bot) countryCode() string {
	if b.CountryCode == "" {
		return config.DefaultCountryCode
	}
	return b.CountryCode
}

func (b *Bot) clock() contacts.Clock {
	if b.Clock == nil {
		return contacts.RealClock{}
	}
	return b.Clock
}

func (b *Bot) pageSize() int {
	if b.PageSize <= 0 {
		return config.DefaultPageSize
	}
	return b.PageSize
}

// count parses a non-negative command argument.
func count(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, &contacts.Error{Err: errNotNumber, Value: arg}
	}
	return n, nil
}
