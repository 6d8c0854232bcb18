package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/tartampluch/go-contactbook/internal/bot"
	"github.com/tartampluch/go-contactbook/internal/config"
	"github.com/tartampluch/go-contactbook/internal/contacts"
	"github.com/tartampluch/go-contactbook/internal/engine"
	"github.com/tartampluch/go-contactbook/internal/server"
	"github.com/urfave/cli/v3"
	"github.com/zalando/go-keyring"
	"golang.org/x/sync/errgroup"
)

// session bundles what every command needs: settings, the loaded book and
// the reply catalog.
type session struct {
	settings *config.Settings
	book     *contacts.AddressBook
	tr       *bot.Translator
	clock    contacts.Clock
	fetcher  engine.VCardFetcher
}

// openSession loads settings and the address book, then merges the remote
// source when one is configured. A failing import is logged, not fatal.
func openSession(ctx context.Context, cmd *cli.Command) (*session, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	if path := cmd.String(config.FlagFile); path != "" {
		settings.DataFile = path
	}

	book := contacts.NewAddressBook()
	if settings.DataFile != "" {
		if book, err = engine.LoadBook(settings.DataFile, settings.CountryCode); err != nil {
			return nil, err
		}
	}

	s := &session{
		settings: settings,
		book:     book,
		tr:       bot.NewTranslator(settings.Language),
		clock:    contacts.RealClock{},
		fetcher:  engine.NewHTTPFetcher(),
	}
	s.importRemote(ctx)
	return s, nil
}

func (s *session) importRemote(ctx context.Context) {
	if s.settings.SourceURL == "" {
		return
	}
	im := &engine.Importer{Fetcher: s.fetcher, CountryCode: s.settings.CountryCode}
	_, err := im.Import(ctx, s.book, engine.Source{
		URL:  s.settings.SourceURL,
		User: s.settings.SourceUser,
		Pass: password(s.settings.SourceUser),
	})
	if err != nil {
		slog.Warn(config.ErrImportSkipped,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
	}
}

// password reads the remote source secret stored by the login command.
func password(user string) string {
	if user == "" {
		return ""
	}
	p, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyUser, user,
			config.LogKeyError, err,
		)
		return ""
	}
	return p
}

func (s *session) newBot() *bot.Bot {
	b := &bot.Bot{
		Book:        s.book,
		Tr:          s.tr,
		Clock:       s.clock,
		CountryCode: s.settings.CountryCode,
		PageSize:    s.settings.PageSize,
	}
	if s.settings.DataFile != "" {
		b.Save = s.save
	}
	return b
}

func (s *session) save() (string, error) {
	if err := engine.SaveBook(s.settings.DataFile, s.book); err != nil {
		return "", err
	}
	return s.settings.DataFile, nil
}

// persist saves the book on the way out when a data file is configured.
func (s *session) persist() error {
	if s.settings.DataFile == "" {
		return nil
	}
	_, err := s.save()
	return err
}

func (s *session) calendar(ctx context.Context) ([]byte, error) {
	gen := &engine.Generator{
		Clock:           s.clock,
		FormatSummary:   s.tr.SummaryFormatter(),
		ReminderTrigger: s.settings.ReminderTrigger(),
	}
	data, _, err := gen.Generate(ctx, s.book.Records())
	return data, err
}

func (s *session) vcards() ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.EncodeRecords(&buf, s.book.Records()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// publish regenerates both feeds from the current book.
func (s *session) publish(ctx context.Context, srv *server.FeedServer) error {
	ics, err := s.calendar(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrPublish, err)
	}
	vcf, err := s.vcards()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrPublish, err)
	}
	srv.UpdateCalendar(ics)
	srv.UpdateContacts(vcf)

	slog.Debug(config.MsgFeedPublished,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyRecords, s.book.Len(),
	)
	return nil
}

func (s *session) refreshInterval() time.Duration {
	if s.settings.SourceURL == "" || s.settings.RefreshMin <= config.DisabledInterval {
		return 0
	}
	return time.Duration(s.settings.RefreshMin) * time.Minute
}

// -----------------------------------------------------------------------------
// Command Actions
// -----------------------------------------------------------------------------

func runRepl(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	runErr := s.newBot().Run(ctx, cmd.Root().Reader, cmd.Root().Writer)
	return errors.Join(runErr, s.persist())
}

// runServe runs the assistant next to the feed server. Leaving the assistant
// stops the server; a server failure stops the assistant.
func runServe(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}

	srv := server.NewFeedServer(s.settings.Port)
	if err := s.publish(ctx, srv); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Start(gctx)
	})

	if interval := s.refreshInterval(); interval > 0 {
		g.Go(func() error {
			s.refreshWorker(gctx, interval, srv)
			return nil
		})
	}

	g.Go(func() error {
		defer cancel()
		b := s.newBot()
		b.OnChange = func() {
			if err := s.publish(gctx, srv); err != nil {
				slog.Error(config.ErrPublish,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
			}
		}
		return b.Run(gctx, cmd.Root().Reader, cmd.Root().Writer)
	})

	return errors.Join(g.Wait(), s.persist())
}

func runCalendar(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	data, err := s.calendar(ctx)
	if err != nil {
		return err
	}
	return writeOutput(cmd.String(config.FlagOutput), cmd.Root().Writer, data)
}

func runExport(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	data, err := s.vcards()
	if err != nil {
		return err
	}
	return writeOutput(cmd.String(config.FlagOutput), cmd.Root().Writer, data)
}

func runLogin(ctx context.Context, cmd *cli.Command) error {
	user := cmd.String(config.FlagUser)
	if user == "" {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		user = settings.SourceUser
	}
	return storePassword(cmd.Root().Reader, cmd.Root().ErrWriter, user)
}

// storePassword reads one line from in and saves it in the system keyring.
func storePassword(in io.Reader, prompt io.Writer, user string) error {
	if user == "" {
		return errors.New(config.ErrUserRequired)
	}
	fmt.Fprintf(prompt, config.MsgPasswordAsk, user)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", config.ErrReadInput, err)
	}
	pass := strings.TrimRight(line, "\r\n")
	if pass == "" {
		return errors.New(config.ErrPasswordEmpty)
	}

	if err := keyring.Set(config.KeyringService, user, pass); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringStore, err)
	}
	slog.Info(config.MsgPassStored,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyUser, user,
	)
	return nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	slog.Info(config.MsgOutputWritten,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyPath, path,
		config.LogKeySizeBytes, len(data),
	)
	return nil
}
