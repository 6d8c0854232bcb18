package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-contactbook/internal/config"
	"github.com/tartampluch/go-contactbook/internal/contacts"
)

// LoadBook reads the address book stored at path. A missing file yields an
// empty book. An invalid country code fails before the file is read: every
// stored phone would be dropped and the next save would lose them.
func LoadBook(path, countryCode string) (*contacts.AddressBook, error) {
	if err := contacts.CheckCountryCode(countryCode); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLoadBook, err)
	}
	book := contacts.NewAddressBook()
	log := slog.With(
		config.LogKeyComponent, config.CompStore,
		config.LogKeyPath, path,
	)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info(config.MsgBookMissing)
		return book, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLoadBook, err)
	}
	defer func() { _ = f.Close() }()

	recs, stats, err := DecodeRecords(f, countryCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLoadBook, err)
	}
	for _, r := range recs {
		if !mergeRecord(book, r) {
			log.Warn(config.MsgDuplicateName, config.LogKeyName, r.Name())
		}
	}

	log.Info(config.MsgBookLoaded,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Cards),
			slog.Int(config.LogKeyRecords, book.Len()),
			slog.Int(config.LogKeyCount, stats.Skipped),
		),
	)
	return book, nil
}

// SaveBook writes the book to path atomically: the data goes to a temporary
// file in the same directory which then replaces the target.
func SaveBook(path string, book *contacts.AddressBook) error {
	var buf bytes.Buffer
	if err := EncodeRecords(&buf, book.Records()); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSaveBook, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %s: %w", config.ErrSaveBook, config.ErrCreateDir, err)
	}

	tmp, err := os.CreateTemp(dir, config.TempFilePattern)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSaveBook, err)
	}
	// Removing after a successful rename fails harmlessly.
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrSaveBook, err)
	}
	if err := tmp.Chmod(config.FilePermUserRW); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrSaveBook, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSaveBook, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSaveBook, err)
	}

	slog.Info(config.MsgBookSaved,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyPath, path,
		config.LogKeyRecords, book.Len(),
	)
	return nil
}

// Source describes a remote vCard address book.
type Source struct {
	URL  string
	User string
	Pass string
}

// Importer merges a remote address book into a local one.
type Importer struct {
	Fetcher     VCardFetcher
	CountryCode string
}

// Import downloads src and merges it into book. Unknown contacts are added;
// known ones gain the phones they lack and a birthday if none is set.
// It returns the number of records received.
func (im *Importer) Import(ctx context.Context, book *contacts.AddressBook, src Source) (int, error) {
	if src.URL == "" {
		return 0, errors.New(config.ErrWebURLEmpty)
	}
	if im.Fetcher == nil {
		return 0, errors.New(config.ErrFetcherMissing)
	}
	if err := contacts.CheckCountryCode(im.CountryCode); err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrImport, err)
	}

	body, err := im.Fetcher.Fetch(ctx, src.URL, src.User, src.Pass)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrImport, err)
	}
	defer func() { _ = body.Close() }()

	recs, _, err := DecodeRecords(body, im.CountryCode)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrImport, err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	for _, r := range recs {
		mergeRecord(book, r)
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyRecords, len(recs),
	)
	return len(recs), nil
}

// mergeRecord inserts incoming or, when the name is taken, gives the stored
// record the phones it lacks and a birthday if it has none. It reports
// whether incoming was inserted.
func mergeRecord(book *contacts.AddressBook, incoming *contacts.Record) bool {
	created, _ := book.Upsert(incoming, func(existing *contacts.Record) error {
		for _, p := range incoming.Phones() {
			if !existing.HasPhone(p) {
				_, _ = existing.AddPhone(p)
			}
		}
		if _, ok := existing.Birthday(); !ok {
			if b, ok := incoming.Birthday(); ok {
				existing.AssignBirthday(b)
			}
		}
		return nil
	})
	return created
}
