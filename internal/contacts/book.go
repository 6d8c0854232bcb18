package contacts

import (
	"iter"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/tartampluch/go-contactbook/internal/config"
)

// AddressBook is a name-keyed collection of records. It owns the records it
// holds. Iteration follows insertion order; overwriting a name keeps its slot.
//
// All methods are safe for concurrent use: mutations take the write lock,
// lookups and renders share the read lock.
type AddressBook struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   []string
}

// NewAddressBook returns an empty book.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord inserts r, replacing any record with the same name.
func (b *AddressBook) AddRecord(r *Record) {
	if r == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	name := r.Name()
	if _, exists := b.records[name]; !exists {
		b.order = append(b.order, name)
	}
	b.records[name] = r

	slog.Debug(config.MsgRecordAdded,
		config.LogKeyComponent, config.CompContacts,
		config.LogKeyName, name,
		config.LogKeyRecords, len(b.order),
	)
}

// DeleteRecord removes the entry keyed by r's name. Unknown names are ignored.
func (b *AddressBook) DeleteRecord(r *Record) {
	if r == nil {
		return
	}
	b.Delete(r.Name())
}

// Delete removes name and reports whether it was present.
func (b *AddressBook) Delete(name string) bool {
	name = key(name)
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.records[name]; !exists {
		return false
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })

	slog.Debug(config.MsgRecordDeleted,
		config.LogKeyComponent, config.CompContacts,
		config.LogKeyName, name,
		config.LogKeyRecords, len(b.order),
	)
	return true
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// Has reports whether name is present.
func (b *AddressBook) Has(name string) bool {
	name = key(name)
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.records[name]
	return ok
}

// Find returns a copy of the record stored under name. Use Update to mutate.
func (b *AddressBook) Find(name string) (*Record, error) {
	name = key(name)
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, ok := b.records[name]
	if !ok {
		return nil, newError(ErrContactNotFound, name)
	}
	return r.Clone(), nil
}

// Lookup renders the record stored under name.
func (b *AddressBook) Lookup(name string) (string, error) {
	name = key(name)
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, ok := b.records[name]
	if !ok {
		return "", newError(ErrContactNotFound, name)
	}
	return r.String(), nil
}

// Update runs fn on the record stored under name while holding the write
// lock. fn must validate before it mutates, so that a failing call leaves
// the record untouched.
func (b *AddressBook) Update(name string, fn func(*Record) error) error {
	name = key(name)
	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.records[name]
	if !ok {
		return newError(ErrContactNotFound, name)
	}
	return fn(r)
}

// Upsert stores r when its name is free and reports true. Otherwise it runs
// merge on the stored record; the check and the write happen under one lock.
func (b *AddressBook) Upsert(r *Record, merge func(existing *Record) error) (created bool, err error) {
	if r == nil {
		return false, newError(ErrEmptyName, "")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	name := r.Name()
	if existing, ok := b.records[name]; ok {
		return false, merge(existing)
	}
	b.records[name] = r
	b.order = append(b.order, name)

	slog.Debug(config.MsgRecordAdded,
		config.LogKeyComponent, config.CompContacts,
		config.LogKeyName, name,
		config.LogKeyRecords, len(b.order),
	)
	return true, nil
}

// ChangePhone replaces old with replacement on the record stored under name.
func (b *AddressBook) ChangePhone(name string, old, replacement Phone) error {
	return b.Update(name, func(r *Record) error {
		return r.EditPhone(old, replacement)
	})
}

// Records returns copies of all records in iteration order.
func (b *AddressBook) Records() []*Record {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name].Clone())
	}
	return out
}

// RenderAll joins every summary with newlines. An empty book renders as "".
func (b *AddressBook) RenderAll() string {
	return b.PageAt(0, b.Len())
}

// Page renders at most n summaries from the start of the book. n larger than
// the book is clamped; n <= 0 renders nothing. There is no cursor: repeated
// calls return the same block.
func (b *AddressBook) Page(n int) string {
	return b.PageAt(0, n)
}

// PageAt renders at most n summaries starting at offset.
func (b *AddressBook) PageAt(offset, n int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.render(offset, n)
}

// Pages yields consecutive blocks of at most size summaries until the book
// is exhausted. Each block is rendered under the read lock at the time it is
// produced.
func (b *AddressBook) Pages(size int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if size <= 0 {
			return
		}
		for offset := 0; ; offset += size {
			b.mu.RLock()
			total := len(b.order)
			block := b.render(offset, size)
			b.mu.RUnlock()

			if offset >= total || !yield(block) {
				return
			}
		}
	}
}

// render must be called with at least the read lock held.
func (b *AddressBook) render(offset, n int) string {
	total := len(b.order)
	if n <= 0 || offset < 0 || offset >= total {
		return ""
	}
	end := min(offset+n, total)

	lines := make([]string, 0, end-offset)
	for _, name := range b.order[offset:end] {
		lines = append(lines, b.records[name].String())
	}
	return strings.Join(lines, config.RecordSeparator)
}

// key maps a user-supplied name onto the stored key. Records trim their
// names on creation, so lookups trim too.
func key(name string) string {
	return strings.TrimSpace(name)
}
