// Package endpoint keeps an ordered table of socket endpoints.
package endpoint

import (
	"log/slog"
	"sockaddr-stack/transport/sockaddr"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/btree"
	"github.com/pkg/errors"
)

const defaultDegree = 8

type Entry struct {
	Addr      sockaddr.Addr
	FirstSeen time.Time
	LastSeen  time.Time
	Hits      uint64
}

type Options struct {
	Logger *slog.Logger
	Clock  clock.Clock
	Degree int // B-tree degree. Defaults to 8.
}

// Table is a set of endpoints ordered by sockaddr.Addr.Compare.
// It is safe for concurrent use.
type Table struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[Entry]

	clock  clock.Clock
	logger *slog.Logger
}

func New(opts Options) *Table {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Degree < 2 {
		opts.Degree = defaultDegree
	}

	return &Table{
		tree:   btree.NewG(opts.Degree, lessEntry),
		clock:  opts.Clock,
		logger: opts.Logger,
	}
}

func lessEntry(a, b Entry) bool { return a.Addr.Less(b.Addr) }

func key(addr sockaddr.Addr) Entry { return Entry{Addr: addr} }

// Touch records that addr was seen now.
// The returned bool is true when addr was not in the table.
func (t *Table) Touch(addr sockaddr.Addr) (Entry, bool, error) {
	if addr.Family() == sockaddr.Unspecified {
		return Entry{}, false, errors.Wrap(sockaddr.ErrAddressFamilyUnsupported, "touch endpoint")
	}

	now := t.clock.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, found := t.tree.Get(key(addr))
	if !found {
		entry = Entry{Addr: addr, FirstSeen: now}
	}
	entry.LastSeen = now
	entry.Hits++
	t.tree.ReplaceOrInsert(entry)

	if !found {
		t.logger.Debug("endpoint added", "addr", addr, "endpoints", t.tree.Len())
	}

	return entry, !found, nil
}

func (t *Table) Get(addr sockaddr.Addr) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.tree.Get(key(addr))
}

func (t *Table) Remove(addr sockaddr.Addr) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, found := t.tree.Delete(key(addr))
	if found {
		t.logger.Debug("endpoint removed", "addr", addr)
	}
	return found
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.tree.Len()
}

// Ascend calls fn for every entry in address order until fn returns false.
// fn runs on a snapshot, so it may call back into the table.
func (t *Table) Ascend(fn func(Entry) bool) {
	for _, entry := range t.snapshot(func(tree *btree.BTreeG[Entry], iter btree.ItemIteratorG[Entry]) {
		tree.Ascend(iter)
	}) {
		if !fn(entry) {
			return
		}
	}
}

// Range returns entries with from <= addr < to, in address order.
func (t *Table) Range(from, to sockaddr.Addr) []Entry {
	return t.snapshot(func(tree *btree.BTreeG[Entry], iter btree.ItemIteratorG[Entry]) {
		tree.AscendRange(key(from), key(to), iter)
	})
}

func (t *Table) snapshot(walk func(*btree.BTreeG[Entry], btree.ItemIteratorG[Entry])) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries := make([]Entry, 0, t.tree.Len())
	walk(t.tree, func(entry Entry) bool {
		entries = append(entries, entry)
		return true
	})
	return entries
}

// Expire removes entries not seen within maxAge and returns how many were removed.
func (t *Table) Expire(maxAge time.Duration) int {
	deadline := t.clock.Now().Add(-maxAge)

	t.mu.Lock()
	defer t.mu.Unlock()

	var stale []Entry
	t.tree.Ascend(func(entry Entry) bool {
		if entry.LastSeen.Before(deadline) {
			stale = append(stale, entry)
		}
		return true
	})

	for _, entry := range stale {
		t.tree.Delete(entry)
	}

	if len(stale) > 0 {
		t.logger.Info("expired endpoints", "count", len(stale), "remaining", t.tree.Len())
	}

	return len(stale)
}
