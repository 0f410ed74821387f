package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/duedo/internal/model"
)

// In-memory list of todo items, owned by a single goroutine (the UI loop).
// Nothing here survives the process; there is no locking.

var (
	ErrEmptyText    = errors.New("text is empty")
	ErrEmptyDueDate = errors.New("due date is empty")
	ErrNotFound     = errors.New("item not found")
	ErrOutOfRange   = errors.New("index out of range")
	ErrDuplicateID  = errors.New("item already present")
)

// Op names the transition that produced an Event.
type Op string

const (
	OpAdd     Op = "add"
	OpToggle  Op = "toggle"
	OpBegin   Op = "begin-edit"
	OpUpdate  Op = "update-text"
	OpSave    Op = "save-edit"
	OpRemove  Op = "remove"
	OpRestore Op = "restore"
)

// Event is delivered to subscribers after every applied mutation.
// Index is the item's position after the change (its former position for OpRemove).
type Event struct {
	Op      Op
	Item    model.Item
	Index   int
	Version uint64
}

type Option func(*Store)

// WithClock overrides time.Now for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides uuid.New.
func WithIDFunc(fn func() uuid.UUID) Option {
	return func(s *Store) { s.newID = fn }
}

type subscriber struct {
	id int
	fn func(Event)
}

type Store struct {
	items   []model.Item
	version uint64

	subs    []subscriber
	nextSub int

	now   func() time.Time
	newID func() uuid.UUID
}

func New(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.New,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Add appends a new pending item holding text and dueDate as given. If
// either is blank after trimming nothing changes.
func (s *Store) Add(text, dueDate string) (model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return model.Item{}, ErrEmptyText
	}
	if strings.TrimSpace(dueDate) == "" {
		return model.Item{}, ErrEmptyDueDate
	}
	it := model.Item{
		ID:        s.newID(),
		Text:      text,
		DueDate:   dueDate,
		CreatedAt: s.now(),
	}
	s.items = append(s.items, it)
	s.commit(OpAdd, len(s.items)-1)
	return it, nil
}

// ToggleComplete flips the completion flag.
func (s *Store) ToggleComplete(id uuid.UUID) error {
	return s.mutate(OpToggle, id, func(it *model.Item) {
		it.Complete = !it.Complete
	})
}

// BeginEdit puts one item in edit mode; other items keep their state.
func (s *Store) BeginEdit(id uuid.UUID) error {
	return s.mutate(OpBegin, id, func(it *model.Item) {
		it.Editing = true
	})
}

// UpdateText replaces the text without leaving edit mode.
func (s *Store) UpdateText(id uuid.UUID, text string) error {
	return s.mutate(OpUpdate, id, func(it *model.Item) {
		it.Text = text
	})
}

// SaveEdit commits text and leaves edit mode.
func (s *Store) SaveEdit(id uuid.UUID, text string) error {
	return s.mutate(OpSave, id, func(it *model.Item) {
		it.Text = text
		it.Editing = false
	})
}

// Remove deletes the item and returns it with the position it held.
// Items after it move up by one.
func (s *Store) Remove(id uuid.UUID) (model.Item, int, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return model.Item{}, -1, fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	it := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.version++
	s.notify(Event{Op: OpRemove, Item: it, Index: i, Version: s.version})
	return it, i, nil
}

// Restore puts a removed item back at position at, clamped to the list bounds.
func (s *Store) Restore(it model.Item, at int) error {
	if s.IndexOf(it.ID) >= 0 {
		return fmt.Errorf("restore %s: %w", it.ID, ErrDuplicateID)
	}
	if at < 0 {
		at = 0
	}
	if at > len(s.items) {
		at = len(s.items)
	}
	s.items = append(s.items, model.Item{})
	copy(s.items[at+1:], s.items[at:])
	s.items[at] = it
	s.commit(OpRestore, at)
	return nil
}

// Items returns a copy of the list in display order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

// At resolves a row position to its item.
func (s *Store) At(index int) (model.Item, error) {
	if index < 0 || index >= len(s.items) {
		return model.Item{}, fmt.Errorf("have %d, got %d: %w", len(s.items), index, ErrOutOfRange)
	}
	return s.items[index], nil
}

// Get looks an item up by ID.
func (s *Store) Get(id uuid.UUID) (model.Item, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return model.Item{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return s.items[i], nil
}

// IndexOf returns the current position of id, or -1.
func (s *Store) IndexOf(id uuid.UUID) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Stats() (done, pending int) {
	for _, it := range s.items {
		if it.Complete {
			done++
		} else {
			pending++
		}
	}
	return
}

// Version increases by one for every applied mutation.
func (s *Store) Version() uint64 { return s.version }

// Subscribe registers fn to run after each applied mutation, on the caller's
// goroutine. The returned func removes it and may be called from inside fn;
// the removal takes effect from the next mutation.
func (s *Store) Subscribe(fn func(Event)) func() {
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) mutate(op Op, id uuid.UUID, fn func(*model.Item)) error {
	i := s.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}
	fn(&s.items[i])
	s.commit(op, i)
	return nil
}

func (s *Store) commit(op Op, i int) {
	s.version++
	s.notify(Event{Op: op, Item: s.items[i], Index: i, Version: s.version})
}

// notify walks a snapshot so a subscriber may unsubscribe from inside fn.
func (s *Store) notify(ev Event) {
	subs := append([]subscriber(nil), s.subs...)
	for _, sub := range subs {
		sub.fn(ev)
	}
}
