package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the only due-date shape items carry.
const DateLayout = "2006-01-02"

// Item is the domain model for a todo entry.
// ID is assigned once by the store and never reused; rows are addressed by it,
// not by their position in the list.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	DueDate   string    `json:"due_date"`
	Complete  bool      `json:"complete"`
	Editing   bool      `json:"editing"`
	CreatedAt time.Time `json:"created_at"`
}

// CanEdit reports whether the edit action is offered for the item.
func (it Item) CanEdit() bool { return !it.Complete && !it.Editing }

// CanRemove follows the same gating as CanEdit.
func (it Item) CanRemove() bool { return !it.Complete && !it.Editing }

// CanToggle is false while the item is being edited.
func (it Item) CanToggle() bool { return !it.Editing }
