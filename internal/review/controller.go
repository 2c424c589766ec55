package review

import (
	"log"

	"github.com/jonathan/resume-enhancer/internal/scoring"
	"github.com/jonathan/resume-enhancer/internal/types"
)

// Controller is the only mutator of a Store. Every transition runs to completion
// and re-derives the fitment score from the accepted set.
//
//	original --accept--> accepted --undo--> original
//	original --reject--> rejected --undo--> original
//	accepted --reject--> rejected --accept--> accepted
//	(not editing) --edit--> editing --commit--> accepted
//	                        editing --cancel--> state before edit
type Controller struct {
	store *Store
	base  int
	score int
}

// NewController wraps store and computes the initial score from base.
func NewController(store *Store, base int) *Controller {
	c := &Controller{store: store, base: base}
	c.recompute()
	return c
}

// Score returns the current fitment score.
func (c *Controller) Score() int {
	return c.score
}

// BaseScore returns the candidate's score before any suggestion is applied.
func (c *Controller) BaseScore() int {
	return c.base
}

// Store returns the underlying state store for read access.
func (c *Controller) Store() *Store {
	return c.store
}

// Accept moves a suggestion from original or rejected to accepted.
func (c *Controller) Accept(id string) error {
	if err := c.require(id, "accept", types.StateOriginal, types.StateRejected); err != nil {
		return err
	}
	return c.set(id, types.StateAccepted)
}

// Reject moves a suggestion from original or accepted to rejected.
func (c *Controller) Reject(id string) error {
	if err := c.require(id, "reject", types.StateOriginal, types.StateAccepted); err != nil {
		return err
	}
	return c.set(id, types.StateRejected)
}

// Edit opens an edit buffer seeded with the current suggested text. The score
// does not move: while editing, a suggestion counts as the state it came from.
func (c *Controller) Edit(id string) error {
	if err := c.require(id, "edit", types.StateOriginal, types.StateAccepted, types.StateRejected); err != nil {
		return err
	}
	return c.store.beginEdit(id)
}

// UpdateBuffer replaces the in-progress text of a suggestion being edited.
func (c *Controller) UpdateBuffer(id, text string) error {
	if err := c.require(id, "update", types.StateEditing); err != nil {
		return err
	}
	return c.store.setBuffer(id, text)
}

// CommitEdit stores text as the suggested text and accepts the suggestion.
func (c *Controller) CommitEdit(id, text string) error {
	if err := c.require(id, "commit", types.StateEditing); err != nil {
		return err
	}
	if err := c.store.SetEditedText(id, text); err != nil {
		return err
	}
	if _, err := c.store.endEdit(id); err != nil {
		return err
	}
	return c.set(id, types.StateAccepted)
}

// CancelEdit discards the edit buffer and restores the state held before Edit,
// leaving both state and score exactly as they were.
func (c *Controller) CancelEdit(id string) error {
	if err := c.require(id, "cancel", types.StateEditing); err != nil {
		return err
	}
	prior, err := c.store.endEdit(id)
	if err != nil {
		return err
	}
	if prior == "" {
		prior = types.StateOriginal
	}
	return c.set(id, prior)
}

// Undo returns an accepted or rejected suggestion to original.
func (c *Controller) Undo(id string) error {
	if err := c.require(id, "undo", types.StateAccepted, types.StateRejected); err != nil {
		return err
	}
	return c.set(id, types.StateOriginal)
}

// ToggleSkill selects or deselects one option of a skill-toggle suggestion.
func (c *Controller) ToggleSkill(id, option string, selected bool) error {
	sg, err := c.store.Get(id)
	if err != nil {
		return err
	}
	if !sg.IsSkillToggle() {
		log.Printf("[review] ignoring toggle on %s: not a skill-toggle suggestion", id)
		return &TransitionError{ID: id, Action: "toggle", From: sg.State}
	}
	found, err := c.store.SetOption(id, option, selected)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{ID: id + "/" + option}
	}
	c.recompute()
	return nil
}

// AddSuggestion appends a user-authored add-new suggestion in the original state
// and returns its id. A zero weight takes the section default.
func (c *Controller) AddSuggestion(sg types.Suggestion) string {
	sg.Kind = types.KindAddNew
	sg.State = types.StateOriginal
	sg.OriginalText = ""
	if sg.Weight == 0 {
		sg.Weight = scoring.SectionWeight(sg.Section)
	}
	id := c.store.Append(sg)
	c.recompute()
	return id
}

// restore sets a state loaded from persistence without transition checks.
func (c *Controller) restore(id string, state types.State, text string, selected []string) error {
	if text != "" {
		if err := c.store.SetEditedText(id, text); err != nil {
			return err
		}
	}
	if err := c.store.SelectOnly(id, selected); err != nil {
		return err
	}
	if state == types.StateEditing || !state.Valid() {
		state = types.StateOriginal
	}
	return c.store.SetState(id, state)
}

func (c *Controller) require(id, action string, allowed ...types.State) error {
	sg, err := c.store.Get(id)
	if err != nil {
		return err
	}
	for _, st := range allowed {
		if sg.State == st {
			return nil
		}
	}
	log.Printf("[review] ignoring %s on suggestion %s in state %s", action, id, sg.State)
	return &TransitionError{ID: id, Action: action, From: sg.State}
}

func (c *Controller) set(id string, state types.State) error {
	if err := c.store.SetState(id, state); err != nil {
		return err
	}
	c.recompute()
	return nil
}

func (c *Controller) recompute() {
	c.score = scoring.ComputeScore(c.base, c.store.Scored())
}
