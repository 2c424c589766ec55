package review

import (
	"log"

	"github.com/google/uuid"
	"github.com/jonathan/resume-enhancer/internal/types"
)

// entry is one suggestion plus the transient edit state that belongs to it.
type entry struct {
	suggestion types.Suggestion
	buffer     string
	preEdit    types.State
}

// Store is the in-memory enhancement state store for one session. It keeps the
// catalog order and never deletes a suggestion.
type Store struct {
	order   []string
	entries map[string]*entry
}

// NewStore copies suggestions into a new store with every suggestion in the
// original state and no skill option selected. Empty or duplicate ids get a
// freshly minted one.
func NewStore(suggestions []types.Suggestion) *Store {
	s := &Store{
		order:   make([]string, 0, len(suggestions)),
		entries: make(map[string]*entry, len(suggestions)),
	}
	for _, sg := range suggestions {
		sg = sg.Clone()
		sg.State = types.StateOriginal
		for i := range sg.Options {
			sg.Options[i].Selected = false
		}
		if _, dup := s.entries[sg.ID]; dup && sg.ID != "" {
			log.Printf("[review] duplicate suggestion id %q, minting a new one", sg.ID)
		}
		s.Append(sg)
	}
	return s
}

// Append adds a suggestion at the end of the store and returns its id. A fresh id
// is minted when the suggestion has none or its id is already taken.
func (s *Store) Append(sg types.Suggestion) string {
	if _, taken := s.entries[sg.ID]; sg.ID == "" || taken {
		sg.ID = uuid.NewString()
	}
	if sg.State == "" {
		sg.State = types.StateOriginal
	}
	s.order = append(s.order, sg.ID)
	s.entries[sg.ID] = &entry{suggestion: sg.Clone()}
	return sg.ID
}

// Get returns a copy of the suggestion with the given id.
func (s *Store) Get(id string) (types.Suggestion, error) {
	e, err := s.lookup(id)
	if err != nil {
		return types.Suggestion{}, err
	}
	return e.suggestion.Clone(), nil
}

// SetState sets the review state of a suggestion.
func (s *Store) SetState(id string, state types.State) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.suggestion.State = state
	return nil
}

// SetEditedText replaces the committed suggested text.
func (s *Store) SetEditedText(id, text string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.suggestion.SuggestedText = text
	return nil
}

// SetOption selects or deselects one skill option. It reports whether the
// suggestion has an option by that name.
func (s *Store) SetOption(id, name string, selected bool) (bool, error) {
	e, err := s.lookup(id)
	if err != nil {
		return false, err
	}
	for i := range e.suggestion.Options {
		if e.suggestion.Options[i].Name == name {
			e.suggestion.Options[i].Selected = selected
			return true, nil
		}
	}
	return false, nil
}

// SelectOnly marks exactly the named options of a suggestion as selected.
// Names the suggestion does not offer are ignored.
func (s *Store) SelectOnly(id string, names []string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	for i := range e.suggestion.Options {
		e.suggestion.Options[i].Selected = want[e.suggestion.Options[i].Name]
	}
	return nil
}

// Buffer returns the in-progress edit text for a suggestion.
func (s *Store) Buffer(id string) (string, error) {
	e, err := s.lookup(id)
	if err != nil {
		return "", err
	}
	return e.buffer, nil
}

// PreEditState returns the state a suggestion held before it entered editing.
func (s *Store) PreEditState(id string) (types.State, error) {
	e, err := s.lookup(id)
	if err != nil {
		return "", err
	}
	return e.preEdit, nil
}

// beginEdit snapshots the suggested text into the edit buffer and remembers the
// current state so a cancel can restore it.
func (s *Store) beginEdit(id string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.buffer = e.suggestion.SuggestedText
	e.preEdit = e.suggestion.State
	e.suggestion.State = types.StateEditing
	return nil
}

func (s *Store) setBuffer(id, text string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.buffer = text
	return nil
}

// endEdit discards the buffer and returns the pre-edit state.
func (s *Store) endEdit(id string) (types.State, error) {
	e, err := s.lookup(id)
	if err != nil {
		return "", err
	}
	prior := e.preEdit
	e.buffer = ""
	e.preEdit = ""
	return prior, nil
}

// All returns copies of every suggestion in insertion order.
func (s *Store) All() []types.Suggestion {
	out := make([]types.Suggestion, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id].suggestion.Clone())
	}
	return out
}

// Scored returns copies of every suggestion as the score sees them: a suggestion
// being edited keeps the state it held before the edit.
func (s *Store) Scored() []types.Suggestion {
	out := make([]types.Suggestion, 0, len(s.order))
	for _, id := range s.order {
		e := s.entries[id]
		sg := e.suggestion.Clone()
		if sg.State == types.StateEditing {
			sg.State = e.preEdit
			if sg.State == "" {
				sg.State = types.StateOriginal
			}
		}
		out = append(out, sg)
	}
	return out
}

// Buffers returns the edit buffers of every suggestion currently being edited.
func (s *Store) Buffers() map[string]string {
	out := make(map[string]string)
	for _, id := range s.order {
		e := s.entries[id]
		if e.suggestion.State == types.StateEditing {
			out[id] = e.buffer
		}
	}
	return out
}

// Len returns the number of suggestions in the store.
func (s *Store) Len() int {
	return len(s.order)
}

func (s *Store) lookup(id string) (*entry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return e, nil
}
