package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-enhancer/internal/projection"
	"github.com/jonathan/resume-enhancer/internal/schemas"
	"github.com/jonathan/resume-enhancer/internal/scoring"
	"github.com/jonathan/resume-enhancer/internal/types"
)

// Catalog is the read-only data provider a session is sourced from.
type Catalog interface {
	Candidate(candidateID string) (types.Candidate, error)
	ResumeData(candidateID string) (types.Resume, error)
	Suggestions(candidateID, jobID string) ([]types.Suggestion, error)
}

// Persistence is the key-value collaborator sessions are saved to. Load returns
// nil, nil when the key is absent.
type Persistence interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

// Callbacks are the host hooks. Either may be nil.
type Callbacks struct {
	// OnSave runs once per successful save with the projected resume.
	OnSave func(candidateID string, score int, enhanced types.Resume)
	// OnClose runs when the session is closed.
	OnClose func()
}

// OpenOptions configures Open.
type OpenOptions struct {
	CandidateID string
	JobID       string
	Catalog     Catalog
	Store       Persistence
	Callbacks   Callbacks
	Now         func() time.Time
}

// SaveResult reports what a successful save wrote.
type SaveResult struct {
	Key        string
	Score      int
	Projection types.Resume
}

// Session is the in-memory working set for one candidate's enhancement pass.
// It is not safe for concurrent use; callers serialise access.
type Session struct {
	candidateID string
	jobID       string
	resume      types.Resume
	candidate   types.Candidate

	controller *Controller
	answers    map[string]string

	catalog   Catalog
	store     Persistence
	callbacks Callbacks
	now       func() time.Time

	restored bool
	saved    bool
	closed   bool
}

// Open creates a review session. Persisted state is restored when present and
// valid; a failed load, malformed document or stale state falls back to fresh
// catalog suggestions rather than failing.
func Open(ctx context.Context, opts OpenOptions) (*Session, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("review: catalog is required")
	}
	jobID := opts.JobID
	if jobID == "" {
		jobID = DefaultJobID
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	candidate, err := opts.Catalog.Candidate(opts.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate %s: %w", opts.CandidateID, err)
	}
	resume, err := opts.Catalog.ResumeData(opts.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume for %s: %w", opts.CandidateID, err)
	}

	s := &Session{
		candidateID: opts.CandidateID,
		jobID:       jobID,
		resume:      resume,
		candidate:   candidate,
		catalog:     opts.Catalog,
		store:       opts.Store,
		callbacks:   opts.Callbacks,
		now:         now,
	}

	if err := s.fresh(); err != nil {
		return nil, err
	}

	if s.store != nil {
		saved, err := s.loadSaved(ctx)
		if err != nil {
			log.Printf("[review] %s: using fresh suggestions: %v", SessionKey(s.candidateID, s.jobID), err)
		} else if saved != nil {
			s.apply(saved)
		}
	}

	return s, nil
}

// fresh rebuilds the store from the catalog with every suggestion in original state.
func (s *Session) fresh() error {
	suggestions, err := s.catalog.Suggestions(s.candidateID, s.jobID)
	if err != nil {
		return fmt.Errorf("failed to load suggestions for %s: %w", s.candidateID, err)
	}
	s.controller = NewController(NewStore(suggestions), s.candidate.FitmentScore)
	s.answers = make(map[string]string)
	s.restored = false
	return nil
}

// loadSaved returns the persisted session, nil when nothing was saved, or an error
// when the stored document cannot be used.
func (s *Session) loadSaved(ctx context.Context) (*types.SavedSession, error) {
	key := SessionKey(s.candidateID, s.jobID)
	data, err := s.store.Load(ctx, key)
	if err != nil {
		return nil, &PersistenceError{Message: "load failed", Key: key, Cause: err}
	}
	if data == nil {
		return nil, nil
	}
	if err := schemas.ValidateSavedSession(data); err != nil {
		return nil, &StaleDataError{Message: "saved session does not match schema", Cause: err}
	}

	var saved types.SavedSession
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, &StaleDataError{Message: "saved session is not parseable", Cause: err}
	}
	if saved.CandidateID != s.candidateID {
		return nil, &StaleDataError{Message: fmt.Sprintf("saved session belongs to candidate %s", saved.CandidateID)}
	}
	return &saved, nil
}

// apply overlays persisted review state on the fresh store. Ids the catalog no
// longer has are ignored; suggestions missing from the document stay original.
func (s *Session) apply(saved *types.SavedSession) {
	store := s.controller.Store()
	for _, added := range saved.AddedSuggestions {
		if _, err := store.Get(added.ID); err == nil {
			continue
		}
		added.Kind = types.KindAddNew
		if added.Weight == 0 {
			added.Weight = scoring.SectionWeight(added.Section)
		}
		store.Append(added)
	}

	ignored := 0
	for _, ss := range saved.Suggestions {
		if err := s.controller.restore(ss.ID, ss.State, ss.SuggestedText, ss.SelectedOptions); err != nil {
			ignored++
		}
	}
	if ignored > 0 {
		log.Printf("[review] %s: ignored %d saved suggestions unknown to the catalog",
			SessionKey(s.candidateID, s.jobID), ignored)
	}

	for k, v := range saved.AdvancedAnswers {
		s.answers[k] = v
	}
	s.controller.recompute()
	s.restored = true
	s.saved = true
}

// CandidateID returns the candidate under review.
func (s *Session) CandidateID() string { return s.candidateID }

// JobID returns the job context of the session.
func (s *Session) JobID() string { return s.jobID }

// Controller returns the workflow controller that mutates this session.
func (s *Session) Controller() *Controller { return s.controller }

// Score returns the current fitment score.
func (s *Session) Score() int { return s.controller.Score() }

// BaseScore returns the candidate's stored fitment score.
func (s *Session) BaseScore() int { return s.controller.BaseScore() }

// Restored reports whether the session was restored from persisted state.
func (s *Session) Restored() bool { return s.restored }

// Saved reports whether the session has been saved (or was restored from a save).
func (s *Session) Saved() bool { return s.saved }

// Resume returns a copy of the base resume.
func (s *Session) Resume() types.Resume { return s.resume.Clone() }

// Suggestions returns the suggestions in catalog order.
func (s *Session) Suggestions() []types.Suggestion {
	return s.controller.Store().All()
}

// Breakdown explains the current score.
func (s *Session) Breakdown() types.ScoreBreakdown {
	return scoring.Breakdown(s.controller.BaseScore(), s.controller.Store().Scored())
}

// Projection returns the enhanced resume for the current review state.
func (s *Session) Projection() types.Resume {
	return projection.Project(s.resume, s.controller.Store().Scored())
}

// Questions returns the personalised questions for the candidate.
func (s *Session) Questions() []types.Question {
	return Questions(s.resume)
}

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() map[string]string {
	out := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// SetAnswer records the answer to a personalised question. An empty answer clears it.
func (s *Session) SetAnswer(questionID, answer string) error {
	for _, q := range s.Questions() {
		if q.ID != questionID {
			continue
		}
		if answer == "" {
			delete(s.answers, questionID)
		} else {
			s.answers[questionID] = answer
		}
		return nil
	}
	return fmt.Errorf("unknown question: %s", questionID)
}

// Save persists the review state and the projected resume, then notifies the
// host. On failure the session is left exactly as it was so the caller can retry.
func (s *Session) Save(ctx context.Context) (*SaveResult, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.store == nil {
		return nil, &PersistenceError{Message: "no persistence configured", Key: SessionKey(s.candidateID, s.jobID)}
	}

	doc := s.snapshot()
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, &PersistenceError{Message: "failed to marshal session", Key: SessionKey(s.candidateID, s.jobID), Cause: err}
	}

	enhanced := s.Projection()
	projected, err := json.Marshal(enhanced)
	if err != nil {
		return nil, &PersistenceError{Message: "failed to marshal projection", Key: ProjectionKey(s.candidateID), Cause: err}
	}

	// The session document goes last: a reopened session only counts as saved
	// once both writes succeeded.
	if err := s.store.Save(ctx, ProjectionKey(s.candidateID), projected); err != nil {
		return nil, &PersistenceError{Message: "save failed", Key: ProjectionKey(s.candidateID), Cause: err}
	}
	key := SessionKey(s.candidateID, s.jobID)
	if err := s.store.Save(ctx, key, data); err != nil {
		return nil, &PersistenceError{Message: "save failed", Key: key, Cause: err}
	}

	s.saved = true
	score := s.Score()
	if s.callbacks.OnSave != nil {
		s.callbacks.OnSave(s.candidateID, score, enhanced)
	}
	log.Printf("[review] saved %s with fitment score %d%%", key, score)

	return &SaveResult{Key: key, Score: score, Projection: enhanced}, nil
}

// snapshot builds the persisted document. A suggestion being edited is saved in
// the state it held before the edit; the uncommitted buffer is not persisted.
func (s *Session) snapshot() types.SavedSession {
	store := s.controller.Store()
	all := store.All()

	doc := types.SavedSession{
		CandidateID:          s.candidateID,
		JobID:                s.jobID,
		SchemaVersion:        types.SavedSessionVersion,
		Suggestions:          make([]types.SavedSuggestion, 0, len(all)),
		FitmentScore:         s.Score(),
		OriginalFitmentScore: s.BaseScore(),
		AdvancedAnswers:      s.Answers(),
		LastUpdated:          s.now().UnixMilli(),
	}

	catalogText := make(map[string]string)
	if fresh, err := s.catalog.Suggestions(s.candidateID, s.jobID); err == nil {
		for _, sg := range fresh {
			catalogText[sg.ID] = sg.SuggestedText
		}
	}

	for _, sg := range all {
		state := sg.State
		if state == types.StateEditing {
			if prior, err := store.PreEditState(sg.ID); err == nil && prior != "" {
				state = prior
			} else {
				state = types.StateOriginal
			}
		}
		saved := types.SavedSuggestion{
			ID:              sg.ID,
			State:           state,
			SelectedOptions: sg.SelectedOptions(),
		}
		original, inCatalog := catalogText[sg.ID]
		if !inCatalog || original != sg.SuggestedText {
			saved.SuggestedText = sg.SuggestedText
		}
		doc.Suggestions = append(doc.Suggestions, saved)
		if !inCatalog {
			added := sg.Clone()
			added.State = ""
			added.Options = nil
			doc.AddedSuggestions = append(doc.AddedSuggestions, added)
		}
	}

	return doc
}

// Reset removes persisted state for the candidate and starts over with fresh
// suggestions. If removal fails the session is unchanged.
func (s *Session) Reset(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.store != nil {
		for _, key := range []string{SessionKey(s.candidateID, s.jobID), ProjectionKey(s.candidateID)} {
			if err := s.store.Remove(ctx, key); err != nil {
				return &PersistenceError{Message: "remove failed", Key: key, Cause: err}
			}
		}
	}
	if err := s.fresh(); err != nil {
		return err
	}
	s.saved = false
	return nil
}

// Close discards the session without saving and notifies the host.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.callbacks.OnClose != nil {
		s.callbacks.OnClose()
	}
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed }

// EditBuffers returns the in-progress text of suggestions being edited.
func (s *Session) EditBuffers() map[string]string {
	return s.controller.Store().Buffers()
}
