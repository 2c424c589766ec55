package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/resume-enhancer/internal/rendering"
	"github.com/jonathan/resume-enhancer/internal/review"
	"github.com/jonathan/resume-enhancer/internal/server/middleware"
	"github.com/jonathan/resume-enhancer/internal/types"
)

// ---------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------

func (s *Server) handleListCandidates(w http.ResponseWriter, _ *http.Request) {
	candidates := s.catalog.Candidates()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"candidates": candidates,
		"count":      len(candidates),
	})
}

// ---------------------------------------------------------------------
// Session lifecycle
// ---------------------------------------------------------------------

func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	owner, err := middleware.GetRecruiterID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.OpenSessionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, err)
		return
	}
	if req.JobID == "" {
		req.JobID = review.DefaultJobID
	}

	if e := s.sessions.find(owner, req.CandidateID, req.JobID); e != nil {
		e.mu.Lock()
		defer e.mu.Unlock()
		s.jsonResponse(w, http.StatusOK, view(e))
		return
	}

	session, err := review.Open(r.Context(), review.OpenOptions{
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
		Catalog:     s.catalog,
		Store:       s.storeOrNil(),
		Callbacks: review.Callbacks{
			OnSave: func(_ string, score int, _ types.Resume) {
				s.metrics.saved(score)
			},
			OnClose: s.metrics.sessionClosed,
		},
	})
	if err != nil {
		s.failure(w, err)
		return
	}

	// A concurrent request may have registered the same session meanwhile; the
	// loser's session is dropped unopened.
	e, added := s.sessions.addUnique(owner, session)
	status := http.StatusOK
	if added {
		status = http.StatusCreated
		s.metrics.sessionOpened()
		log.Printf("[review] recruiter %s opened session %s for candidate %s (restored=%t)",
			owner, e.id, req.CandidateID, session.Restored())
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	s.jsonResponse(w, status, view(e))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *sessionEntry) (int, any, error) {
		return http.StatusOK, view(e), nil
	})
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	e.mu.Lock()
	e.session.Close()
	e.mu.Unlock()
	s.sessions.remove(e.id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *sessionEntry) (int, any, error) {
		result, err := e.session.Save(r.Context())
		if err != nil {
			s.metrics.saveFailed()
			return 0, nil, err
		}
		return http.StatusOK, map[string]any{
			"key":           result.Key,
			"fitment_score": result.Score,
			"projection":    result.Projection,
		}, nil
	})
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *sessionEntry) (int, any, error) {
		if err := e.session.Reset(r.Context()); err != nil {
			return 0, nil, err
		}
		return http.StatusOK, view(e), nil
	})
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *sessionEntry) (int, any, error) {
		return http.StatusOK, map[string]any{
			"candidate_id":  e.session.CandidateID(),
			"fitment_score": e.session.Score(),
			"resume":        e.session.Projection(),
		}, nil
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}

	e.mu.Lock()
	if e.session.Closed() {
		e.mu.Unlock()
		s.failure(w, review.ErrSessionClosed)
		return
	}
	resume := e.session.Projection()
	score := e.session.Score()
	e.mu.Unlock()

	text, err := rendering.Text(resume, score)
	if err != nil {
		s.failure(w, err)
		return
	}

	w.Header().Set("Content-Type", rendering.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rendering.FileName(resume.Name)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		log.Printf("Error writing export: %v", err)
	}
}

// ---------------------------------------------------------------------
// Suggestion workflow
// ---------------------------------------------------------------------

func (s *Server) handleSuggestionAction(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	action := r.PathValue("action")

	var text string
	if action == "commit" {
		var req types.CommitEditRequest
		if !s.decode(w, r, &req) {
			return
		}
		if err := req.Validate(); err != nil {
			s.failure(w, err)
			return
		}
		text = req.Text
	}

	s.withSession(w, r, func(e *sessionEntry) (int, any, error) {
		c := e.session.Controller()
		var err error
		switch action {
		case "accept":
			err = c.Accept(sid)
		case "reject":
			err = c.Reject(sid)
		case "edit":
			err = c.Edit(sid)
		case "commit":
			err = c.CommitEdit(sid, text)
		case "cancel":
			err = c.CancelEdit(sid)
		case "undo":
			err = c.Undo(sid)
		default:
			return 0, nil, &ErrNotFound{Resource: "action", ID: action}
		}
		s.metrics.action(action, err)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, view(e), nil
	})
}

func (s *Server) handleUpdateBuffer(w http.ResponseWriter, r *http.Request) {
	var req types.BufferRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, err)
		return
	}

	s.withSession(w, r, func(e *sessionEntry) (int, any, error) {
		err := e.session.Controller().UpdateBuffer(r.PathValue("sid"), req.Text)
		s.metrics.action("buffer", err)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, view(e), nil
	})
}

func (s *Server) handleToggleOption(w http.ResponseWriter, r *http.Request) {
	var req types.ToggleSkillRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.withSession(w, r, func(e *sessionEntry) (int, any, error) {
		err := e.session.Controller().ToggleSkill(r.PathValue("sid"), r.PathValue("option"), req.Selected)
		s.metrics.action("toggle", err)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, view(e), nil
	})
}

func (s *Server) handleAddSuggestion(w http.ResponseWriter, r *http.Request) {
	var req types.AddSuggestionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, err)
		return
	}

	s.withSession(w, r, func(e *sessionEntry) (int, any, error) {
		id := e.session.Controller().AddSuggestion(types.Suggestion{
			Section:       req.Section,
			Category:      req.Category,
			SuggestedText: req.SuggestedText,
			TargetSection: req.TargetSection,
		})
		s.metrics.action("add", nil)
		return http.StatusCreated, map[string]any{
			"id":      id,
			"session": view(e),
		}, nil
	})
}

func (s *Server) handleSetAnswer(w http.ResponseWriter, r *http.Request) {
	var req types.AnswerRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, err)
		return
	}

	s.withSession(w, r, func(e *sessionEntry) (int, any, error) {
		question := r.PathValue("question")
		if err := e.session.SetAnswer(question, req.Answer); err != nil {
			return 0, nil, &ErrNotFound{Resource: "question", ID: question}
		}
		return http.StatusOK, view(e), nil
	})
}

// ---------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------

// lookup resolves the {id} session for the authenticated recruiter, writing the
// error response itself when it cannot.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*sessionEntry, bool) {
	owner, err := middleware.GetRecruiterID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	e, err := s.sessions.get(r.PathValue("id"), owner)
	if err != nil {
		s.failure(w, err)
		return nil, false
	}
	return e, true
}

// withSession runs fn with the session locked and writes its result as JSON.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(e *sessionEntry) (int, any, error)) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.Closed() {
		s.failure(w, review.ErrSessionClosed)
		return
	}

	status, body, err := fn(e)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, status, body)
}

// decode reads a JSON body into dst, answering 400 when it cannot.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// storeOrNil keeps a nil storage.Store from becoming a non-nil interface.
func (s *Server) storeOrNil() review.Persistence {
	if s.store == nil {
		return nil
	}
	return s.store
}

// view renders the session for the API. The caller holds e.mu.
func view(e *sessionEntry) types.SessionView {
	sess := e.session
	return types.SessionView{
		SessionID:    e.id,
		CandidateID:  sess.CandidateID(),
		JobID:        sess.JobID(),
		BaseScore:    sess.BaseScore(),
		FitmentScore: sess.Score(),
		Breakdown:    sess.Breakdown(),
		Suggestions:  sess.Suggestions(),
		Questions:    sess.Questions(),
		Answers:      sess.Answers(),
		Restored:     sess.Restored(),
		Saved:        sess.Saved(),
		EditBuffers:  sess.EditBuffers(),
	}
}
