package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-enhancer/internal/review"
)

// sessionEntry is one open review session. mu serialises every call into the
// session so each controller operation runs to completion before the next.
type sessionEntry struct {
	mu       sync.Mutex
	id       string
	owner    string
	session  *review.Session
	openedAt time.Time
}

// registry holds the open sessions of every recruiter.
type registry struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
}

func newRegistry() *registry {
	return &registry{entries: make(map[string]*sessionEntry)}
}

// addUnique stores the session under a new id unless owner already has one open
// for the same candidate and job. In that case the existing entry is returned and
// added is false.
func (r *registry) addUnique(owner string, session *review.Session) (e *sessionEntry, added bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.findLocked(owner, session.CandidateID(), session.JobID()); existing != nil {
		return existing, false
	}
	e = &sessionEntry{
		id:       uuid.NewString(),
		owner:    owner,
		session:  session,
		openedAt: time.Now(),
	}
	r.entries[e.id] = e
	return e, true
}

// get returns the entry if owner may see it. Sessions of other recruiters are
// reported as missing.
func (r *registry) get(id, owner string) (*sessionEntry, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok || e.owner != owner {
		return nil, &ErrNotFound{Resource: "session", ID: id}
	}
	return e, nil
}

// find returns owner's open session for the candidate and job, if any.
func (r *registry) find(owner, candidateID, jobID string) *sessionEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findLocked(owner, candidateID, jobID)
}

func (r *registry) findLocked(owner, candidateID, jobID string) *sessionEntry {
	for _, e := range r.entries {
		if e.owner == owner && e.session.CandidateID() == candidateID && e.session.JobID() == jobID {
			return e
		}
	}
	return nil
}

func (r *registry) remove(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

// drain empties the registry and returns what it held.
func (r *registry) drain() []*sessionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*sessionEntry, 0, len(r.entries))
	for id, e := range r.entries {
		out = append(out, e)
		delete(r.entries, id)
	}
	return out
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
