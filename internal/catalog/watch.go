package catalog

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonathan/resume-enhancer/internal/types"
)

// DefaultDebounce is how long the watcher waits for writes to settle before reloading.
const DefaultDebounce = 500 * time.Millisecond

// Reloading serves a YAML catalog and swaps in a fresh copy whenever the file
// changes. A reload that fails to parse keeps the previous catalog.
// Sessions that are already open keep the suggestions they were sourced with.
type Reloading struct {
	mu       sync.RWMutex
	current  *Static
	path     string
	debounce time.Duration
	onReload func()
}

// NewReloading loads the file once and returns a provider that can watch it.
func NewReloading(path string, debounce time.Duration) (*Reloading, error) {
	s, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Reloading{current: s, path: path, debounce: debounce}, nil
}

// OnReload registers a hook invoked after each successful reload.
func (r *Reloading) OnReload(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onReload = fn
}

func (r *Reloading) snapshot() *Static {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Reload re-reads the catalog file.
func (r *Reloading) Reload() error {
	s, err := LoadFile(r.path)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.current = s
	hook := r.onReload
	r.mu.Unlock()
	if hook != nil {
		hook()
	}
	return nil
}

// Watch reloads the catalog on file changes until ctx is cancelled. The parent
// directory is watched too so editors that save by rename are picked up.
func (r *Reloading) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			log.Printf("[catalog] failed to close watcher: %v", err)
		}
	}()

	dir := filepath.Dir(r.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	log.Printf("[catalog] watching %s for changes", r.path)

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(r.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(r.debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[catalog] watcher error: %v", err)

		case <-reload:
			if err := r.Reload(); err != nil {
				log.Printf("[catalog] reload failed, keeping previous catalog: %v", err)
			}
		}
	}
}

func (r *Reloading) Candidates() []types.Candidate { return r.snapshot().Candidates() }

func (r *Reloading) Candidate(candidateID string) (types.Candidate, error) {
	return r.snapshot().Candidate(candidateID)
}

func (r *Reloading) ResumeData(candidateID string) (types.Resume, error) {
	return r.snapshot().ResumeData(candidateID)
}

func (r *Reloading) Suggestions(candidateID, jobID string) ([]types.Suggestion, error) {
	return r.snapshot().Suggestions(candidateID, jobID)
}

func (r *Reloading) JobRequirements(jobID string) types.JobRequirements {
	return r.snapshot().JobRequirements(jobID)
}
