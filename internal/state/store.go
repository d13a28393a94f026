package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/splitboard/internal/sheet"
)

// Snapshot represents the latest board data fetched from the sheet.
type Snapshot struct {
	Posts               []sheet.Post
	Comments            []sheet.Comment
	Loaded              bool // at least one fetch succeeded
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive fetch failures
}

// IsOffline returns true when the sheet has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store holds the last good snapshot. Successful updates replace it wholesale.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored posts and comments. When err is non-nil the
// previous data is kept but the error is recorded for visibility.
func (s *Store) Update(listing sheet.Listing, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Posts = clonePosts(listing.Posts)
	s.snapshot.Comments = cloneComments(listing.Comments)
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Posts = clonePosts(s.snapshot.Posts)
	snap.Comments = cloneComments(s.snapshot.Comments)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Post looks up a cached post by id.
func (s *Store) Post(id string) (sheet.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.snapshot.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return sheet.Post{}, false
}

func clonePosts(items []sheet.Post) []sheet.Post {
	if len(items) == 0 {
		return nil
	}
	dup := make([]sheet.Post, len(items))
	copy(dup, items)
	return dup
}

func cloneComments(items []sheet.Comment) []sheet.Comment {
	if len(items) == 0 {
		return nil
	}
	dup := make([]sheet.Comment, len(items))
	copy(dup, items)
	return dup
}
