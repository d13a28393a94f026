package reconcile

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/splitboard/internal/logging"
	"github.com/five82/splitboard/internal/sheet"
	"github.com/five82/splitboard/internal/state"
)

const defaultNoticeTTL = 3 * time.Second

// Options tune a Reconciler. The zero value is usable.
type Options struct {
	Now       func() time.Time
	NoticeTTL time.Duration
	NewID     func() string // local ids for optimistic comments
}

// Notice is a transient message for the user.
type Notice struct {
	Text string
	Kind sheet.ErrorKind
	At   time.Time
}

// IsError reports whether the notice describes a failure.
func (n Notice) IsError() bool {
	return n.Kind != sheet.KindNone
}

// Reconciler owns the cached board and everything the views derive from it.
// It is safe for concurrent use; the lock is never held across gateway calls.
type Reconciler struct {
	gw        sheet.Gateway
	store     *state.Store
	now       func() time.Time
	newID     func() string
	noticeTTL time.Duration

	mu         sync.Mutex
	pending    []sheet.Comment
	filter     string
	search     string
	detailID   string
	detailOpen bool
	detailGen  uint64
	editMode   bool
	form       sheet.PostFields
	notice     Notice
	listeners  []func()
}

// New builds a Reconciler over gw with an empty cache.
func New(gw sheet.Gateway, opts Options) *Reconciler {
	r := &Reconciler{
		gw:        gw,
		store:     &state.Store{},
		now:       opts.Now,
		newID:     opts.NewID,
		noticeTTL: opts.NoticeTTL,
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newID == nil {
		r.newID = func() string { return uuid.NewString() }
	}
	if r.noticeTTL <= 0 {
		r.noticeTTL = defaultNoticeTTL
	}
	return r
}

// Subscribe registers fn to run after every state change. fn is called
// without the reconciler lock held and may call back into it.
func (r *Reconciler) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

func (r *Reconciler) notify() {
	r.mu.Lock()
	listeners := append([]func(){}, r.listeners...)
	r.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Refresh fetches the whole board and replaces the cache. Optimistic comments
// are dropped, and an open detail whose post vanished is closed. On failure
// the last good snapshot stays in place.
func (r *Reconciler) Refresh(ctx context.Context) error {
	listing, err := r.gw.ListAll(ctx)
	r.store.Update(listing, err)
	if err != nil {
		logging.Warn.Printf("refresh failed: %v", err)
		r.setNotice(err)
		r.notify()
		return fmt.Errorf("refresh: %w", err)
	}

	r.mu.Lock()
	r.pending = nil
	if r.detailOpen && !containsPost(listing.Posts, r.detailID) {
		logging.Info.Printf("post %s no longer exists, closing detail", r.detailID)
		r.closeDetailLocked()
	}
	r.mu.Unlock()

	r.notify()
	return nil
}

func containsPost(posts []sheet.Post, id string) bool {
	for _, p := range posts {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Snapshot exposes the cache state, including load and failure bookkeeping.
func (r *Reconciler) Snapshot() state.Snapshot {
	return r.store.Snapshot()
}

// ApplyFilter sets the category filter. "" or "all" shows every category.
func (r *Reconciler) ApplyFilter(category string) {
	r.mu.Lock()
	r.filter = normalizeCategory(category)
	r.mu.Unlock()
	r.notify()
}

// ApplySearch sets the search term.
func (r *Reconciler) ApplySearch(term string) {
	r.mu.Lock()
	r.search = strings.TrimSpace(term)
	r.mu.Unlock()
	r.notify()
}

// Filter returns the active category filter, AllCategories when unset.
func (r *Reconciler) Filter() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter
}

// Search returns the active search term.
func (r *Reconciler) Search() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.search
}

// OpenDetail selects a post. Unknown ids are ignored.
func (r *Reconciler) OpenDetail(id string) bool {
	if _, ok := r.store.Post(id); !ok {
		return false
	}
	r.mu.Lock()
	r.detailID = id
	r.detailOpen = true
	r.detailGen++
	r.editMode = false
	r.form = sheet.PostFields{}
	r.mu.Unlock()
	r.notify()
	return true
}

// CloseDetail returns to the list.
func (r *Reconciler) CloseDetail() {
	r.mu.Lock()
	r.closeDetailLocked()
	r.mu.Unlock()
	r.notify()
}

func (r *Reconciler) closeDetailLocked() {
	if r.editMode {
		r.form = sheet.PostFields{}
	}
	r.detailID = ""
	r.detailOpen = false
	r.detailGen++
	r.editMode = false
}

// CancelEdit leaves edit mode without saving and discards the draft.
func (r *Reconciler) CancelEdit() {
	r.mu.Lock()
	r.editMode = false
	r.form = sheet.PostFields{}
	r.mu.Unlock()
	r.notify()
}

// DetailID returns the open post id.
func (r *Reconciler) DetailID() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.detailID, r.detailOpen
}

// EditMode reports whether the open detail is being edited.
func (r *Reconciler) EditMode() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.editMode
}

// Form returns the current post draft.
func (r *Reconciler) Form() sheet.PostFields {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form
}

// SetForm stores a post draft so it survives a failed submit.
func (r *Reconciler) SetForm(f sheet.PostFields) {
	r.mu.Lock()
	r.form = f
	r.mu.Unlock()
}

// Notice returns the current notice, or the zero Notice once it has expired.
func (r *Reconciler) Notice() Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.notice.Text == "" || r.now().Sub(r.notice.At) > r.noticeTTL {
		return Notice{}
	}
	return r.notice
}

// setNotice records err as a notice. A nil error is ignored.
func (r *Reconciler) setNotice(err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	r.notice = Notice{Text: sheet.UserMessage(err), Kind: sheet.Kind(err), At: r.now()}
	r.mu.Unlock()
}

func (r *Reconciler) setInfo(text string) {
	r.mu.Lock()
	r.notice = Notice{Text: text, Kind: sheet.KindNone, At: r.now()}
	r.mu.Unlock()
}

func (r *Reconciler) generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.detailGen
}
