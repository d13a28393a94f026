package reconcile

import (
	"sort"
	"strings"
	"time"

	"github.com/five82/splitboard/internal/sheet"
)

// AllCategories is the filter value that disables category filtering.
const AllCategories = ""

// PostView is one row of the rendered list.
type PostView struct {
	Post         sheet.Post
	Title        string
	PriceLabel   string
	RelativeTime string
	StatusLabel  string
	Preview      string
	CommentCount int
}

// CommentView is one comment of the detail thread.
type CommentView struct {
	sheet.Comment
	RelativeTime string
}

// DetailView is the open post with everything the detail pane shows.
type DetailView struct {
	Post         sheet.Post
	Title        string
	PriceLabel   string
	RelativeTime string
	StatusLabel  string
	SplitHint    string
	Comments     []CommentView
	CanComplete  bool
	Completed    bool
	Editing      bool
}

// FilterPosts keeps posts whose category equals category (unless it is
// AllCategories) and whose title, location or description contains term,
// ignoring case. An empty term matches everything.
func FilterPosts(posts []sheet.Post, category, term string) []sheet.Post {
	category = normalizeCategory(category)
	needle := strings.ToLower(strings.TrimSpace(term))

	out := make([]sheet.Post, 0, len(posts))
	for _, p := range posts {
		if category != AllCategories && !strings.EqualFold(strings.TrimSpace(p.Category), category) {
			continue
		}
		if needle != "" && !matchesTerm(p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesTerm(p sheet.Post, needle string) bool {
	for _, field := range []string{p.Title, p.Location, p.Description} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// SortPosts orders posts newest first. Ties fall back to id, also descending,
// so the order never depends on arrival order.
func SortPosts(posts []sheet.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, tj := posts[i].CreatedAt, posts[j].CreatedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return posts[i].ID > posts[j].ID
	})
}

// sortComments orders comments oldest first, the way a thread reads.
func sortComments(comments []sheet.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, "all") || category == "전체" {
		return AllCategories
	}
	return category
}

func newPostView(p sheet.Post, comments int, now time.Time) PostView {
	return PostView{
		Post:         p,
		Title:        DisplayTitle(p),
		PriceLabel:   FormatPrice(p.Price, p.PriceKind),
		RelativeTime: RelativeTime(p.CreatedAt, now),
		StatusLabel:  StatusLabel(p.Status),
		Preview:      Preview(p.Description),
		CommentCount: comments,
	}
}

func newDetailView(p sheet.Post, comments []sheet.Comment, editing bool, now time.Time) DetailView {
	thread := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		thread = append(thread, CommentView{Comment: c, RelativeTime: RelativeTime(c.CreatedAt, now)})
	}
	return DetailView{
		Post:         p,
		Title:        DisplayTitle(p),
		PriceLabel:   FormatPrice(p.Price, p.PriceKind),
		RelativeTime: RelativeTime(p.CreatedAt, now),
		StatusLabel:  StatusLabel(p.Status),
		SplitHint:    SplitHint(p, defaultSplitWays),
		Comments:     thread,
		CanComplete:  !p.Completed(),
		Completed:    p.Completed(),
		Editing:      editing,
	}
}

// Posts derives the list view from the cache under the current filter and
// search, newest first. It recomputes in full on every call.
func (r *Reconciler) Posts() []PostView {
	snap := r.store.Snapshot()
	r.mu.Lock()
	category, term := r.filter, r.search
	pending := append([]sheet.Comment(nil), r.pending...)
	r.mu.Unlock()

	counts := make(map[string]int, len(snap.Posts))
	for _, c := range snap.Comments {
		counts[c.PostID]++
	}
	for _, c := range pending {
		counts[c.PostID]++
	}

	posts := FilterPosts(snap.Posts, category, term)
	SortPosts(posts)
	now := r.now()
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newPostView(p, counts[p.ID], now))
	}
	return views
}

// Comments returns the thread for postID: sheet comments oldest first, then
// local entries still waiting on the sheet.
func (r *Reconciler) Comments(postID string) []sheet.Comment {
	snap := r.store.Snapshot()
	var out []sheet.Comment
	for _, c := range snap.Comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sortComments(out)

	r.mu.Lock()
	for _, c := range r.pending {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	r.mu.Unlock()
	return out
}

// Detail returns the open post, re-read from the current cache.
func (r *Reconciler) Detail() (DetailView, bool) {
	r.mu.Lock()
	id, open, editing := r.detailID, r.detailOpen, r.editMode
	r.mu.Unlock()
	if !open {
		return DetailView{}, false
	}
	post, ok := r.store.Post(id)
	if !ok {
		return DetailView{}, false
	}
	return newDetailView(post, r.Comments(id), editing, r.now()), true
}

// Stats aggregates the whole cache, ignoring filter and search.
func (r *Reconciler) Stats() Stats {
	snap := r.store.Snapshot()
	return ComputeStats(snap.Posts, snap.Comments)
}
