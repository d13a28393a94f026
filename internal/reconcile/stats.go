package reconcile

import (
	"sort"

	"github.com/five82/splitboard/internal/sheet"
)

// CategoryCount is the number of posts in one category.
type CategoryCount struct {
	Category string
	Count    int
}

// Stats aggregates the cached board.
type Stats struct {
	Total      int
	Open       int
	Completed  int
	Comments   int
	OpenValue  int // sum of total-priced open posts, per-person prices excluded
	Categories []CategoryCount
}

// CompletionRate is the share of posts marked complete, in [0, 1].
func (s Stats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// ComputeStats aggregates posts and comments. Comments whose post no longer
// exists are not counted.
func ComputeStats(posts []sheet.Post, comments []sheet.Comment) Stats {
	var st Stats
	byCategory := map[string]int{}
	ids := make(map[string]struct{}, len(posts))

	for _, p := range posts {
		ids[p.ID] = struct{}{}
		st.Total++
		byCategory[p.Category]++
		if p.Completed() {
			st.Completed++
			continue
		}
		st.Open++
		if p.PriceKind == sheet.PriceTotal {
			st.OpenValue += p.Price
		}
	}
	for _, c := range comments {
		if _, ok := ids[c.PostID]; ok {
			st.Comments++
		}
	}

	st.Categories = make([]CategoryCount, 0, len(byCategory))
	for category, count := range byCategory {
		st.Categories = append(st.Categories, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(st.Categories, func(i, j int) bool {
		if st.Categories[i].Count != st.Categories[j].Count {
			return st.Categories[i].Count > st.Categories[j].Count
		}
		return st.Categories[i].Category < st.Categories[j].Category
	})
	return st
}
