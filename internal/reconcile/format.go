package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/five82/splitboard/internal/sheet"
)

const (
	previewRunes     = 30
	defaultSplitWays = 4
)

// RelativeTime renders how long ago t was, the way the board shows it.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "시간 정보 없음"
	}
	d := now.Sub(t)
	switch {
	case d < 10*time.Second:
		return "방금 전"
	case d < time.Minute:
		return fmt.Sprintf("%d초 전", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%d분 전", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d시간 전", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%d일 전", int(d.Hours()/24))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%d개월 전", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%d년 전", int(d.Hours()/(24*365)))
	}
}

// FormatPrice renders a price with thousands separators and the won suffix.
func FormatPrice(price int, kind sheet.PriceKind) string {
	if price <= 0 {
		return "가격 미정"
	}
	label := humanize.Comma(int64(price)) + "원"
	if kind == sheet.PricePerPerson {
		return "1인당 " + label
	}
	return label
}

// SplitPrice returns each person's share of total split n ways, rounded up to
// the nearest 10 won.
func SplitPrice(total, n int) int {
	if total <= 0 || n <= 0 {
		return 0
	}
	share := (total + n - 1) / n
	return (share + 9) / 10 * 10
}

// SplitHint describes an N-way split of a total-price post, or "" when the
// post is already priced per person.
func SplitHint(p sheet.Post, ways int) string {
	if p.PriceKind != sheet.PriceTotal || p.Price <= 0 {
		return ""
	}
	if ways <= 1 {
		ways = defaultSplitWays
	}
	return fmt.Sprintf("%d명이면 1인당 %s원", ways, humanize.Comma(int64(SplitPrice(p.Price, ways))))
}

// Preview returns the first line of a description, cut to a fixed width.
func Preview(description string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(description), "\n")
	line = strings.TrimSpace(line)
	runes := []rune(line)
	if len(runes) <= previewRunes {
		return line
	}
	return string(runes[:previewRunes]) + "..."
}

// DisplayTitle falls back to a placeholder for untitled posts.
func DisplayTitle(p sheet.Post) string {
	if strings.TrimSpace(p.Title) == "" {
		return sheet.UntitledPost
	}
	return p.Title
}

// StatusLabel is the human label for a post status.
func StatusLabel(s sheet.Status) string {
	if s == sheet.StatusCompleted {
		return "거래 완료"
	}
	return "모집 중"
}
