package reconcile

import (
	"testing"
	"time"

	"github.com/five82/splitboard/internal/sheet"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 12, 13, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "방금 전"},
		{-time.Minute, "방금 전"},
		{9 * time.Second, "방금 전"},
		{45 * time.Second, "45초 전"},
		{5 * time.Minute, "5분 전"},
		{3 * time.Hour, "3시간 전"},
		{2 * 24 * time.Hour, "2일 전"},
		{65 * 24 * time.Hour, "2개월 전"},
		{800 * 24 * time.Hour, "2년 전"},
	}
	for _, tc := range cases {
		if got := RelativeTime(now.Add(-tc.ago), now); got != tc.want {
			t.Fatalf("RelativeTime(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}
	if got := RelativeTime(time.Time{}, now); got != "시간 정보 없음" {
		t.Fatalf("RelativeTime(zero) = %q", got)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price int
		kind  sheet.PriceKind
		want  string
	}{
		{0, sheet.PriceTotal, "가격 미정"},
		{5000, sheet.PriceTotal, "5,000원"},
		{1234567, sheet.PriceTotal, "1,234,567원"},
		{3000, sheet.PricePerPerson, "1인당 3,000원"},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.price, tc.kind); got != tc.want {
			t.Fatalf("FormatPrice(%d, %v) = %q, want %q", tc.price, tc.kind, got, tc.want)
		}
	}
}

func TestSplitPrice(t *testing.T) {
	if got := SplitPrice(10000, 3); got != 3340 {
		t.Fatalf("SplitPrice(10000, 3) = %d, want 3340", got)
	}
	if got := SplitPrice(5000, 4); got != 1250 {
		t.Fatalf("SplitPrice(5000, 4) = %d, want 1250", got)
	}
	if got := SplitPrice(5000, 0); got != 0 {
		t.Fatalf("SplitPrice(5000, 0) = %d, want 0", got)
	}
	if hint := SplitHint(sheet.Post{Price: 3000, PriceKind: sheet.PricePerPerson}, 4); hint != "" {
		t.Fatalf("per-person post should have no split hint, got %q", hint)
	}
}

func TestPreviewAndTitle(t *testing.T) {
	if got := Preview("first line\nsecond"); got != "first line" {
		t.Fatalf("Preview = %q", got)
	}
	long := "가나다라마바사아자차카타파하가나다라마바사아자차카타파하가나다"
	if got := Preview(long); got != string([]rune(long)[:30])+"..." {
		t.Fatalf("Preview(long) = %q", got)
	}
	if got := DisplayTitle(sheet.Post{Title: "  "}); got != sheet.UntitledPost {
		t.Fatalf("DisplayTitle(blank) = %q", got)
	}
}
