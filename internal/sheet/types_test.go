package sheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestDecodeBody(t *testing.T) {
	cases := []struct {
		name     string
		memo     string
		location string
		desc     string
	}{
		{"marker", "[LOCATION: Gangnam]\nLet's split this", "Gangnam", "Let's split this"},
		{"crlf", "[LOCATION: Lobby]\r\nsplit 4 ways", "Lobby", "split 4 ways"},
		{"no marker", "just text", "", "just text"},
		{"marker only", "[LOCATION: Gate 3]", "Gate 3", ""},
		{"unterminated", "[LOCATION: nowhere", "", "[LOCATION: nowhere"},
		{"only first marker stripped", "[LOCATION: A]\n[LOCATION: B]\nrest", "A", "[LOCATION: B]\nrest"},
		{"bracket in location", "[LOCATION: Room [B]]\nsplit", "Room [B]", "split"},
		{"same line", "[LOCATION: Hall] split\nmore", "Hall", "split\nmore"},
		{"empty marker", "[LOCATION: ]\n[LOCATION: fake] hi", "", "[LOCATION: fake] hi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loc, desc := DecodeBody(tc.memo)
			if loc != tc.location || desc != tc.desc {
				t.Fatalf("DecodeBody(%q) = %q, %q; want %q, %q", tc.memo, loc, desc, tc.location, tc.desc)
			}
		})
	}
}

func TestEncodeBody_RoundTrips(t *testing.T) {
	if memo := EncodeBody(" Lobby ", "split 4 ways"); memo != "[LOCATION: Lobby]\nsplit 4 ways" {
		t.Fatalf("EncodeBody = %q", memo)
	}
	if got := EncodeBody("", "plain"); got != "plain" {
		t.Fatalf("EncodeBody without location = %q, want plain", got)
	}

	cases := []struct {
		name     string
		location string
		desc     string
	}{
		{"plain", "Lobby", "split 4 ways"},
		{"no location", "", "plain"},
		{"bracket in location", "Room [B]", "split"},
		{"location ends in bracket", "Gate ]", "meet at 6"},
		{"description looks like a marker", "", "[LOCATION: fake] hi"},
		{"multiline description", "Hall", "line one\n[x] line two"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			memo := EncodeBody(tc.location, tc.desc)
			loc, desc := DecodeBody(memo)
			if loc != tc.location || desc != tc.desc {
				t.Fatalf("DecodeBody(%q) = %q, %q; want %q, %q", memo, loc, desc, tc.location, tc.desc)
			}
		})
	}
}

func TestTitleMarker(t *testing.T) {
	encoded := EncodeTitle("Pizza", PricePerPerson)
	title, kind := DecodeTitle(encoded)
	if title != "Pizza" || kind != PricePerPerson {
		t.Fatalf("DecodeTitle(%q) = %q, %v", encoded, title, kind)
	}
	title, kind = DecodeTitle("Pizza")
	if title != "Pizza" || kind != PriceTotal {
		t.Fatalf("DecodeTitle(Pizza) = %q, %v", title, kind)
	}
	if got := EncodeTitle(" Pizza ", PriceTotal); got != "Pizza" {
		t.Fatalf("EncodeTitle total = %q", got)
	}
	if !HasPriceMarker(" [1인당] Pizza") || HasPriceMarker("Pizza [1인당]") {
		t.Fatalf("HasPriceMarker should only match a leading marker")
	}
}

func TestParseStatus(t *testing.T) {
	if ParseStatus(" completed ") != StatusCompleted {
		t.Fatalf("lowercase completed should parse")
	}
	if ParseStatus("완료") != StatusCompleted {
		t.Fatalf("legacy label should parse as completed")
	}
	if ParseStatus("모집 중") != StatusOpen || ParseStatus("") != StatusOpen {
		t.Fatalf("unknown statuses should be open")
	}
}

func TestParseTimeLayouts(t *testing.T) {
	if ParseTime("2025-12-13T10:11:12.345Z").IsZero() {
		t.Fatalf("ParseTime should parse RFC3339Nano")
	}
	got := ParseTime("2025-12-13 10:11:12")
	if got.Year() != 2025 || got.Month() != time.December || got.Day() != 13 {
		t.Fatalf("ParseTime = %v, want 2025-12-13", got)
	}
	if ms := ParseTime("1700000000000"); ms.UnixMilli() != 1700000000000 {
		t.Fatalf("ParseTime epoch = %v", ms)
	}
	if !ParseTime("yesterday").IsZero() {
		t.Fatalf("ParseTime should return zero for junk")
	}
}

func TestFlexDecoding(t *testing.T) {
	var rec PostRecord
	if err := json.Unmarshal([]byte(`{"price": null, "timestamp": 1700000000000, "item_name": 42}`), &rec); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if rec.Price != 0 || rec.Timestamp != "1700000000000" || rec.ItemName != "42" {
		t.Fatalf("record = %#v", rec)
	}
	if err := json.Unmarshal([]byte(`{"price": "abc"}`), &rec); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if rec.Price != 0 {
		t.Fatalf("junk price = %d, want 0", rec.Price)
	}
}

func TestNewPostPayload_PacksFields(t *testing.T) {
	p := UpdatePostPayload("id-1", PostFields{
		Title:       "Snacks",
		PriceKind:   PricePerPerson,
		Category:    "Drinks",
		Price:       -5,
		Location:    "Lobby",
		Description: "split 4 ways",
		Password:    "1234",
	})
	if p.PostID != "id-1" || p.ItemName != "[1인당] Snacks" || p.Price != 0 {
		t.Fatalf("payload = %#v", p)
	}
	if p.Memo != "[LOCATION: Lobby]\nsplit 4 ways" {
		t.Fatalf("memo = %q", p.Memo)
	}
}

func TestKindAndUserMessage(t *testing.T) {
	rej := fmt.Errorf("complete: %w", &RejectionError{Action: ActionUpdateStatus, Message: "wrong password"})
	if Kind(rej) != KindRejection || UserMessage(rej) != "wrong password" {
		t.Fatalf("rejection classified as %v / %q", Kind(rej), UserMessage(rej))
	}
	val := &ValidationError{Field: "title", Message: "title required"}
	if Kind(val) != KindValidation || UserMessage(val) != "title required" {
		t.Fatalf("validation classified as %v / %q", Kind(val), UserMessage(val))
	}
	if Kind(nil) != KindNone || UserMessage(nil) != "" {
		t.Fatalf("nil error should be KindNone")
	}
	if Kind(errors.New("x")) != KindOther {
		t.Fatalf("plain error should be KindOther")
	}
}
