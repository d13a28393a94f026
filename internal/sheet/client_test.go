package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseEndpoint_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseEndpoint("")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	if u.String() != DefaultEndpoint {
		t.Fatalf("endpoint = %q, want %q", u.String(), DefaultEndpoint)
	}

	u, err = parseEndpoint("script.example.com/macros/s/abc/exec#frag")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	if u.Scheme != "http" || u.Path != "/macros/s/abc/exec" || u.Fragment != "" {
		t.Fatalf("endpoint not normalized: %q", u.String())
	}

	if _, err := parseEndpoint("http://"); err == nil {
		t.Fatalf("parseEndpoint(http://) returned nil error, want missing host")
	}
}

func TestClient_ListAllDecodesRecords(t *testing.T) {
	t.Parallel()

	var gotMethod, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "post": [
    {"item_name": "[1인당] Coffee", "item_type": "Drinks", "price": "3,000", "memo": "[LOCATION: Lobby]\nbring cups", "status": "OPEN", "timestamp": "2025-03-01T09:00:00Z"},
    {"item_name": "Rice", "item_type": "", "price": 20000, "memo": "", "status": "COMPLETED", "timestamp": "2025-03-02T09:00:00Z"},
    {"item_name": "no id", "timestamp": ""}
  ],
  "comment": [
    {"post_id": "2025-03-01T09:00:00Z", "author": "", "content": "me too", "timestamp": "2025-03-01T10:00:00Z"},
    {"post_id": "2025-03-01T09:00:00Z", "author": "kim", "content": "  ", "timestamp": "2025-03-01T10:00:00Z"}
  ]
}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	listing, err := c.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if gotMethod != http.MethodGet {
		t.Fatalf("method = %q, want GET", gotMethod)
	}
	if !strings.HasPrefix(gotUserAgent, "splitboard/") {
		t.Fatalf("User-Agent = %q, want splitboard/*", gotUserAgent)
	}
	if len(listing.Posts) != 2 {
		t.Fatalf("posts = %d, want 2 (blank id dropped)", len(listing.Posts))
	}

	coffee := listing.Posts[0]
	if coffee.Title != "Coffee" || coffee.PriceKind != PricePerPerson || coffee.Price != 3000 {
		t.Fatalf("coffee = %#v, want per-person Coffee 3000", coffee)
	}
	if coffee.Location != "Lobby" || coffee.Description != "bring cups" {
		t.Fatalf("coffee body = %q/%q, want Lobby/bring cups", coffee.Location, coffee.Description)
	}
	if coffee.CreatedAt.IsZero() {
		t.Fatalf("coffee CreatedAt is zero")
	}

	rice := listing.Posts[1]
	if rice.Category != DefaultCategory || !rice.Completed() {
		t.Fatalf("rice = %#v, want default category and completed", rice)
	}

	if len(listing.Comments) != 1 {
		t.Fatalf("comments = %d, want 1 (blank content dropped)", len(listing.Comments))
	}
	if listing.Comments[0].Author != DefaultAuthor {
		t.Fatalf("author = %q, want %q", listing.Comments[0].Author, DefaultAuthor)
	}
}

func TestClient_ListAllMissingKeysAreEmpty(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	listing, err := c.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(listing.Posts) != 0 || len(listing.Comments) != 0 {
		t.Fatalf("listing = %#v, want empty", listing)
	}
}

func TestClient_SubmitEncodesFormPayload(t *testing.T) {
	t.Parallel()

	var gotContentType string
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_ = json.Unmarshal([]byte(r.PostForm.Get("payload")), &gotPayload)
		_ = json.NewEncoder(w).Encode(Ack{Success: false, Message: "비밀번호가 틀렸습니다."})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ack, err := c.Submit(context.Background(), ActionDeletePost, PasswordPayload{PostID: "p1", Password: "1234"})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if ack.Success || ack.Message != "비밀번호가 틀렸습니다." {
		t.Fatalf("ack = %#v, want rejection with message", ack)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("Content-Type = %q, want form encoding", gotContentType)
	}
	if gotPayload["action_type"] != "delete_post" || gotPayload["post_id"] != "p1" || gotPayload["password"] != "1234" {
		t.Fatalf("payload = %v, want action_type/post_id/password", gotPayload)
	}
}

func TestClient_TransportErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListAll(context.Background())
	if !errors.Is(err, ErrTransport) || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("ListAll error = %v, want transport decode error", err)
	}

	_, err = c.Submit(context.Background(), ActionNewComment, CommentPayload{PostID: "p", Content: "hi"})
	if !errors.Is(err, ErrTransport) || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("Submit error = %v, want transport status 500 error", err)
	}
	if Kind(err) != KindTransport {
		t.Fatalf("Kind = %v, want KindTransport", Kind(err))
	}
}

func TestEncodePayload_RejectsNonObjects(t *testing.T) {
	if _, err := EncodePayload(ActionNewPost, []string{"a"}); err == nil {
		t.Fatalf("EncodePayload returned nil error for a list payload")
	}
	got, err := EncodePayload(ActionVerifyPassword, nil)
	if err != nil {
		t.Fatalf("EncodePayload returned error: %v", err)
	}
	if got != `{"action_type":"verify_password"}` {
		t.Fatalf("EncodePayload = %s", got)
	}
}
