package sheetmock

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/splitboard/internal/logging"
	"github.com/five82/splitboard/internal/reconcile"
	"github.com/five82/splitboard/internal/sheet"
)

func newTestServer(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()
	logging.Discard()

	store, err := Open(filepath.Join(t.TempDir(), "sheet.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	srv := httptest.NewServer(New(store, false))
	t.Cleanup(srv.Close)
	return srv, store
}

func post(t *testing.T, srv *httptest.Server, payload string) (int, sheet.Ack) {
	t.Helper()
	resp, err := http.PostForm(srv.URL, url.Values{"payload": {payload}})
	if err != nil {
		t.Fatalf("POST returned error: %v", err)
	}
	defer resp.Body.Close()
	var ack sheet.Ack
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
			t.Fatalf("decode ack: %v", err)
		}
	}
	return resp.StatusCode, ack
}

func TestStore_IDsAreUniqueAndOrdered(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "ids.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()
	fixed := time.Date(2025, 12, 13, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	first := store.nextID()
	second := store.nextID()
	if first == second || second < first {
		t.Fatalf("ids %q then %q, want strictly increasing", first, second)
	}
	if got := sheet.ParseTime(first); !got.Equal(fixed) {
		t.Fatalf("ParseTime(%q) = %v, want %v", first, got, fixed)
	}
}

func TestServer_EmptyListing(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET returned error: %v", err)
	}
	defer resp.Body.Close()
	var body map[string][]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["post"] == nil || body["comment"] == nil || len(body["post"]) != 0 {
		t.Fatalf("body = %v, want empty post and comment arrays", body)
	}
}

func TestServer_Rejections(t *testing.T) {
	srv, store := newTestServer(t)
	id, err := store.CreatePost(context.Background(), PostRow{ItemName: "Cola"}, "1234")
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	cases := []struct {
		name    string
		payload string
		message string
	}{
		{"wrong password", `{"action_type":"delete_post","post_id":"` + id + `","password":"0000"}`, msgWrongPassword},
		{"unknown post", `{"action_type":"verify_password","post_id":"nope","password":"1234"}`, msgNotFound},
		{"missing title", `{"action_type":"new_post","item_name":" ","password":"1234"}`, msgMissingFields},
		{"blank comment", `{"action_type":"new_comment","post_id":"` + id + `","content":" "}`, msgMissingFields},
		{"comment on missing post", `{"action_type":"new_comment","post_id":"nope","content":"hi"}`, msgNotFound},
		{"unknown action", `{"action_type":"archive"}`, msgUnknownAction},
		{"reopen", `{"action_type":"update_status","post_id":"` + id + `","status":"OPEN","password":"1234"}`, msgBadStatus},
		{"made-up status", `{"action_type":"update_status","post_id":"` + id + `","status":"banana","password":"1234"}`, msgBadStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, ack := post(t, srv, tc.payload)
			if status != http.StatusOK || ack.Success || ack.Message != tc.message {
				t.Fatalf("status=%d ack=%#v, want rejection %q", status, ack, tc.message)
			}
		})
	}
}

func TestServer_StatusOnlyMovesForward(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()
	id, err := store.CreatePost(ctx, PostRow{ItemName: "Cola"}, "1234")
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	complete := `{"action_type":"update_status","post_id":"` + id + `","status":"COMPLETED","password":"1234"}`
	if _, ack := post(t, srv, complete); !ack.Success {
		t.Fatalf("first completion ack = %#v, want success", ack)
	}
	if _, ack := post(t, srv, complete); ack.Success || ack.Message != msgAlreadyDone {
		t.Fatalf("second completion ack = %#v, want %q", ack, msgAlreadyDone)
	}
	reopen := `{"action_type":"update_status","post_id":"` + id + `","status":"OPEN","password":"1234"}`
	if _, ack := post(t, srv, reopen); ack.Success {
		t.Fatalf("reopen ack = %#v, want rejection", ack)
	}

	posts, err := store.Posts(ctx)
	if err != nil {
		t.Fatalf("Posts returned error: %v", err)
	}
	if len(posts) != 1 || posts[0].Status != "COMPLETED" {
		t.Fatalf("posts = %#v, want one COMPLETED post", posts)
	}
}

func TestServer_MalformedPayload(t *testing.T) {
	srv, _ := newTestServer(t)

	if status, _ := post(t, srv, "{not json"); status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	resp, err := http.Post(srv.URL, "application/x-www-form-urlencoded", strings.NewReader(""))
	if err != nil {
		t.Fatalf("POST returned error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty form status = %d, want 400", resp.StatusCode)
	}
}

func TestServer_DeleteRemovesComments(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()
	id, err := store.CreatePost(ctx, PostRow{ItemName: "Cola"}, "1234")
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if err := store.AddComment(ctx, CommentRow{PostID: id, Author: "kim", Content: "me"}); err != nil {
		t.Fatalf("AddComment returned error: %v", err)
	}

	if _, ack := post(t, srv, `{"action_type":"delete_post","post_id":"`+id+`","password":"1234"}`); !ack.Success {
		t.Fatalf("delete ack = %#v", ack)
	}
	posts, _ := store.Posts(ctx)
	comments, _ := store.Comments(ctx)
	if len(posts) != 0 || len(comments) != 0 {
		t.Fatalf("after delete posts=%d comments=%d, want 0/0", len(posts), len(comments))
	}
}

// TestEndToEnd drives the real HTTP client and reconciler against the mock.
func TestEndToEnd(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	client, err := sheet.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	rec := reconcile.New(client, reconcile.Options{})

	fields := sheet.PostFields{
		Title:       "Pizza",
		PriceKind:   sheet.PricePerPerson,
		Category:    "Food",
		Price:       8000,
		Location:    "Lobby",
		Description: "two large, split 4 ways",
		Password:    "1234",
	}
	if err := rec.CreatePost(ctx, fields); err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	posts := rec.Posts()
	if len(posts) != 1 {
		t.Fatalf("posts = %#v, want 1", posts)
	}
	p := posts[0].Post
	if p.Title != "Pizza" || p.PriceKind != sheet.PricePerPerson || p.Location != "Lobby" ||
		p.Description != "two large, split 4 ways" || p.Category != "Food" || p.Completed() {
		t.Fatalf("post did not round-trip: %#v", p)
	}
	if posts[0].PriceLabel != "1인당 8,000원" {
		t.Fatalf("price label = %q", posts[0].PriceLabel)
	}

	if !rec.OpenDetail(p.ID) {
		t.Fatalf("OpenDetail(%q) = false", p.ID)
	}
	if err := rec.SubmitComment(ctx, p.ID, "", "count me in"); err != nil {
		t.Fatalf("SubmitComment returned error: %v", err)
	}
	comments := rec.Comments(p.ID)
	if len(comments) != 1 || comments[0].Author != sheet.DefaultAuthor || comments[0].Local() {
		t.Fatalf("comments = %#v, want one confirmed anonymous comment", comments)
	}

	err = rec.CompletePost(ctx, p.ID, "0000")
	var rej *sheet.RejectionError
	if !errors.As(err, &rej) || rej.Message != msgWrongPassword {
		t.Fatalf("CompletePost wrong password err = %v, want rejection", err)
	}
	if n := rec.Notice(); !n.IsError() || n.Text != msgWrongPassword {
		t.Fatalf("notice = %#v, want the sheet's message", n)
	}

	if err := rec.VerifyAndEnterEditMode(ctx, p.ID, "1234"); err != nil {
		t.Fatalf("VerifyAndEnterEditMode returned error: %v", err)
	}
	edited := rec.Form()
	edited.Price = 6000
	if err := rec.UpdatePost(ctx, p.ID, edited); err != nil {
		t.Fatalf("UpdatePost returned error: %v", err)
	}
	if got := rec.Posts()[0].Post.Price; got != 6000 {
		t.Fatalf("price after update = %d, want 6000", got)
	}

	if err := rec.CompletePost(ctx, p.ID, "1234"); err != nil {
		t.Fatalf("CompletePost returned error: %v", err)
	}
	if !rec.Posts()[0].Post.Completed() {
		t.Fatal("post not completed after update_status")
	}

	if err := rec.DeletePost(ctx, p.ID, "1234"); err != nil {
		t.Fatalf("DeletePost returned error: %v", err)
	}
	if got := rec.Posts(); len(got) != 0 {
		t.Fatalf("posts after delete = %#v", got)
	}
}
