package reconcile

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/five82/splitboard/internal/logging"
	"github.com/five82/splitboard/internal/sheet"
)

// User-facing messages for local validation failures.
const (
	msgTitleRequired    = "제목을 입력해주세요."
	msgTitleMarker      = "총액 게시글의 제목은 [1인당]으로 시작할 수 없습니다."
	msgCategoryRequired = "카테고리를 선택해주세요."
	msgPasswordRequired = "비밀번호를 입력해주세요."
	msgPriceNegative    = "가격은 0 이상이어야 합니다."
	msgContentRequired  = "댓글 내용을 입력해주세요."
	msgPostNotFound     = "게시글을 찾을 수 없습니다."
	msgAlreadyCompleted = "이미 거래가 완료된 게시글입니다."
)

// ValidateFields checks the required post fields before any request is made.
func ValidateFields(f sheet.PostFields) error {
	switch {
	case strings.TrimSpace(f.Title) == "":
		return &sheet.ValidationError{Field: "title", Message: msgTitleRequired}
	case f.PriceKind == sheet.PriceTotal && sheet.HasPriceMarker(f.Title):
		return &sheet.ValidationError{Field: "title", Message: msgTitleMarker}
	case strings.TrimSpace(f.Category) == "":
		return &sheet.ValidationError{Field: "category", Message: msgCategoryRequired}
	case f.Price < 0:
		return &sheet.ValidationError{Field: "price", Message: msgPriceNegative}
	}
	return validatePassword(f.Password)
}

func validatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return &sheet.ValidationError{Field: "password", Message: msgPasswordRequired}
	}
	return nil
}

// submit sends one write and folds a success=false ack into a RejectionError.
func (r *Reconciler) submit(ctx context.Context, action sheet.Action, payload any) error {
	ack, err := r.gw.Submit(ctx, action, payload)
	if err != nil {
		return err
	}
	if !ack.Success {
		return &sheet.RejectionError{Action: action, Message: ack.Message}
	}
	return nil
}

// fail records err for the user and returns it wrapped with op.
func (r *Reconciler) fail(op string, err error) error {
	if sheet.Kind(err) == sheet.KindTransport {
		logging.Error.Printf("%s: %v", op, err)
	} else {
		logging.Info.Printf("%s: %v", op, err)
	}
	r.setNotice(err)
	r.notify()
	return fmt.Errorf("%s: %w", op, err)
}

// refreshAfterWrite reconciles with the sheet after a write. Its own failure
// is already surfaced as a notice.
func (r *Reconciler) refreshAfterWrite(ctx context.Context) {
	_ = r.Refresh(ctx)
}

// CreatePost validates f and submits it as a new post. The draft is kept on
// failure and cleared on success.
func (r *Reconciler) CreatePost(ctx context.Context, f sheet.PostFields) error {
	r.SetForm(f)
	if err := ValidateFields(f); err != nil {
		return r.fail("create post", err)
	}
	if err := r.submit(ctx, sheet.ActionNewPost, sheet.NewPostPayload(f)); err != nil {
		return r.fail("create post", err)
	}

	logging.Info.Printf("created post %q", f.Title)
	r.mu.Lock()
	r.form = sheet.PostFields{}
	r.mu.Unlock()
	r.setInfo("게시글이 등록되었습니다.")
	r.refreshAfterWrite(ctx)
	return nil
}

// UpdatePost submits edited fields for post id and leaves edit mode on success.
func (r *Reconciler) UpdatePost(ctx context.Context, id string, f sheet.PostFields) error {
	r.SetForm(f)
	if err := ValidateFields(f); err != nil {
		return r.fail("update post", err)
	}
	gen := r.generation()
	if err := r.submit(ctx, sheet.ActionUpdatePost, sheet.UpdatePostPayload(id, f)); err != nil {
		return r.fail("update post", err)
	}

	logging.Info.Printf("updated post %s", id)
	r.mu.Lock()
	if r.detailGen == gen {
		r.form = sheet.PostFields{}
		r.editMode = false
	}
	r.mu.Unlock()
	r.setInfo("게시글이 수정되었습니다.")
	r.refreshAfterWrite(ctx)
	return nil
}

// VerifyAndEnterEditMode checks password for post id and, when accepted,
// loads the cached post into the draft and switches the detail to editing.
func (r *Reconciler) VerifyAndEnterEditMode(ctx context.Context, id, password string) error {
	if err := validatePassword(password); err != nil {
		return r.fail("verify password", err)
	}
	if _, ok := r.store.Post(id); !ok {
		return r.fail("verify password", &sheet.ValidationError{Field: "post_id", Message: msgPostNotFound})
	}
	gen := r.generation()
	payload := sheet.PasswordPayload{PostID: id, Password: password}
	if err := r.submit(ctx, sheet.ActionVerifyPassword, payload); err != nil {
		return r.fail("verify password", err)
	}

	// Re-read the cache: a refresh may have landed while verifying.
	post, ok := r.store.Post(id)
	if !ok {
		return r.fail("verify password", &sheet.ValidationError{Field: "post_id", Message: msgPostNotFound})
	}
	r.mu.Lock()
	if r.detailGen == gen && r.detailOpen && r.detailID == id {
		r.form = post.Fields()
		r.form.Password = password
		r.editMode = true
	}
	r.mu.Unlock()
	r.notify()
	return nil
}

// CompletePost marks post id as completed. Completed posts are rejected
// locally since status never moves back.
func (r *Reconciler) CompletePost(ctx context.Context, id, password string) error {
	if err := validatePassword(password); err != nil {
		return r.fail("complete post", err)
	}
	if post, ok := r.store.Post(id); ok && post.Completed() {
		return r.fail("complete post", &sheet.ValidationError{Field: "status", Message: msgAlreadyCompleted})
	}
	payload := sheet.StatusPayload{PostID: id, Status: sheet.StatusCompleted, Password: password}
	return r.closingWrite(ctx, "complete post", sheet.ActionUpdateStatus, payload, "거래 완료 처리되었습니다.")
}

// DeletePost removes post id from the sheet.
func (r *Reconciler) DeletePost(ctx context.Context, id, password string) error {
	if err := validatePassword(password); err != nil {
		return r.fail("delete post", err)
	}
	payload := sheet.PasswordPayload{PostID: id, Password: password}
	return r.closingWrite(ctx, "delete post", sheet.ActionDeletePost, payload, "게시글이 삭제되었습니다.")
}

// closingWrite submits a write that ends the detail view on success. The
// detail is only closed if the user is still on the view that issued it.
func (r *Reconciler) closingWrite(ctx context.Context, op string, action sheet.Action, payload any, done string) error {
	gen := r.generation()
	if err := r.submit(ctx, action, payload); err != nil {
		return r.fail(op, err)
	}

	logging.Info.Printf("%s succeeded", op)
	r.mu.Lock()
	if r.detailGen == gen {
		r.closeDetailLocked()
	}
	r.mu.Unlock()
	r.setInfo(done)
	r.refreshAfterWrite(ctx)
	return nil
}

// SubmitComment shows the comment immediately as a local entry, sends it,
// then refreshes whatever the outcome. The local entry is removed at once if
// the send fails and is otherwise dropped by the refresh.
func (r *Reconciler) SubmitComment(ctx context.Context, postID, author, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return r.fail("submit comment", &sheet.ValidationError{Field: "content", Message: msgContentRequired})
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = sheet.DefaultAuthor
	}

	local := sheet.Comment{
		PostID:    postID,
		Author:    author,
		Content:   content,
		CreatedAt: r.now(),
		LocalID:   r.newID(),
	}
	r.mu.Lock()
	r.pending = append(r.pending, local)
	r.mu.Unlock()
	r.notify()

	err := r.submit(ctx, sheet.ActionNewComment, sheet.CommentPayload{PostID: postID, Author: author, Content: content})
	if err != nil {
		r.mu.Lock()
		r.pending = slices.DeleteFunc(r.pending, func(c sheet.Comment) bool { return c.LocalID == local.LocalID })
		r.mu.Unlock()
		err = r.fail("submit comment", err)
	}
	r.refreshAfterWrite(ctx)
	return err
}
