package sheet

// PostPayload is the body of new_post and update_post.
type PostPayload struct {
	PostID   string `json:"post_id,omitempty"`
	ItemName string `json:"item_name"`
	ItemType string `json:"item_type"`
	Price    int    `json:"price"`
	Memo     string `json:"memo"`
	Password string `json:"password"`
}

// StatusPayload is the body of update_status.
type StatusPayload struct {
	PostID   string `json:"post_id"`
	Status   Status `json:"status"`
	Password string `json:"password"`
}

// PasswordPayload is the body of delete_post and verify_password.
type PasswordPayload struct {
	PostID   string `json:"post_id"`
	Password string `json:"password"`
}

// CommentPayload is the body of new_comment.
type CommentPayload struct {
	PostID  string `json:"post_id"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// NewPostPayload packs form fields into sheet columns.
func NewPostPayload(f PostFields) PostPayload {
	return PostPayload{
		ItemName: EncodeTitle(f.Title, f.PriceKind),
		ItemType: f.Category,
		Price:    max(f.Price, 0),
		Memo:     EncodeBody(f.Location, f.Description),
		Password: f.Password,
	}
}

// UpdatePostPayload is NewPostPayload addressed at an existing post.
func UpdatePostPayload(id string, f PostFields) PostPayload {
	p := NewPostPayload(f)
	p.PostID = id
	return p
}
