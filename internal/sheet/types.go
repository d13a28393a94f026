package sheet

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const sheetTimestampLayout = "2006-01-02 15:04:05"

// Status is the lifecycle state of a post. It only ever moves OPEN -> COMPLETED.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusCompleted Status = "COMPLETED"
)

// PriceKind says whether a post's price is the whole bill or each person's share.
type PriceKind int

const (
	PriceTotal PriceKind = iota
	PricePerPerson
)

// Fallback labels applied when the sheet leaves a column blank.
const (
	DefaultCategory = "기타"
	DefaultAuthor   = "anonymous"
	UntitledPost    = "제목 없음"
)

// Categories lists the item types offered by the board filters, in display order.
var Categories = []string{"Drinks", "Snacks", "Food", "Delivery", "Groceries", "Household", DefaultCategory}

// Post is a board entry in structured form. The legacy title and memo packing
// is undone by the codec before a Post is built.
type Post struct {
	ID          string
	Title       string
	PriceKind   PriceKind
	Category    string
	Price       int
	Location    string
	Description string
	Status      Status
	CreatedAt   time.Time
}

// Completed reports whether the post has been marked done.
func (p Post) Completed() bool {
	return p.Status == StatusCompleted
}

// Comment is a reply attached to a post. LocalID is set only on optimistic
// entries that have not come back from the sheet.
type Comment struct {
	PostID    string
	Author    string
	Content   string
	CreatedAt time.Time
	LocalID   string
}

// Local reports whether the comment exists only on this client.
func (c Comment) Local() bool {
	return c.LocalID != ""
}

// PostFields carries the user-editable fields of a post form.
type PostFields struct {
	Title       string
	PriceKind   PriceKind
	Category    string
	Price       int
	Location    string
	Description string
	Password    string
}

// Listing is everything the read endpoint returns.
type Listing struct {
	Posts    []Post
	Comments []Comment
}

// ListResponse mirrors the read endpoint body.
type ListResponse struct {
	Post    []PostRecord    `json:"post"`
	Comment []CommentRecord `json:"comment"`
}

// PostRecord is one sheet row of the post tab. The password column is never
// echoed back by the read endpoint.
type PostRecord struct {
	ItemName  flexString `json:"item_name"`
	ItemType  flexString `json:"item_type"`
	Price     flexInt    `json:"price"`
	Memo      flexString `json:"memo"`
	Status    flexString `json:"status"`
	Timestamp flexString `json:"timestamp"`
}

// CommentRecord is one sheet row of the comment tab.
type CommentRecord struct {
	PostID    flexString `json:"post_id"`
	Author    flexString `json:"author"`
	Content   flexString `json:"content"`
	Timestamp flexString `json:"timestamp"`
}

// Ack is the write endpoint response. Success=false with a Message is a normal
// outcome such as a wrong password.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ToPost decodes a sheet row into a Post.
func (r PostRecord) ToPost() Post {
	title, kind := DecodeTitle(string(r.ItemName))
	location, description := DecodeBody(string(r.Memo))
	category := strings.TrimSpace(string(r.ItemType))
	if category == "" {
		category = DefaultCategory
	}
	price := int(r.Price)
	if price < 0 {
		price = 0
	}
	id := strings.TrimSpace(string(r.Timestamp))
	return Post{
		ID:          id,
		Title:       title,
		PriceKind:   kind,
		Category:    category,
		Price:       price,
		Location:    location,
		Description: description,
		Status:      ParseStatus(string(r.Status)),
		CreatedAt:   ParseTime(id),
	}
}

// ToComment decodes a sheet row into a Comment.
func (r CommentRecord) ToComment() Comment {
	author := strings.TrimSpace(string(r.Author))
	if author == "" {
		author = DefaultAuthor
	}
	return Comment{
		PostID:    strings.TrimSpace(string(r.PostID)),
		Author:    author,
		Content:   strings.TrimSpace(string(r.Content)),
		CreatedAt: ParseTime(string(r.Timestamp)),
	}
}

// ParseStatus maps a sheet status cell to a Status. Anything not recognisably
// completed is treated as open.
func ParseStatus(value string) Status {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(StatusCompleted), "완료":
		return StatusCompleted
	default:
		return StatusOpen
	}
}

// ParseTime returns the timestamp as time.Time when possible. Sheets hand back
// ISO strings, "YYYY-MM-DD hh:mm:ss" cells or epoch milliseconds.
func ParseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(sheetTimestampLayout, value, time.Local); err == nil {
		return t
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms)
	}
	return time.Time{}
}

// flexString accepts JSON strings, numbers and null.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexInt accepts JSON numbers, numeric strings and null. Unparseable strings
// decode as zero, matching how the board treats an unknown price.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	trimmed := strings.ReplaceAll(strings.TrimSpace(string(s)), ",", "")
	if trimmed == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = flexInt(f)
	return nil
}
