package sheetmock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// idLayout is fixed width so row ids sort the same as text and as time.
const idLayout = "2006-01-02T15:04:05.000000Z07:00"

const (
	statusOpen      = "OPEN"
	statusCompleted = "COMPLETED"
)

// ErrNotFound is returned when a post id has no row.
var ErrNotFound = errors.New("post not found")

// ErrWrongPassword is returned when a post's password does not match.
var ErrWrongPassword = errors.New("wrong password")

// ErrInvalidStatus is returned for any status change other than completing.
var ErrInvalidStatus = errors.New("invalid status change")

// ErrAlreadyCompleted is returned when completing a post that is not open.
var ErrAlreadyCompleted = errors.New("post already completed")

// PostRow is one row of the post tab, password excluded.
type PostRow struct {
	ItemName  string `json:"item_name"`
	ItemType  string `json:"item_type"`
	Price     int    `json:"price"`
	Memo      string `json:"memo"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// CommentRow is one row of the comment tab.
type CommentRow struct {
	PostID    string `json:"post_id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Store keeps both tabs in SQLite.
type Store struct {
	conn *sql.DB
	now  func() time.Time

	mu     sync.Mutex // serialises id allocation
	lastID time.Time
}

// Open opens or creates the database at path. ":memory:" works for tests.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection keeps ":memory:" databases shared across queries.
	conn.SetMaxOpenConns(1)
	s := &Store{conn: conn, now: time.Now}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS posts (
		timestamp TEXT PRIMARY KEY,
		item_name TEXT NOT NULL,
		item_type TEXT NOT NULL DEFAULT '',
		price INTEGER NOT NULL DEFAULT 0,
		memo TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'OPEN',
		password TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS comments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		post_id TEXT NOT NULL,
		author TEXT NOT NULL,
		content TEXT NOT NULL,
		timestamp TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS comments_post ON comments(post_id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// nextID returns a timestamp id strictly after every id handed out by this
// process, so two posts in the same microsecond still get distinct ids.
func (s *Store) nextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now().UTC().Truncate(time.Microsecond)
	if !t.After(s.lastID) {
		t = s.lastID.Add(time.Microsecond)
	}
	s.lastID = t
	return t.Format(idLayout)
}

// Posts returns every post in insertion order.
func (s *Store) Posts(ctx context.Context) ([]PostRow, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT item_name, item_type, price, memo, status, timestamp FROM posts ORDER BY timestamp")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	posts := []PostRow{}
	for rows.Next() {
		var p PostRow
		if err := rows.Scan(&p.ItemName, &p.ItemType, &p.Price, &p.Memo, &p.Status, &p.Timestamp); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Comments returns every comment in insertion order.
func (s *Store) Comments(ctx context.Context) ([]CommentRow, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT post_id, author, content, timestamp FROM comments ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	comments := []CommentRow{}
	for rows.Next() {
		var c CommentRow
		if err := rows.Scan(&c.PostID, &c.Author, &c.Content, &c.Timestamp); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CreatePost inserts an open post and returns its id.
func (s *Store) CreatePost(ctx context.Context, p PostRow, password string) (string, error) {
	id := s.nextID()
	_, err := s.conn.ExecContext(ctx,
		"INSERT INTO posts (timestamp, item_name, item_type, price, memo, status, password) VALUES (?, ?, ?, ?, ?, 'OPEN', ?)",
		id, p.ItemName, p.ItemType, p.Price, p.Memo, password)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdatePost replaces the editable columns of post id.
func (s *Store) UpdatePost(ctx context.Context, id string, p PostRow, password string) error {
	if err := s.CheckPassword(ctx, id, password); err != nil {
		return err
	}
	_, err := s.conn.ExecContext(ctx,
		"UPDATE posts SET item_name = ?, item_type = ?, price = ?, memo = ? WHERE timestamp = ?",
		p.ItemName, p.ItemType, p.Price, p.Memo, id)
	return err
}

// SetStatus changes the status column of post id. Status only moves from
// OPEN to COMPLETED.
func (s *Store) SetStatus(ctx context.Context, id, status, password string) error {
	if status != statusCompleted {
		return ErrInvalidStatus
	}
	if err := s.CheckPassword(ctx, id, password); err != nil {
		return err
	}
	res, err := s.conn.ExecContext(ctx,
		"UPDATE posts SET status = ? WHERE timestamp = ? AND status = ?",
		statusCompleted, id, statusOpen)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyCompleted
	}
	return nil
}

// DeletePost removes post id and its comments.
func (s *Store) DeletePost(ctx context.Context, id, password string) error {
	if err := s.CheckPassword(ctx, id, password); err != nil {
		return err
	}
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE post_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE timestamp = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// AddComment appends a comment to post id.
func (s *Store) AddComment(ctx context.Context, c CommentRow) error {
	var exists int
	err := s.conn.QueryRowContext(ctx, "SELECT 1 FROM posts WHERE timestamp = ?", c.PostID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	_, err = s.conn.ExecContext(ctx,
		"INSERT INTO comments (post_id, author, content, timestamp) VALUES (?, ?, ?, ?)",
		c.PostID, c.Author, c.Content, s.nextID())
	return err
}

// CheckPassword compares password with the one stored for post id.
func (s *Store) CheckPassword(ctx context.Context, id, password string) error {
	var stored string
	err := s.conn.QueryRowContext(ctx, "SELECT password FROM posts WHERE timestamp = ?", id).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if stored != password {
		return ErrWrongPassword
	}
	return nil
}
