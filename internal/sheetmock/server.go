package sheetmock

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/five82/splitboard/internal/logging"
	"github.com/five82/splitboard/internal/sheet"
)

// Rejection messages, returned with success=false like the real web app.
const (
	msgNotFound      = "게시글을 찾을 수 없습니다."
	msgWrongPassword = "비밀번호가 일치하지 않습니다."
	msgMissingFields = "필수 항목이 비어 있습니다."
	msgUnknownAction = "알 수 없는 요청입니다."
	msgBadStatus     = "완료 처리만 할 수 있습니다."
	msgAlreadyDone   = "이미 거래가 완료된 게시글입니다."
)

// request is the union of every write payload.
type request struct {
	ActionType string `json:"action_type"`
	PostID     string `json:"post_id"`
	ItemName   string `json:"item_name"`
	ItemType   string `json:"item_type"`
	Price      int    `json:"price"`
	Memo       string `json:"memo"`
	Password   string `json:"password"`
	Status     string `json:"status"`
	Author     string `json:"author"`
	Content    string `json:"content"`
}

type listResponse struct {
	Post    []PostRow    `json:"post"`
	Comment []CommentRow `json:"comment"`
}

// Server serves the sheet wire protocol on a single URL.
type Server struct {
	store  *Store
	router chi.Router
}

// New creates a server backed by store.
func New(store *Store, logRequests bool) *Server {
	s := &Server{store: store}
	r := chi.NewRouter()
	if logRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleList)
	r.Post("/", s.handleWrite)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.Posts(r.Context())
	if err != nil {
		s.internalError(w, "list posts", err)
		return
	}
	comments, err := s.store.Comments(r.Context())
	if err != nil {
		s.internalError(w, "list comments", err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Post: posts, Comment: comments})
}

func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	raw := r.PostFormValue("payload")
	if raw == "" {
		http.Error(w, "missing payload", http.StatusBadRequest)
		return
	}
	var req request
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	err := s.apply(r, req)
	switch {
	case err == nil:
		logging.Info.Printf("sheetmock: %s %s", req.ActionType, req.PostID)
		writeJSON(w, http.StatusOK, sheet.Ack{Success: true})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusOK, sheet.Ack{Message: msgNotFound})
	case errors.Is(err, ErrWrongPassword):
		writeJSON(w, http.StatusOK, sheet.Ack{Message: msgWrongPassword})
	case errors.Is(err, errMissingFields):
		writeJSON(w, http.StatusOK, sheet.Ack{Message: msgMissingFields})
	case errors.Is(err, errUnknownAction):
		writeJSON(w, http.StatusOK, sheet.Ack{Message: msgUnknownAction})
	case errors.Is(err, ErrInvalidStatus):
		writeJSON(w, http.StatusOK, sheet.Ack{Message: msgBadStatus})
	case errors.Is(err, ErrAlreadyCompleted):
		writeJSON(w, http.StatusOK, sheet.Ack{Message: msgAlreadyDone})
	default:
		s.internalError(w, req.ActionType, err)
	}
}

var (
	errMissingFields = errors.New("missing fields")
	errUnknownAction = errors.New("unknown action")
)

// apply performs one write. Required fields mirror what the web app checks.
func (s *Server) apply(r *http.Request, req request) error {
	ctx := r.Context()
	row := PostRow{
		ItemName: strings.TrimSpace(req.ItemName),
		ItemType: strings.TrimSpace(req.ItemType),
		Price:    max(req.Price, 0),
		Memo:     req.Memo,
	}

	switch sheet.Action(req.ActionType) {
	case sheet.ActionNewPost:
		if row.ItemName == "" || req.Password == "" {
			return errMissingFields
		}
		_, err := s.store.CreatePost(ctx, row, req.Password)
		return err
	case sheet.ActionUpdatePost:
		if req.PostID == "" || row.ItemName == "" {
			return errMissingFields
		}
		return s.store.UpdatePost(ctx, req.PostID, row, req.Password)
	case sheet.ActionUpdateStatus:
		status := strings.TrimSpace(req.Status)
		if req.PostID == "" || status == "" {
			return errMissingFields
		}
		return s.store.SetStatus(ctx, req.PostID, status, req.Password)
	case sheet.ActionDeletePost:
		if req.PostID == "" {
			return errMissingFields
		}
		return s.store.DeletePost(ctx, req.PostID, req.Password)
	case sheet.ActionVerifyPassword:
		if req.PostID == "" {
			return errMissingFields
		}
		return s.store.CheckPassword(ctx, req.PostID, req.Password)
	case sheet.ActionNewComment:
		content := strings.TrimSpace(req.Content)
		if req.PostID == "" || content == "" {
			return errMissingFields
		}
		author := strings.TrimSpace(req.Author)
		if author == "" {
			author = sheet.DefaultAuthor
		}
		return s.store.AddComment(ctx, CommentRow{PostID: req.PostID, Author: author, Content: content})
	default:
		return errUnknownAction
	}
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	logging.Error.Printf("sheetmock: %s: %v", op, err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn.Printf("sheetmock: write response: %v", err)
	}
}
