package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/splitboard/internal/reconcile"
)

// WriteList prints the board as a plain table, newest first.
func WriteList(w io.Writer, views []reconcile.PostView) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "게시글이 없습니다.")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("상태", "카테고리", "제목", "가격", "댓글", "등록")
	for _, v := range views {
		t.Row(
			v.StatusLabel,
			v.Post.Category,
			v.Title,
			v.PriceLabel,
			strconv.Itoa(v.CommentCount),
			v.RelativeTime,
		)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}
