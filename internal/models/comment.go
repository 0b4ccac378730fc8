package models

import "time"

type Comment struct {
	ID        int64     `json:"comment_id"`
	ArticleID int64     `json:"article_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// swagger:model CreateCommentRequest
// Username оставлен для совместимости со старыми клиентами.
type CreateCommentRequest struct {
	Author   string `json:"author"   example:"butter_bridge"`
	Username string `json:"username" example:"butter_bridge"`
	Body     string `json:"body"     example:"Great read!"`
}

type CommentPage struct {
	Comments   []*Comment `json:"comments"`
	TotalCount int        `json:"total_count"`
}
