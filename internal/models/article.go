package models

import "time"

// DefaultArticleImgURL подставляется, если при создании картинку не передали.
const DefaultArticleImgURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

type Article struct {
	ID            int64     `json:"article_id"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	Author        string    `json:"author"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
	CommentCount  int       `json:"comment_count"`
}

// swagger:model CreateArticleRequest
type CreateArticleRequest struct {
	Author        string `json:"author"          example:"butter_bridge"`
	Title         string `json:"title"           example:"Living in the shadow of a great man"`
	Body          string `json:"body"            example:"I find this existence challenging"`
	Topic         string `json:"topic"           example:"mitch"`
	ArticleImgURL string `json:"article_img_url" example:"https://example.com/img.png"`
}

// swagger:model VotesRequest
type VotesRequest struct {
	IncVotes *int `json:"inc_votes" example:"1"`
}

// SortColumn - допустимая колонка сортировки списка статей.
type SortColumn string

const (
	SortByID           SortColumn = "article_id"
	SortByTitle        SortColumn = "title"
	SortByTopic        SortColumn = "topic"
	SortByAuthor       SortColumn = "author"
	SortByCreatedAt    SortColumn = "created_at"
	SortByVotes        SortColumn = "votes"
	SortByCommentCount SortColumn = "comment_count"
)

// ArticleFilter - уже провалидированные параметры списка статей.
type ArticleFilter struct {
	SortBy SortColumn
	Desc   bool
	Topic  string
	Author string
	Page
}

type ArticlePage struct {
	Articles   []*Article `json:"articles"`
	TotalCount int        `json:"total_count"`
}
