package post

type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type LikeResponse struct {
	PostID    string `json:"post_id"`
	LikeCount int64  `json:"like_count"`
}

type FeedResponse struct {
	Posts []PostRow `json:"posts"`
}

type CommentsResponse struct {
	Comments []CommentRow `json:"comments"`
}
