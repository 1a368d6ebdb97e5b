package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePostRequest struct {
	Content string `json:"content"`
}

type PostDTO struct {
	PostID    string `json:"post_id"`
	OwnerID   string `json:"owner_id"`
	Content   string `json:"content"`
	LikeCount int    `json:"like_count"`
	ViewCount int    `json:"view_count"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type PostResponse struct {
	Post PostDTO `json:"post"`
}

type ListPostsResponse struct {
	Items []PostDTO `json:"items"`
}
