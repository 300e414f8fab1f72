// Package responses holds the JSON shapes returned by the handlers. The
// HTML templates render the same values.
package responses

import "time"

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
}

type GroupResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type PostResponse struct {
	ID        uint           `json:"id"`
	Text      string         `json:"text"`
	CreatedAt time.Time      `json:"created_at"`
	Author    UserResponse   `json:"author"`
	Group     *GroupResponse `json:"group"`
	Image     string         `json:"image,omitempty"`
}

type CommentResponse struct {
	ID        uint         `json:"id"`
	PostID    *uint        `json:"post_id"`
	Text      string       `json:"text"`
	CreatedAt time.Time    `json:"created_at"`
	Author    UserResponse `json:"author"`
}

type PageResponse struct {
	Number             int   `json:"number"`
	NumPages           int   `json:"num_pages"`
	Count              int64 `json:"count"`
	HasNext            bool  `json:"has_next"`
	HasPrevious        bool  `json:"has_previous"`
	NextPageNumber     int   `json:"next_page_number"`
	PreviousPageNumber int   `json:"previous_page_number"`
	HasOtherPages      bool  `json:"-"`
	StartIndex         int64 `json:"start_index"`
	EndIndex           int64 `json:"end_index"`
	Range              []int `json:"-"`
}

type ProfileResponse struct {
	User           UserResponse `json:"user"`
	PostsCount     int64        `json:"posts_count"`
	FollowersCount int64        `json:"followers_count"`
	FollowingCount int64        `json:"following_count"`
	Following      bool         `json:"following"`
	IsSelf         bool         `json:"is_self"`
}

// FeedResponse is one page of posts. Group or Profile is set on the scoped
// feeds.
type FeedResponse struct {
	Title   string           `json:"title"`
	Posts   []PostResponse   `json:"posts"`
	Page    PageResponse     `json:"page"`
	Group   *GroupResponse   `json:"group,omitempty"`
	Profile *ProfileResponse `json:"profile,omitempty"`
}

type PostDetailResponse struct {
	Post       PostResponse      `json:"post"`
	Comments   []CommentResponse `json:"comments"`
	PostsCount int64             `json:"author_posts_count"`
	CanEdit    bool              `json:"can_edit"`
}

// PostFormResponse echoes a post form back, with any validation errors.
type PostFormResponse struct {
	IsEdit bool            `json:"is_edit"`
	PostID uint            `json:"post_id,omitempty"`
	Text   string          `json:"text"`
	Group  uint            `json:"group,omitempty"`
	Groups []GroupResponse `json:"groups"`
}

type AuthFormResponse struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Next     string `json:"next,omitempty"`
}
