package controllers

import (
	"Yatube/api/feed"
	"Yatube/api/models"
	"Yatube/api/pagination"
	"Yatube/api/responses"
)

func userToResponse(user *models.User) responses.UserResponse {
	return responses.UserResponse{ID: user.ID, Username: user.Username}
}

func groupToResponse(group *models.Group) *responses.GroupResponse {
	if group == nil {
		return nil
	}
	return &responses.GroupResponse{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
}

func groupsToResponse(groups []models.Group) []responses.GroupResponse {
	out := make([]responses.GroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, *groupToResponse(&groups[i]))
	}
	return out
}

func (server *Server) imageURL(key string) string {
	if key == "" || server.Images == nil {
		return key
	}
	return server.Images.URL(key)
}

func (server *Server) postToResponse(post *models.Post) responses.PostResponse {
	return responses.PostResponse{
		ID:        post.ID,
		Text:      post.Text,
		CreatedAt: post.CreatedAt,
		Author:    userToResponse(&post.Author),
		Group:     groupToResponse(post.Group),
		Image:     server.imageURL(post.Image),
	}
}

func commentToResponse(comment *models.Comment) responses.CommentResponse {
	return responses.CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		Author:    userToResponse(&comment.Author),
	}
}

func pageToResponse(page pagination.Page) responses.PageResponse {
	return responses.PageResponse{
		Number:             page.Number,
		NumPages:           page.NumPages,
		Count:              page.Count,
		HasNext:            page.HasNext(),
		HasPrevious:        page.HasPrevious(),
		NextPageNumber:     page.NextPageNumber(),
		PreviousPageNumber: page.PreviousPageNumber(),
		HasOtherPages:      page.HasOtherPages(),
		StartIndex:         page.StartIndex(),
		EndIndex:           page.EndIndex(),
		Range:              page.Range(),
	}
}

func (server *Server) feedToResponse(title string, result *feed.Result) responses.FeedResponse {
	posts := make([]responses.PostResponse, 0, len(result.Posts))
	for i := range result.Posts {
		posts = append(posts, server.postToResponse(&result.Posts[i]))
	}
	return responses.FeedResponse{
		Title: title,
		Posts: posts,
		Page:  pageToResponse(result.Page),
	}
}
