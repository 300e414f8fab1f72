package controllers

import (
	"context"
	"fmt"
	"net/http"

	"Yatube/api/events"
	"Yatube/api/models"
	"Yatube/api/responses"
	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

const postFormPage = "posts/post_create.html"

// PostDetail shows a post, its comments and the comment form.
func (server *Server) PostDetail(c *gin.Context) {
	db := server.DB.WithContext(c.Request.Context())
	post, err := resolvePostByIdentifier(db, c.Param("id"))
	if err != nil {
		server.lookupFailed(c, err)
		return
	}
	comments, err := (&models.Comment{}).GetComments(db, post.ID)
	if err != nil {
		server.serverError(c, err)
		return
	}
	count, err := (&models.Post{}).CountUserPosts(db, post.AuthorID)
	if err != nil {
		server.serverError(c, err)
		return
	}

	data := responses.PostDetailResponse{
		Post:       server.postToResponse(post),
		Comments:   make([]responses.CommentResponse, 0, len(comments)),
		PostsCount: count,
	}
	for i := range comments {
		data.Comments = append(data.Comments, commentToResponse(&comments[i]))
	}
	if uid, ok := httpctx.CurrentUserID(c); ok {
		data.CanEdit = uid == post.AuthorID
	}
	server.respond(c, http.StatusOK, "posts/post_detail.html", data, nil)
}

func (server *Server) renderPostForm(c *gin.Context, form responses.PostFormResponse, errs map[string]string) {
	groups, err := (&models.Group{}).FindAllGroups(server.DB.WithContext(c.Request.Context()))
	if err != nil {
		server.serverError(c, err)
		return
	}
	form.Groups = groupsToResponse(groups)
	server.respond(c, http.StatusOK, postFormPage, form, errs)
}

func (server *Server) CreatePostForm(c *gin.Context) {
	server.renderPostForm(c, responses.PostFormResponse{}, nil)
}

// CreatePost publishes a post for the viewer and redirects to their profile.
// Invalid input re-renders the form.
func (server *Server) CreatePost(c *gin.Context) {
	uid, _ := httpctx.CurrentUserID(c)
	ctx := c.Request.Context()

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		server.renderPostForm(c, responses.PostFormResponse{Text: form.Text},
			map[string]string{"Invalid_request": "Unable to read the form"})
		return
	}

	post := models.Post{AuthorID: uid}
	image, errs, err := server.validatePost(c, &form, &post)
	if err != nil {
		server.serverError(c, err)
		return
	}
	if len(errs) > 0 {
		server.renderPostForm(c, responses.PostFormResponse{Text: form.Text, Group: form.selectedGroup()}, errs)
		return
	}

	if image != nil {
		if err := server.Images.Save(ctx, image); err != nil {
			server.serverError(c, err)
			return
		}
		post.Image = image.Key
	}
	saved, err := post.SavePost(server.DB.WithContext(ctx))
	if err != nil {
		server.discardImage(ctx, post.Image)
		server.serverError(c, fmt.Errorf("save post: %w", err))
		return
	}

	events.Emit(ctx, server.Events, events.New(events.PostCreated, uid, saved.ID))
	invalidatePageCache(ctx)
	redirect(c, profileURL(saved.Author.Username))
}

// editablePost loads the post and checks the viewer wrote it. Non-authors are
// sent to the post page.
func (server *Server) editablePost(c *gin.Context) (*models.Post, bool) {
	post, err := resolvePostByIdentifier(server.DB.WithContext(c.Request.Context()), c.Param("id"))
	if err != nil {
		server.lookupFailed(c, err)
		return nil, false
	}
	if uid, _ := httpctx.CurrentUserID(c); uid != post.AuthorID {
		redirect(c, postURL(post.ID))
		return nil, false
	}
	return post, true
}

func (server *Server) EditPostForm(c *gin.Context) {
	post, ok := server.editablePost(c)
	if !ok {
		return
	}
	form := responses.PostFormResponse{IsEdit: true, PostID: post.ID, Text: post.Text}
	if post.GroupID != nil {
		form.Group = *post.GroupID
	}
	server.renderPostForm(c, form, nil)
}

// EditPost updates text, group and image. Author and creation time stay.
func (server *Server) EditPost(c *gin.Context) {
	post, ok := server.editablePost(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		server.renderPostForm(c, responses.PostFormResponse{IsEdit: true, PostID: post.ID, Text: form.Text},
			map[string]string{"Invalid_request": "Unable to read the form"})
		return
	}

	update := models.Post{ID: post.ID, AuthorID: post.AuthorID, Image: post.Image}
	image, errs, err := server.validatePost(c, &form, &update)
	if err != nil {
		server.serverError(c, err)
		return
	}
	if len(errs) > 0 {
		server.renderPostForm(c, responses.PostFormResponse{
			IsEdit: true, PostID: post.ID, Text: form.Text, Group: form.selectedGroup(),
		}, errs)
		return
	}

	if image != nil {
		if err := server.Images.Save(ctx, image); err != nil {
			server.serverError(c, err)
			return
		}
		update.Image = image.Key
	}
	if _, err := update.UpdateAPost(server.DB.WithContext(ctx)); err != nil {
		server.serverError(c, fmt.Errorf("update post %d: %w", post.ID, err))
		return
	}
	if image != nil {
		server.discardImage(ctx, post.Image)
	}

	events.Emit(ctx, server.Events, events.New(events.PostUpdated, post.AuthorID, post.ID))
	invalidatePageCache(ctx)
	redirect(c, postURL(post.ID))
}

func (server *Server) DeletePost(c *gin.Context) {
	post, ok := server.editablePost(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := post.DeleteAPost(server.DB.WithContext(ctx)); err != nil {
		server.serverError(c, fmt.Errorf("delete post %d: %w", post.ID, err))
		return
	}
	server.discardImage(ctx, post.Image)

	events.Emit(ctx, server.Events, events.New(events.PostDeleted, post.AuthorID, post.ID))
	invalidatePageCache(ctx)
	redirect(c, profileURL(post.Author.Username))
}

func (server *Server) discardImage(ctx context.Context, key string) {
	discardImage(ctx, server.Images, key)
}
