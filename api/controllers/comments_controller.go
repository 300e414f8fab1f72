package controllers

import (
	"fmt"
	"log/slog"

	"Yatube/api/events"
	"Yatube/api/models"
	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// AddComment stores a valid comment and always returns to the post page.
func (server *Server) AddComment(c *gin.Context) {
	uid, _ := httpctx.CurrentUserID(c)
	ctx := c.Request.Context()

	post, err := resolvePostByIdentifier(server.DB.WithContext(ctx), c.Param("id"))
	if err != nil {
		server.lookupFailed(c, err)
		return
	}

	var form commentForm
	_ = c.ShouldBind(&form)

	comment := models.Comment{Text: form.Text, AuthorID: uid, PostID: &post.ID}
	comment.Prepare()
	if errs := comment.Validate(); len(errs) > 0 {
		slog.Debug("comments: rejected", "post_id", post.ID, "errors", errs)
		redirect(c, postURL(post.ID))
		return
	}

	if _, err := comment.SaveComment(server.DB.WithContext(ctx)); err != nil {
		server.serverError(c, fmt.Errorf("save comment: %w", err))
		return
	}
	events.Emit(ctx, server.Events, events.New(events.CommentCreated, uid, post.ID))
	redirect(c, postURL(post.ID))
}
