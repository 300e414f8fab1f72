package controllers

import (
	"net/http"

	"Yatube/api/responses"
	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

func (server *Server) Healthz(c *gin.Context) {
	sqlDB, err := server.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Index lists every post.
func (server *Server) Index(c *gin.Context) {
	result, err := server.Feeds.All(c.Request.Context()).Page(c.Query("page"))
	if err != nil {
		server.serverError(c, err)
		return
	}
	server.respond(c, http.StatusOK, "posts/index.html",
		server.feedToResponse("Latest updates on the site", result), nil)
}

func (server *Server) GroupPosts(c *gin.Context) {
	f, err := server.Feeds.InGroup(c.Request.Context(), c.Param("slug"))
	if err != nil {
		server.lookupFailed(c, err)
		return
	}
	result, err := f.Page(c.Query("page"))
	if err != nil {
		server.serverError(c, err)
		return
	}
	data := server.feedToResponse(f.Group.Title, result)
	data.Group = groupToResponse(f.Group)
	server.respond(c, http.StatusOK, "posts/group_list.html", data, nil)
}

// Profile lists an author's posts with their follow counters and whether the
// viewer follows them.
func (server *Server) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	f, err := server.Feeds.ByAuthor(ctx, c.Param("username"))
	if err != nil {
		server.lookupFailed(c, err)
		return
	}
	result, err := f.Page(c.Query("page"))
	if err != nil {
		server.serverError(c, err)
		return
	}

	profile := responses.ProfileResponse{User: userToResponse(f.Author), PostsCount: result.Page.Count}
	if profile.FollowersCount, err = server.Follows.FollowersCount(ctx, f.Author.ID); err != nil {
		server.serverError(c, err)
		return
	}
	if profile.FollowingCount, err = server.Follows.FollowingCount(ctx, f.Author.ID); err != nil {
		server.serverError(c, err)
		return
	}
	if uid, ok := httpctx.CurrentUserID(c); ok {
		profile.IsSelf = uid == f.Author.ID
		if profile.Following, err = server.Follows.IsFollowing(ctx, uid, f.Author.ID); err != nil {
			server.serverError(c, err)
			return
		}
	}

	data := server.feedToResponse("Profile of "+f.Author.Username, result)
	data.Profile = &profile
	server.respond(c, http.StatusOK, "posts/profile.html", data, nil)
}

// FollowIndex lists posts by the authors the viewer follows.
func (server *Server) FollowIndex(c *gin.Context) {
	uid, _ := httpctx.CurrentUserID(c)
	result, err := server.Feeds.Followed(c.Request.Context(), uid).Page(c.Query("page"))
	if err != nil {
		server.serverError(c, err)
		return
	}
	server.respond(c, http.StatusOK, "posts/follow.html", server.feedToResponse("Subscriptions", result), nil)
}
