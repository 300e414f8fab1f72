package controllers

import (
	"net/http"
	"strings"

	"Yatube/api/follows"
	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// followDone answers clients that ask for JSON with the outcome and browsers
// with a redirect.
func followDone(c *gin.Context, outcome follows.Outcome, location string) {
	if strings.Contains(c.GetHeader("Accept"), binding.MIMEJSON) {
		c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": gin.H{
			"outcome": outcome.String(),
			"changed": outcome.Changed(),
		}})
		return
	}
	redirect(c, location)
}

// ProfileFollow subscribes the viewer to the author. Following yourself
// sends you back to the index page.
func (server *Server) ProfileFollow(c *gin.Context) {
	uid, _ := httpctx.CurrentUserID(c)
	author, err := resolveUserByUsername(server.DB.WithContext(c.Request.Context()), c.Param("username"))
	if err != nil {
		server.lookupFailed(c, err)
		return
	}

	outcome, err := server.Follows.Follow(c.Request.Context(), uid, author.ID)
	if err != nil {
		server.lookupFailed(c, err)
		return
	}
	if outcome == follows.SelfFollowRejected {
		followDone(c, outcome, "/")
		return
	}
	followDone(c, outcome, profileURL(author.Username))
}

func (server *Server) ProfileUnfollow(c *gin.Context) {
	uid, _ := httpctx.CurrentUserID(c)
	author, err := resolveUserByUsername(server.DB.WithContext(c.Request.Context()), c.Param("username"))
	if err != nil {
		server.lookupFailed(c, err)
		return
	}

	outcome, err := server.Follows.Unfollow(c.Request.Context(), uid, author.ID)
	if err != nil {
		server.serverError(c, err)
		return
	}
	followDone(c, outcome, profileURL(author.Username))
}
