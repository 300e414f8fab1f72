package controllers

import (
	"log/slog"
	"net/http"

	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// DeleteUser removes an account with its posts, comments and follow edges.
// Comments other users left on those posts stay, detached.
func (server *Server) DeleteUser(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := resolveUserByUsername(server.DB.WithContext(ctx), c.Param("username"))
	if err != nil {
		server.lookupFailed(c, err)
		return
	}
	if uid, _ := httpctx.CurrentUserID(c); uid == user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Administrators cannot delete their own account"})
		return
	}

	if err := RemoveUser(ctx, server.DB, server.Images, user); err != nil {
		server.serverError(c, err)
		return
	}
	slog.Info("admin: user deleted", "username", user.Username, "by", httpctx.CurrentUsername(c))

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": "User deleted"})
		return
	}
	redirect(c, "/")
}
