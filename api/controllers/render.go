package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"Yatube/api/responses"
	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

var offeredFormats = []string{binding.MIMEJSON, binding.MIMEHTML}

func viewer(c *gin.Context) *responses.UserResponse {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		return nil
	}
	return &responses.UserResponse{ID: uid, Username: httpctx.CurrentUsername(c), IsAdmin: httpctx.IsAdminRequest(c)}
}

// respond answers with JSON unless the client asks for HTML, in which case
// page is rendered inside the site layout.
func (server *Server) respond(c *gin.Context, status int, page string, data interface{}, errs map[string]string) {
	jsonData := gin.H{"status": status, "response": data}
	if len(errs) > 0 {
		jsonData["errors"] = errs
	}
	c.Negotiate(status, gin.Negotiate{
		Offered:  offeredFormats,
		HTMLName: page,
		HTMLData: gin.H{"Viewer": viewer(c), "Data": data, "Errors": errs},
		JSONData: jsonData,
	})
}

func (server *Server) NotFound(c *gin.Context) {
	server.respond(c, http.StatusNotFound, "core/404.html", gin.H{"Path": c.Request.URL.Path}, nil)
}

func (server *Server) serverError(c *gin.Context, err error) {
	slog.Error("server: request failed", "path", c.Request.URL.Path, "error", err)
	_ = c.Error(err)
	server.respond(c, http.StatusInternalServerError, "core/error.html", gin.H{
		"Status":  http.StatusInternalServerError,
		"Message": "Please try again later",
	}, nil)
}

// lookupFailed answers 404 for missing records and 500 otherwise.
func (server *Server) lookupFailed(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		server.NotFound(c)
		return
	}
	server.serverError(c, err)
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func postURL(id uint) string {
	return "/posts/" + strconv.FormatUint(uint64(id), 10) + "/"
}

// safeNext accepts only local absolute paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	return next
}
