package controllers

import (
	"log/slog"
	"net/http"

	"Yatube/api/models"
	"Yatube/api/pagination"
	"Yatube/api/responses"
	"Yatube/api/utils/formaterror"
	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

const groupsPerPage = 50

type groupsPage struct {
	Groups []responses.GroupResponse `json:"groups"`
	Page   responses.PageResponse    `json:"page"`
	Form   groupForm                 `json:"-"`
}

func (server *Server) renderGroups(c *gin.Context, status int, form groupForm, errs map[string]string) {
	groups, err := (&models.Group{}).FindAllGroups(server.DB.WithContext(c.Request.Context()))
	if err != nil {
		server.serverError(c, err)
		return
	}
	shown, page := pagination.Paginate(groups, groupsPerPage, c.Query("page"))
	server.respond(c, status, "core/groups.html", groupsPage{
		Groups: groupsToResponse(shown),
		Page:   pageToResponse(page),
		Form:   form,
	}, errs)
}

func (server *Server) ListGroups(c *gin.Context) {
	server.renderGroups(c, http.StatusOK, groupForm{}, nil)
}

func (server *Server) CreateGroup(c *gin.Context) {
	var form groupForm
	_ = c.ShouldBind(&form)

	group := models.Group{Title: form.Title, Slug: form.Slug, Description: form.Description}
	group.Prepare()
	if errs := group.Validate(); len(errs) > 0 {
		server.renderGroups(c, http.StatusOK, form, errs)
		return
	}
	created, err := group.SaveGroup(server.DB.WithContext(c.Request.Context()))
	if err != nil {
		server.renderGroups(c, http.StatusOK, form, formaterror.FormatError(err.Error()))
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusCreated, gin.H{"status": http.StatusCreated, "response": groupToResponse(created)})
		return
	}
	redirect(c, "/group/"+created.Slug+"/")
}

// DeleteGroup removes the group; its posts stay, without a group.
func (server *Server) DeleteGroup(c *gin.Context) {
	ctx := c.Request.Context()
	group, err := (&models.Group{}).FindGroupBySlug(server.DB.WithContext(ctx), c.Param("slug"))
	if err != nil {
		server.lookupFailed(c, err)
		return
	}
	if err := RemoveGroup(ctx, server.DB, group); err != nil {
		server.serverError(c, err)
		return
	}
	slog.Info("admin: group deleted", "slug", group.Slug, "by", httpctx.CurrentUsername(c))
	redirect(c, "/admin/groups/")
}
