package templates

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Yatube/api/responses"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPage(t *testing.T, r *Renderer, name string, data gin.H) string {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, r.Instance(name, data).Render(w))
	return w.Body.String()
}

func TestLoadParsesEveryPage(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)

	for _, name := range []string{
		"posts/index.html",
		"posts/group_list.html",
		"posts/profile.html",
		"posts/post_detail.html",
		"posts/post_create.html",
		"posts/follow.html",
		"users/login.html",
		"users/signup.html",
		"core/404.html",
		"core/error.html",
		"core/groups.html",
	} {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("base.html"))
}

func TestRenderIndexWithPaginator(t *testing.T) {
	r := MustLoad()
	feed := responses.FeedResponse{
		Posts: []responses.PostResponse{{
			ID:        1,
			Text:      "<b>hello</b>",
			CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Author:    responses.UserResponse{ID: 1, Username: "leo"},
			Group:     &responses.GroupResponse{Slug: "cats", Title: "Cats"},
		}},
		Page: responses.PageResponse{
			Number: 1, NumPages: 2, Count: 11, HasNext: true, NextPageNumber: 2,
			HasOtherPages: true, StartIndex: 1, EndIndex: 10, Range: []int{1, 2},
		},
	}

	body := renderPage(t, r, "posts/index.html", gin.H{"Data": feed})
	assert.Contains(t, body, "<title>Latest updates on the site</title>")
	assert.Contains(t, body, "&lt;b&gt;hello&lt;/b&gt;")
	assert.Contains(t, body, `href="/group/cats/"`)
	assert.Contains(t, body, `href="?page=2"`)
	assert.Contains(t, body, "1 to 10 of 11")
	assert.Contains(t, body, "01 Mar 2024")
	assert.Contains(t, body, "Log in")
}

func TestRenderProfileFollowButton(t *testing.T) {
	r := MustLoad()
	viewer := &responses.UserResponse{ID: 2, Username: "mia"}
	feed := responses.FeedResponse{
		Profile: &responses.ProfileResponse{User: responses.UserResponse{ID: 1, Username: "leo"}},
	}

	body := renderPage(t, r, "posts/profile.html", gin.H{"Data": feed, "Viewer": viewer})
	assert.Contains(t, body, "/profile/leo/follow/")
	assert.Contains(t, body, "Log out")

	feed.Profile.Following = true
	body = renderPage(t, r, "posts/profile.html", gin.H{"Data": feed, "Viewer": viewer})
	assert.Contains(t, body, "/profile/leo/unfollow/")

	body = renderPage(t, r, "posts/profile.html", gin.H{"Data": feed})
	assert.False(t, strings.Contains(body, "/profile/leo/unfollow/"))
}

func TestRenderFormErrors(t *testing.T) {
	r := MustLoad()
	form := responses.PostFormResponse{Groups: []responses.GroupResponse{{ID: 3, Title: "Cats"}}, Group: 3}

	body := renderPage(t, r, "posts/post_create.html", gin.H{
		"Data":   form,
		"Errors": map[string]string{"Required_text": "Text is required"},
	})
	assert.Contains(t, body, "Text is required")
	assert.Contains(t, body, `<option value="3" selected>Cats</option>`)
}

func TestUnknownPageFallsBackTo404(t *testing.T) {
	r := MustLoad()
	body := renderPage(t, r, "nope.html", gin.H{"Data": gin.H{"Path": "/nope/"}})
	assert.Contains(t, body, "/nope/")
}
