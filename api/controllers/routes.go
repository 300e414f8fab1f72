package controllers

import (
	"Yatube/api/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initializeRoutes() {
	s.Router.GET("/healthz", s.Healthz)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Feeds
	s.Router.GET("/", middlewares.CachePage(s.Config.PageCacheTTL), s.Index)
	s.Router.GET("/group/:slug/", s.GroupPosts)
	s.Router.GET("/profile/:username/", s.Profile)
	s.Router.GET("/posts/:id/", s.PostDetail)

	gated := s.Router.Group("/")
	gated.Use(middlewares.LoginRequired())
	{
		gated.GET("/follow/", s.FollowIndex)

		gated.GET("/create/", s.CreatePostForm)
		gated.POST("/create/", s.CreatePost)
		gated.GET("/posts/:id/edit/", s.EditPostForm)
		gated.POST("/posts/:id/edit/", s.EditPost)
		gated.POST("/posts/:id/delete/", s.DeletePost)
		gated.POST("/posts/:id/comment/", s.AddComment)

		gated.GET("/profile/:username/follow/", s.ProfileFollow)
		gated.GET("/profile/:username/unfollow/", s.ProfileUnfollow)
	}

	// Session
	authRoutes := s.Router.Group("/auth")
	{
		authRoutes.GET("/signup/", s.SignupForm)
		authRoutes.POST("/signup/", middlewares.LoginRateLimitMiddleware(), s.Signup)
		authRoutes.GET("/login/", s.LoginForm)
		authRoutes.POST("/login/", middlewares.LoginRateLimitMiddleware(), s.Login)
		authRoutes.GET("/logout/", s.Logout)
	}

	admin := s.Router.Group("/admin")
	admin.Use(middlewares.AdminOnlyMiddleware())
	{
		admin.GET("/groups/", s.ListGroups)
		admin.POST("/groups/", s.CreateGroup)
		admin.POST("/groups/:slug/delete/", s.DeleteGroup)
		admin.POST("/users/:username/delete/", s.DeleteUser)
	}

	s.Router.NoRoute(s.NotFound)
}
