package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"Yatube/api/auth"
	"Yatube/api/models"
	"Yatube/api/responses"
	"Yatube/api/security"
	"Yatube/api/utils/formaterror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errBadCredentials = errors.New("incorrect username or password")

func wantsJSON(c *gin.Context) bool {
	return c.ContentType() == binding.MIMEJSON
}

func (server *Server) setSession(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, maxAge, "/", "", server.Config.IsProduction(), true)
}

// SignIn checks the credentials and returns the user with a fresh token.
func (server *Server) SignIn(username, password string) (*models.User, string, error) {
	user, err := (&models.User{}).FindUserByUsername(server.DB, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", errBadCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if err := security.VerifyPassword(user.Password, password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, "", errBadCredentials
		}
		return nil, "", err
	}
	token, err := auth.CreateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create token: %w", err)
	}
	return user, token, nil
}

func (server *Server) LoginForm(c *gin.Context) {
	server.respond(c, http.StatusOK, "users/login.html", responses.AuthFormResponse{Next: c.Query("next")}, nil)
}

// Login starts a session and follows next when it is a local path.
func (server *Server) Login(c *gin.Context) {
	var form credentialsForm
	_ = c.ShouldBind(&form)
	if form.Next == "" {
		form.Next = c.Query("next")
	}
	echo := responses.AuthFormResponse{Username: form.Username, Next: form.Next}

	user := models.User{Username: form.Username, Password: form.Password}
	user.Prepare()
	if errs := user.Validate("login"); len(errs) > 0 {
		server.respond(c, http.StatusOK, "users/login.html", echo, errs)
		return
	}

	signedIn, token, err := server.SignIn(user.Username, form.Password)
	if errors.Is(err, errBadCredentials) {
		server.respond(c, http.StatusOK, "users/login.html", echo, map[string]string{
			"Incorrect_details": "Please enter a correct username and password",
		})
		return
	}
	if err != nil {
		server.serverError(c, err)
		return
	}

	server.setSession(c, token, int(auth.TokenTTL.Seconds()))
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": gin.H{
			"token": token,
			"user":  userToResponse(signedIn),
		}})
		return
	}
	redirect(c, safeNext(form.Next))
}

func (server *Server) SignupForm(c *gin.Context) {
	server.respond(c, http.StatusOK, "users/signup.html", responses.AuthFormResponse{}, nil)
}

// Signup registers the user and signs them in.
func (server *Server) Signup(c *gin.Context) {
	var form credentialsForm
	_ = c.ShouldBind(&form)
	echo := responses.AuthFormResponse{Username: form.Username, Email: form.Email}

	user := models.User{Username: form.Username, Email: form.Email, Password: form.Password}
	user.Prepare()
	if errs := user.Validate(""); len(errs) > 0 {
		server.respond(c, http.StatusOK, "users/signup.html", echo, errs)
		return
	}

	created, err := user.SaveUser(server.DB.WithContext(c.Request.Context()))
	if err != nil {
		server.respond(c, http.StatusOK, "users/signup.html", echo, formaterror.FormatError(err.Error()))
		return
	}

	token, err := auth.CreateToken(created.ID)
	if err != nil {
		server.serverError(c, err)
		return
	}
	server.setSession(c, token, int(auth.TokenTTL.Seconds()))
	if wantsJSON(c) {
		c.JSON(http.StatusCreated, gin.H{"status": http.StatusCreated, "response": gin.H{
			"token": token,
			"user":  userToResponse(created),
		}})
		return
	}
	redirect(c, "/")
}

func (server *Server) Logout(c *gin.Context) {
	server.setSession(c, "", -1)
	redirect(c, "/")
}
