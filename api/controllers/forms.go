package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"Yatube/api/models"
	"Yatube/api/storage"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

// postForm accepts urlencoded, multipart and JSON bodies. The group is an id
// or empty.
type postForm struct {
	Text      string `form:"text" json:"text"`
	GroupRaw  string `form:"group" json:"-"`
	GroupJSON *uint  `form:"-" json:"group"`
}

type commentForm struct {
	Text string `form:"text" json:"text"`
}

type credentialsForm struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Next     string `form:"next" json:"next"`
}

type groupForm struct {
	Title       string `form:"title" json:"title"`
	Slug        string `form:"slug" json:"slug"`
	Description string `form:"description" json:"description"`
}

var errInvalidGroup = errors.New("invalid group")

func (f *postForm) groupID() (*uint, error) {
	if f.GroupJSON != nil {
		if *f.GroupJSON == 0 {
			return nil, nil
		}
		id := *f.GroupJSON
		return &id, nil
	}
	raw := strings.TrimSpace(f.GroupRaw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return nil, errInvalidGroup
	}
	id := uint(parsed)
	return &id, nil
}

func (f *postForm) selectedGroup() uint {
	id, err := f.groupID()
	if err != nil || id == nil {
		return 0
	}
	return *id
}

// validatePost fills post from the form and returns field errors. The image
// is checked but not stored.
func (server *Server) validatePost(c *gin.Context, form *postForm, post *models.Post) (*storage.Image, map[string]string, error) {
	post.Text = form.Text
	post.Prepare()
	errs := post.Validate()

	groupID, err := form.groupID()
	if err != nil {
		errs["Invalid_group"] = "Select a valid choice. That choice is not one of the available choices."
	} else if groupID != nil {
		if _, err := resolveGroupByID(server.DB.WithContext(c.Request.Context()), *groupID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, err
			}
			errs["Invalid_group"] = "Select a valid choice. That choice is not one of the available choices."
		}
	}
	post.GroupID = groupID

	if len(errs) > 0 {
		return nil, errs, nil
	}

	image, err := readImage(c)
	if errors.Is(err, storage.ErrNotImage) || errors.Is(err, storage.ErrTooLarge) {
		errs["Invalid_image"] = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
		return nil, errs, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return image, errs, nil
}

// readImage returns the optional "image" upload, or nil when none was sent.
func readImage(c *gin.Context) (*storage.Image, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, nil
	}
	header, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	if header.Size > storage.MaxImageSize {
		return nil, storage.ErrTooLarge
	}
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return storage.PrepareImage(f, header.Filename)
}
