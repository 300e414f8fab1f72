package models

import (
	"html"
	"regexp"
	"strings"
	"time"

	"Yatube/api/security"

	"github.com/badoux/checkmail"
	"gorm.io/gorm"
)

type User struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Username  string    `gorm:"size:150;not null;unique" json:"username"`
	Email     string    `gorm:"size:100;not null;unique" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"password"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func (u *User) HashPassword() error {
	hashedPassword, err := security.Hash(u.Password)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) Prepare() {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = html.EscapeString(strings.ToLower(strings.TrimSpace(u.Email)))
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
}

func (u *User) Validate(action string) map[string]string {
	var errorMessages = make(map[string]string)

	switch strings.ToLower(action) {
	case "login":
		if u.Username == "" {
			errorMessages["Required_username"] = "Required Username"
		}
		if u.Password == "" {
			errorMessages["Required_password"] = "Required Password"
		}
	default:
		if u.Username == "" {
			errorMessages["Required_username"] = "Required Username"
		} else if len(u.Username) > 150 || !usernamePattern.MatchString(u.Username) {
			errorMessages["Invalid_username"] = "Username may contain only letters, digits and @/./+/-/_"
		}
		if u.Password == "" {
			errorMessages["Required_password"] = "Required Password"
		} else if len(u.Password) < 6 {
			errorMessages["Invalid_password"] = "Password should be at least 6 characters"
		}
		if u.Email == "" {
			errorMessages["Required_email"] = "Required Email"
		} else if err := checkmail.ValidateFormat(u.Email); err != nil {
			errorMessages["Invalid_email"] = "Invalid Email"
		}
	}
	return errorMessages
}

// SaveUser hashes the plain password and inserts the user.
func (u *User) SaveUser(db *gorm.DB) (*User, error) {
	if err := u.HashPassword(); err != nil {
		return nil, err
	}
	if err := db.Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) FindUserByID(db *gorm.DB, uid uint) (*User, error) {
	var user User
	if err := db.Where("id = ?", uid).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *User) FindUserByUsername(db *gorm.DB, username string) (*User, error) {
	var user User
	if err := db.Where("username = ?", strings.TrimSpace(username)).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteAUser removes the user together with their posts, comments and
// follow edges. Comments left by other users under the removed posts stay,
// detached from any post.
func (u *User) DeleteAUser(db *gorm.DB, uid uint) (int64, error) {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		authored := tx.Model(&Post{}).Select("id").Where("author_id = ?", uid)
		if err := tx.Model(&Comment{}).Where("post_id IN (?)", authored).
			Update("post_id", nil).Error; err != nil {
			return err
		}
		if _, err := (&Comment{}).DeleteUserComments(tx, uid); err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", uid).Delete(&Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR author_id = ?", uid, uid).Delete(&Follow{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", uid).Delete(&User{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
