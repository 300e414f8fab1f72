package api

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"Yatube/api/cache"
	"Yatube/api/controllers"
	"Yatube/api/models"
	"Yatube/api/utils/formaterror"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage post groups",
}

var (
	groupTitle       string
	groupDescription string
)

var groupsCreateCmd = &cobra.Command{
	Use:   "create <slug>",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		group := models.Group{Title: groupTitle, Slug: args[0], Description: groupDescription}
		group.Prepare()
		if errs := group.Validate(); len(errs) > 0 {
			return validationError(errs)
		}
		created, err := group.SaveGroup(db.WithContext(cmd.Context()))
		if err != nil {
			return validationError(formaterror.FormatError(err.Error()))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created group %q (/group/%s/)\n", created.Title, created.Slug)
		return nil
	},
}

var groupsDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a group; its posts are kept without a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		db = db.WithContext(cmd.Context())
		group, err := (&models.Group{}).FindGroupBySlug(db, args[0])
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("group %q not found", args[0])
		}
		if err != nil {
			return err
		}
		connectCache()
		if err := controllers.RemoveGroup(cmd.Context(), db, group); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted group %q\n", group.Slug)
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts",
}

var (
	userEmail    string
	userPassword string
	userAdmin    bool
)

var usersCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := userPassword
		if password == "" {
			read, err := readPassword()
			if err != nil {
				return err
			}
			password = read
		}

		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		user := models.User{Username: args[0], Email: userEmail, Password: password, IsAdmin: userAdmin}
		user.Prepare()
		if errs := user.Validate(""); len(errs) > 0 {
			return validationError(errs)
		}
		if _, err := user.SaveUser(db.WithContext(cmd.Context())); err != nil {
			return validationError(formaterror.FormatError(err.Error()))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created user %q\n", user.Username)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete an account with its posts, comments and follows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		db = db.WithContext(cmd.Context())
		user, err := (&models.User{}).FindUserByUsername(db, args[0])
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %q not found", args[0])
		}
		if err != nil {
			return err
		}
		images, err := controllers.NewImageStore(cmd.Context(), cfg.Media)
		if err != nil {
			return err
		}
		connectCache()
		if err := controllers.RemoveUser(cmd.Context(), db, images, user); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted user %q\n", user.Username)
		return nil
	},
}

func init() {
	groupsCreateCmd.Flags().StringVar(&groupTitle, "title", "", "group title")
	groupsCreateCmd.Flags().StringVar(&groupDescription, "description", "", "group description")
	groupsCmd.AddCommand(groupsCreateCmd, groupsDeleteCmd)

	usersCreateCmd.Flags().StringVar(&userEmail, "email", "", "email address")
	usersCreateCmd.Flags().StringVar(&userPassword, "password", "", "password (prompted when empty)")
	usersCreateCmd.Flags().BoolVar(&userAdmin, "admin", false, "grant administrator rights")
	usersCmd.AddCommand(usersCreateCmd, usersDeleteCmd)
}

// connectCache lets deletions drop cached pages; without redis they expire
// with their TTL.
func connectCache() {
	if err := cache.Init(cfg); err != nil {
		slog.Warn("cache: redis unavailable, cached pages expire with their TTL", "error", err)
	}
}

func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal to read the password from; pass --password")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func validationError(errs map[string]string) error {
	msgs := make([]string, 0, len(errs))
	for _, msg := range errs {
		msgs = append(msgs, msg)
	}
	return errors.New(strings.Join(msgs, "; "))
}
