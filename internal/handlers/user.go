package handlers

import (
	"errors"
	"log"
	"net/http"

	"blogpost/internal/forms"
	"blogpost/internal/services"
	"blogpost/internal/store"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users   *store.UserStore
	posts   *store.PostStore
	avatars *services.AvatarService
}

func NewUserHandler(users *store.UserStore, posts *store.PostStore, avatars *services.AvatarService) *UserHandler {
	return &UserHandler{users: users, posts: posts, avatars: avatars}
}

// ShowAccount renders the account page pre-filled with the current values.
func (h *UserHandler) ShowAccount(c *gin.Context) {
	user := currentUser(c)
	data := gin.H{"Title": "Account", "User": user}
	if c.Query("success") != "" {
		data["Success"] = "Your account has been updated!"
	}
	Render(c, http.StatusOK, "account.html", data)
}

// UpdateAccount handles username/email edits, an optional avatar upload and
// an optional password change in one submit.
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	user := currentUser(c)

	var form forms.AccountForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "account.html", gin.H{"Title": "Account", "User": user, "Error": "Invalid input"})
		return
	}
	if errs := form.Validate(); errs.Any() {
		Render(c, http.StatusBadRequest, "account.html", gin.H{"Title": "Account", "User": user, "Errors": errs, "Form": form})
		return
	}

	// The upload is validated and written before anything is committed, so
	// a rejected file leaves both the database and the avatar dir untouched.
	newAvatar := ""
	if fileHeader, err := c.FormFile("picture"); err == nil && fileHeader != nil {
		f, err := fileHeader.Open()
		if err != nil {
			Render(c, http.StatusBadRequest, "account.html", gin.H{"Title": "Account", "User": user, "Error": "Could not read uploaded file"})
			return
		}
		defer f.Close()

		newAvatar, err = h.avatars.Save(f, fileHeader.Filename)
		if err != nil {
			errs := forms.Errors{}
			if errors.Is(err, services.ErrInvalidFormat) {
				errs["Picture"] = "Only jpg, jpeg and png files are allowed."
			} else {
				errs["Picture"] = "Could not process the uploaded image."
			}
			Render(c, http.StatusBadRequest, "account.html", gin.H{"Title": "Account", "User": user, "Errors": errs, "Form": form})
			return
		}
	}

	if err := h.users.UpdateAccount(user, form.Username, form.Email); err != nil {
		errs := forms.Errors{}
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			errs["Username"] = "Username is taken. Please choose another one."
		case errors.Is(err, store.ErrDuplicateEmail):
			errs["Email"] = "Email is taken. Please choose another one."
		default:
			RenderError(c, http.StatusInternalServerError, "Could not update account.")
			return
		}
		Render(c, http.StatusBadRequest, "account.html", gin.H{"Title": "Account", "User": user, "Errors": errs, "Form": form})
		return
	}

	if newAvatar != "" {
		old, err := h.users.UpdateAvatar(user, newAvatar)
		if err != nil {
			// The commit failed; the freshly written file stays orphaned
			RenderError(c, http.StatusInternalServerError, "Could not update account.")
			return
		}
		if err := h.avatars.Remove(old); err != nil {
			log.Printf("Failed to remove old avatar %s: %v", old, err)
		}
	}

	if form.NewPassword != "" {
		if !h.users.VerifyPassword(user, form.OldPassword) {
			Render(c, http.StatusBadRequest, "account.html", gin.H{
				"Title":  "Account",
				"User":   user,
				"Errors": forms.Errors{"OldPassword": "Current password is incorrect."},
				"Form":   form,
			})
			return
		}
		if err := h.users.UpdatePassword(user, form.NewPassword); err != nil {
			RenderError(c, http.StatusInternalServerError, "Could not update account.")
			return
		}
	}

	c.Redirect(http.StatusFound, "/account?success=1")
}

// UserPosts is the public per-author feed at /user/:username.
func (h *UserHandler) UserPosts(c *gin.Context) {
	username := c.Param("username")

	author, err := h.users.FindByUsername(username)
	if err != nil {
		RenderError(c, http.StatusNotFound, "User not found.")
		return
	}

	feed, err := h.posts.ListByAuthor(author, pageParam(c))
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load posts.")
		return
	}

	Render(c, http.StatusOK, "user/posts.html", gin.H{
		"Title":  author.Username,
		"Author": author,
		"Page":   feed,
	})
}
