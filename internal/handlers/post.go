package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"blogpost/internal/forms"
	"blogpost/internal/store"
	"blogpost/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts *store.PostStore
	cache *utils.Cache
}

func NewPostHandler(posts *store.PostStore, cache *utils.Cache) *PostHandler {
	return &PostHandler{posts: posts, cache: cache}
}

func postIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// invalidateFeed drops the cached first feed page after any mutation; the
// TTL covers deeper pages.
func (h *PostHandler) invalidateFeed() {
	h.cache.Delete("feed:page:1")
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "post/create.html", gin.H{"Title": "New Post", "Legend": "New Post"})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var form forms.PostForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "post/create.html", gin.H{"Title": "New Post", "Legend": "New Post", "Error": "Invalid input"})
		return
	}
	if errs := form.Validate(); errs.Any() {
		Render(c, http.StatusBadRequest, "post/create.html", gin.H{"Title": "New Post", "Legend": "New Post", "Errors": errs, "Form": form})
		return
	}

	post, err := h.posts.Create(user, form.Title, form.Content)
	if err != nil {
		Render(c, http.StatusInternalServerError, "post/create.html", gin.H{"Title": "New Post", "Legend": "New Post", "Error": "Could not create post", "Form": form})
		return
	}

	h.invalidateFeed()
	c.Redirect(http.StatusFound, "/post/"+strconv.FormatUint(uint64(post.ID), 10))
}

func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return
	}

	Render(c, http.StatusOK, "post/detail.html", gin.H{
		"Title":       post.Title,
		"Post":        post,
		"PostContent": utils.RenderMarkdown(post.Content),
	})
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := currentUser(c)

	id, ok := postIDParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return
	}
	post, err := h.posts.Get(id)
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return
	}
	if post.UserID != user.ID {
		RenderError(c, http.StatusForbidden, "You cannot edit this post.")
		return
	}

	Render(c, http.StatusOK, "post/edit.html", gin.H{
		"Title":  "Update Post",
		"Legend": "Update Post",
		"Post":   post,
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	user := currentUser(c)

	id, ok := postIDParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return
	}

	var form forms.PostForm
	if err := c.ShouldBind(&form); err != nil {
		RenderError(c, http.StatusBadRequest, "Invalid input.")
		return
	}
	if errs := form.Validate(); errs.Any() {
		post, err := h.posts.Get(id)
		if err != nil {
			RenderError(c, http.StatusNotFound, "Post not found.")
			return
		}
		Render(c, http.StatusBadRequest, "post/edit.html", gin.H{
			"Title":  "Update Post",
			"Legend": "Update Post",
			"Post":   post,
			"Errors": errs,
			"Form":   form,
		})
		return
	}

	_, err := h.posts.Update(id, user, form.Title, form.Content)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			RenderError(c, http.StatusNotFound, "Post not found.")
		case errors.Is(err, store.ErrForbidden):
			RenderError(c, http.StatusForbidden, "You cannot edit this post.")
		default:
			RenderError(c, http.StatusInternalServerError, "Could not update post.")
		}
		return
	}

	h.invalidateFeed()
	c.Redirect(http.StatusFound, "/post/"+c.Param("id"))
}

func (h *PostHandler) Delete(c *gin.Context) {
	user := currentUser(c)

	id, ok := postIDParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return
	}

	if err := h.posts.Delete(id, user); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			RenderError(c, http.StatusNotFound, "Post not found.")
		case errors.Is(err, store.ErrForbidden):
			RenderError(c, http.StatusForbidden, "You cannot delete this post.")
		default:
			RenderError(c, http.StatusInternalServerError, "Could not delete post.")
		}
		return
	}

	h.invalidateFeed()
	c.Redirect(http.StatusFound, "/home")
}
