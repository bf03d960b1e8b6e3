package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"blogpost/internal/store"
	"blogpost/internal/utils"

	"github.com/gin-gonic/gin"
)

const feedCacheTTL = 1 * time.Minute

type PageHandler struct {
	posts *store.PostStore
	cache *utils.Cache
}

func NewPageHandler(posts *store.PostStore, cache *utils.Cache) *PageHandler {
	return &PageHandler{posts: posts, cache: cache}
}

// pageParam reads ?page=N, defaulting to 1.
func pageParam(c *gin.Context) int {
	if p := c.Query("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

// Home is the public paginated feed, newest posts first.
func (h *PageHandler) Home(c *gin.Context) {
	page := pageParam(c)

	// Only the immutable page of posts is cached; the render map is
	// built per request so it never crosses goroutines.
	cacheKey := fmt.Sprintf("feed:page:%d", page)
	feed, ok := h.cache.Get(cacheKey).(*store.Page)
	if !ok {
		var err error
		feed, err = h.posts.ListAll(page)
		if err != nil {
			RenderError(c, http.StatusInternalServerError, "Could not load posts.")
			return
		}
		h.cache.Set(cacheKey, feed, feedCacheTTL)
	}

	Render(c, http.StatusOK, "home.html", gin.H{
		"Title": "Home",
		"Page":  feed,
	})
}

func (h *PageHandler) About(c *gin.Context) {
	Render(c, http.StatusOK, "about.html", gin.H{"Title": "About"})
}
