package store

import (
	"errors"
	"math"
	"time"

	"blogpost/internal/models"

	"gorm.io/gorm"
)

// PerPage is the fixed feed page size.
const PerPage = 5

// Page is one slice of the reverse-chronological feed. Pages are 1-based;
// a page past the end comes back with an empty Posts slice.
type Page struct {
	Posts      []models.Post
	Number     int
	TotalPages int
	Total      int64
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// Create persists a new post for the author. DatePosted is fixed here, in
// UTC, and never changes afterwards.
func (s *PostStore) Create(author *models.User, title, content string) (*models.Post, error) {
	post := models.Post{
		Title:      title,
		Content:    content,
		DatePosted: time.Now().UTC(),
		UserID:     author.ID,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	post.User = *author
	return &post, nil
}

func (s *PostStore) Get(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Update replaces title and content. The ownership check runs here on every
// call, regardless of how the post was looked up.
func (s *PostStore) Update(id uint, actingUser *models.User, title, content string) (*models.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if post.UserID != actingUser.ID {
		return nil, ErrForbidden
	}

	if err := s.db.Model(post).Updates(map[string]interface{}{
		"title":   title,
		"content": content,
	}).Error; err != nil {
		return nil, err
	}
	post.Title = title
	post.Content = content
	return post, nil
}

// Delete removes a post permanently, same ownership rule as Update.
func (s *PostStore) Delete(id uint, actingUser *models.User) error {
	post, err := s.Get(id)
	if err != nil {
		return err
	}
	if post.UserID != actingUser.ID {
		return ErrForbidden
	}
	return s.db.Unscoped().Delete(post).Error
}

// ListAll returns one page of the global feed, newest first.
func (s *PostStore) ListAll(page int) (*Page, error) {
	return s.list(0, page)
}

// ListByAuthor returns one page of a single author's posts, newest first.
func (s *PostStore) ListByAuthor(author *models.User, page int) (*Page, error) {
	return s.list(author.ID, page)
}

func (s *PostStore) list(authorID uint, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	countQuery := s.db.Model(&models.Post{})
	if authorID != 0 {
		countQuery = countQuery.Where("user_id = ?", authorID)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}
	totalPages := int(math.Ceil(float64(total) / float64(PerPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	query := s.db.Preload("User")
	if authorID != 0 {
		query = query.Where("user_id = ?", authorID)
	}
	var posts []models.Post
	// id DESC tie-break keeps the order deterministic for equal timestamps
	err := query.
		Order("date_posted DESC, id DESC").
		Limit(PerPage).
		Offset((page - 1) * PerPage).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &Page{
		Posts:      posts,
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}
