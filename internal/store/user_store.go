package store

import (
	"errors"

	"blogpost/internal/models"
	"blogpost/internal/utils"

	"gorm.io/gorm"
)

// UserStore is the credential store: it owns identity lookup, password
// hashing and the username/email uniqueness invariant.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create registers a new account. Both uniqueness checks run before the
// insert; the password is hashed before anything touches the database.
func (s *UserStore) Create(username, email, password string) (*models.User, error) {
	if taken, err := s.usernameTaken(username, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrDuplicateUsername
	}
	if taken, err := s.emailTaken(email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrDuplicateEmail
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:  username,
		Email:     email,
		Password:  hash,
		ImageFile: models.DefaultAvatar,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func (s *UserStore) VerifyPassword(user *models.User, password string) bool {
	return utils.CheckPasswordHash(password, user.Password)
}

// UpdateAccount changes username and email, re-checking uniqueness against
// every other account.
func (s *UserStore) UpdateAccount(user *models.User, username, email string) error {
	if username != user.Username {
		if taken, err := s.usernameTaken(username, user.ID); err != nil {
			return err
		} else if taken {
			return ErrDuplicateUsername
		}
	}
	if email != user.Email {
		if taken, err := s.emailTaken(email, user.ID); err != nil {
			return err
		} else if taken {
			return ErrDuplicateEmail
		}
	}

	if err := s.db.Model(user).Updates(map[string]interface{}{
		"username": username,
		"email":    email,
	}).Error; err != nil {
		return err
	}
	user.Username = username
	user.Email = email
	return nil
}

// UpdatePassword hashes and stores a new password.
func (s *UserStore) UpdatePassword(user *models.User, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.db.Model(user).Update("password", hash).Error; err != nil {
		return err
	}
	user.Password = hash
	return nil
}

// UpdateAvatar points the account at a new stored avatar filename and
// returns the previous one so the caller can clean it up.
func (s *UserStore) UpdateAvatar(user *models.User, filename string) (string, error) {
	old := user.ImageFile
	if err := s.db.Model(user).Update("image_file", filename).Error; err != nil {
		return "", err
	}
	user.ImageFile = filename
	return old, nil
}

func (s *UserStore) usernameTaken(username string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (s *UserStore) emailTaken(email string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}
