package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/ministryworks/dms-go/internal/api/middleware"
	"github.com/ministryworks/dms-go/internal/domain/user"
	"github.com/ministryworks/dms-go/internal/repository"
	"github.com/ministryworks/dms-go/pkg/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	Repos *repository.Repos
	store storage.Store
	audit *AuditService
}

func NewUserService(repos *repository.Repos, store storage.Store, audit *AuditService) *UserService {
	return &UserService{Repos: repos, store: store, audit: audit}
}

func (s *UserService) Register(input user.CreateUserDTO) (*user.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrPasswordHashFailure
	}

	// Self-registration never assigns a role; everyone starts as staff
	// and only an admin can promote via Update.
	u := &user.User{
		Email:         input.Email,
		Password:      string(hashed),
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Role:          string(user.RoleStaff),
		ProfileImage:  input.ProfileImage,
		ExpoPushToken: input.ExpoPushToken,
		IsActive:      true,
	}

	if err := s.Repos.User.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.audit.Record(u.UID, "register", "user", u.UID, nil, u.Email)
	return u, nil
}

// Login verifies the credentials and returns the user with a signed
// token. A wrong email and a wrong password are indistinguishable to
// the caller.
func (s *UserService) Login(email, password string) (*user.User, string, error) {
	u, err := s.Repos.User.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrIncorrectPassword
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, "", ErrIncorrectPassword
	}

	token, err := middleware.GenerateToken(u.UID, u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *UserService) Get(id uint) (*user.User, error) {
	u, err := s.Repos.User.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) List() ([]user.User, error) {
	return s.Repos.User.List()
}

// Update applies the non-nil patch fields. Changing the password
// requires the old password to match.
func (s *UserService) Update(actorID, id uint, input user.UpdateUserDTO) (*user.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Password != nil {
		if input.OldPassword == nil {
			return nil, ErrMissingOldPassword
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(*input.OldPassword)); err != nil {
			return nil, ErrIncorrectPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrPasswordHashFailure
		}
		u.Password = string(hashed)
	}

	if input.Email != nil {
		u.Email = *input.Email
	}
	if input.FirstName != nil {
		u.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		u.LastName = *input.LastName
	}
	if input.Role != nil {
		u.Role = *input.Role
	}
	if input.ProfileImage != nil {
		u.ProfileImage = input.ProfileImage
	}
	if input.ExpoPushToken != nil {
		u.ExpoPushToken = input.ExpoPushToken
	}

	if err := s.Repos.User.Update(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.audit.Record(actorID, "update", "user", u.UID, nil, u.Email)
	return u, nil
}

// UploadProfileImage stores the image and points the user's
// profile_image at the returned URL.
func (s *UserService) UploadProfileImage(ctx context.Context, actorID, id uint, file FileUpload) (*user.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	url, err := s.store.Upload(ctx, file.Reader, file.Size, file.Name, "profiles", file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUploadFailed, err)
	}

	u.ProfileImage = &url
	if err := s.Repos.User.Update(u); err != nil {
		return nil, err
	}

	s.audit.Record(actorID, "upload_profile", "user", u.UID, nil, url)
	return u, nil
}

func (s *UserService) Delete(actorID, id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.Repos.User.Delete(id); err != nil {
		return err
	}
	s.audit.Record(actorID, "delete", "user", id, nil, nil)
	return nil
}
