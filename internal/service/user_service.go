package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/bookmarks/config"
	"github.com/d60-Lab/bookmarks/internal/model"
	"github.com/d60-Lab/bookmarks/internal/repository"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email address is already in use")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
)

// ProfileUpdate 资料部分更新，nil 字段不修改
type ProfileUpdate struct {
	Email       *string    `json:"email"`
	Bio         *string    `json:"bio"`
	Location    *string    `json:"location"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	PhotoURL    *string    `json:"photo_url"`
}

// UserPage 用户列表分页结果
type UserPage struct {
	Items    []*model.User `json:"items"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// UserService 账户服务
type UserService interface {
	// Register creates the account and records the account-created action.
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	// Authenticate verifies the password and returns a signed JWT.
	Authenticate(ctx context.Context, username, password string) (string, *model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, upd *ProfileUpdate) (*model.User, error)
	ListActive(ctx context.Context, page, pageSize int) (*UserPage, error)
}

type userService struct {
	userRepo repository.UserRepository
	actions  ActionService
	authCfg  config.AuthConfig
}

func NewUserService(userRepo repository.UserRepository, actions ActionService, authCfg config.AuthConfig) UserService {
	return &userService{userRepo: userRepo, actions: actions, authCfg: authCfg}
}

func (s *userService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if taken, err := s.userRepo.UsernameExists(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.userRepo.EmailExists(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	if _, err := s.actions.Record(ctx, u.ID, VerbCreatedAccount, Target{}); err != nil {
		return u, err
	}
	return u, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (string, *model.User, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.authCfg.TokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.authCfg.JWTSecret))
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, upd *ProfileUpdate) (*model.User, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.Email != nil && *upd.Email != u.Email {
		if taken, err := s.userRepo.EmailExists(ctx, *upd.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrEmailTaken
		}
		u.Email = *upd.Email
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Location != nil {
		u.Location = *upd.Location
	}
	if upd.DateOfBirth != nil {
		u.DateOfBirth = upd.DateOfBirth
	}
	if upd.PhotoURL != nil {
		u.PhotoURL = *upd.PhotoURL
	}
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) ListActive(ctx context.Context, page, pageSize int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 12
	}
	items, total, err := s.userRepo.ListActive(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return &UserPage{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}
