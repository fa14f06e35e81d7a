package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/saulo-duarte/quizmaster/internal/apperror"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/config"
	util "github.com/saulo-duarte/quizmaster/internal/utils"
	"github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound       = apperror.NotFound("user not found")
	ErrEmailTaken         = apperror.Conflict("user with this email already exists")
	ErrInvalidCredentials = apperror.Unauthorized("invalid credentials")
	ErrOwnProfileOnly     = apperror.Forbidden("you can only access your own profile")
)

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GetProfile(ctx context.Context, id uint) (*UserResponse, error)
	UpdateProfile(ctx context.Context, id uint, req UpdateProfileRequest) (*UserResponse, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
	DeleteUser(ctx context.Context, id uint) error
	// EnsureBootstrapAdmin creates the first admin when none exists. It returns
	// the password only when one had to be generated.
	EnsureBootstrapAdmin(ctx context.Context, admin BootstrapAdmin) (string, error)
}

type userService struct {
	repo  UserRepository
	cache cache.Invalidator
}

func NewService(repo UserRepository, inv cache.Invalidator) UserService {
	return &userService{repo: repo, cache: inv}
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	log := config.WithContext(ctx)

	dob, err := util.ParseDatePtr(req.DOB)
	if err != nil {
		return nil, apperror.Validation("Invalid date format for dob. Use YYYY-MM-DD")
	}

	email := strings.TrimSpace(req.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, apperror.Internal("failed to register user", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal("failed to register user", err)
	}

	u := &User{
		Email:         email,
		PasswordHash:  hash,
		FullName:      req.FullName,
		Qualification: req.Qualification,
		DateOfBirth:   dob,
		Role:          auth.RoleUser,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		log.WithError(err).Error("Failed to create user")
		return nil, apperror.Internal("failed to register user", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagUsers, cache.TagStats)
	log.WithField("user_id", u.ID).Info("User registered")
	return toResponse(u), nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	log := config.WithContext(ctx)
	login := strings.TrimSpace(req.Email)

	u, err := s.repo.FindByEmail(ctx, login)
	switch {
	case err == nil:
		if !auth.CheckPassword(u.PasswordHash, req.Password) {
			return nil, ErrInvalidCredentials
		}
		return issueToken(u.ID, auth.RoleUser)
	case !errors.Is(err, ErrNotFound):
		return nil, apperror.Internal("failed to log in", err)
	}

	a, err := s.repo.FindAdminByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Debug("login attempt for unknown account")
			return nil, ErrInvalidCredentials
		}
		return nil, apperror.Internal("failed to log in", err)
	}
	if !auth.CheckPassword(a.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return issueToken(a.ID, auth.RoleAdmin)
}

func issueToken(id uint, role string) (*LoginResponse, error) {
	token, err := auth.GenerateJWT(id, role, config.App.JWTTTL)
	if err != nil {
		return nil, apperror.Internal("failed to issue token", err)
	}
	return &LoginResponse{AccessToken: token, Role: role, Message: "Login successful"}, nil
}

// checkOwner lets admins through and restricts users to their own id.
func checkOwner(ctx context.Context, id uint) error {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return apperror.Unauthorized("Missing Authorization Header")
	}
	if claims.Role == auth.RoleUser && claims.UserID != id {
		return ErrOwnProfileOnly
	}
	return nil
}

func (s *userService) GetProfile(ctx context.Context, id uint) (*UserResponse, error) {
	if err := checkOwner(ctx, id); err != nil {
		return nil, err
	}
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(u), nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uint, req UpdateProfileRequest) (*UserResponse, error) {
	log := config.WithContext(ctx)
	if err := checkOwner(ctx, id); err != nil {
		return nil, err
	}
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Qualification != nil {
		u.Qualification = *req.Qualification
	}
	if req.DOB != nil {
		dob, err := util.ParseDatePtr(*req.DOB)
		if err != nil {
			return nil, apperror.Validation("Invalid date format for dob. Use YYYY-MM-DD")
		}
		u.DateOfBirth = dob
	}

	if err := s.repo.Update(ctx, u); err != nil {
		log.WithError(err).Error("Failed to update user profile")
		return nil, apperror.Internal("failed to update profile", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagUsers)
	log.WithField("user_id", id).Info("User profile updated")
	return toResponse(u), nil
}

func (s *userService) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list users", err)
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *toResponse(&users[i]))
	}
	return out, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	log := config.WithContext(ctx)
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUserNotFound
		}
		log.WithError(err).Error("Failed to delete user")
		return apperror.Internal("failed to delete user", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagUsers, cache.TagScores, cache.TagStats)
	log.WithField("user_id", id).Info("User deleted")
	return nil
}

func (s *userService) EnsureBootstrapAdmin(ctx context.Context, admin BootstrapAdmin) (string, error) {
	log := config.WithContext(ctx)

	n, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return "", err
	}
	if n > 0 {
		return "", nil
	}

	password := admin.Password
	generated := ""
	if password == "" {
		generated, err = randomPassword()
		if err != nil {
			return "", err
		}
		password = generated
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	a := &Admin{Username: admin.Username, Email: admin.Email, PasswordHash: hash}
	if err := s.repo.CreateAdmin(ctx, a); err != nil {
		return "", err
	}

	log.WithFields(logrus.Fields{
		"admin_id": a.ID,
		"username": a.Username,
	}).Info("Bootstrap admin created")
	return generated, nil
}

func (s *userService) find(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperror.Internal("failed to load user", err)
	}
	return u, nil
}

func randomPassword() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func toResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Qualification: u.Qualification,
		DOB:           util.FormatDatePtr(u.DateOfBirth),
		Role:          u.Role,
	}
}
