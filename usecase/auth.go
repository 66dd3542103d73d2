package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"notemark/apperr"
	"notemark/dto"
	"notemark/logger"
	"notemark/model"
	"notemark/repository"
	"notemark/services"
	"notemark/utils"
)

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, stored string) bool
}

type TokenService interface {
	Issue(userID string) (string, error)
	Verify(token string, now time.Time) (services.Claims, bool)
}

type AuthService struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenService
	now    func() time.Time
}

func NewAuthService(users repository.UserRepository, hasher PasswordHasher, tokens TokenService) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

type AuthResult struct {
	User  model.Identity
	Token string
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		return AuthResult{}, apperr.BadRequest("Name is required")
	}
	if email == "" {
		return AuthResult{}, apperr.BadRequest("Email is required")
	}

	// users.Create enforces uniqueness; this only skips hashing for a
	// known email.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		utils.TrackAuthAttempt("failure", "register")
		return AuthResult{}, apperr.BadRequest("User already exists with this email")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return AuthResult{}, err
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return AuthResult{}, apperr.Internal("failed to hash password", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		utils.TrackAuthAttempt("failure", "register")
		return AuthResult{}, err
	}

	token, err := s.tokens.Issue(user.UserID)
	if err != nil {
		return AuthResult{}, apperr.Internal("failed to generate token", err)
	}

	utils.TrackAuthAttempt("success", "register")
	logger.Info(ctx, "user registered", slog.String("user_id", user.UserID))

	return AuthResult{User: user.Identity(), Token: token}, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if apperr.Is(err, apperr.KindNotFound) {
		utils.TrackAuthAttempt("failure", "login")
		return AuthResult{}, apperr.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return AuthResult{}, err
	}

	if !s.hasher.VerifyPassword(req.Password, user.Password) {
		utils.TrackAuthAttempt("failure", "login")
		return AuthResult{}, apperr.Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.Issue(user.UserID)
	if err != nil {
		return AuthResult{}, apperr.Internal("failed to generate token", err)
	}

	utils.TrackAuthAttempt("success", "login")
	return AuthResult{User: user.Identity(), Token: token}, nil
}

// Authenticate resolves a bearer token to the identity of a user that
// still exists.
func (s *AuthService) Authenticate(ctx context.Context, token string) (model.Identity, error) {
	claims, ok := s.tokens.Verify(token, s.now())
	if !ok {
		utils.TrackAuthAttempt("failure", "token")
		return model.Identity{}, apperr.Unauthorized("Not authorized - invalid or expired token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if apperr.Is(err, apperr.KindNotFound) {
		utils.TrackAuthAttempt("failure", "token")
		return model.Identity{}, apperr.Unauthorized("Not authorized - user not found")
	}
	if err != nil {
		return model.Identity{}, err
	}

	return user.Identity(), nil
}
