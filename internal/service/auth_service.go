package service

import (
	"context"
	"strings"

	"github.com/alumnet/reunion/internal/config"
	"github.com/alumnet/reunion/internal/entity"
	"github.com/alumnet/reunion/internal/repository"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/alumnet/reunion/pkg/jwt"
	"github.com/google/uuid"
	"github.com/mbeoliero/kit/log"
	"golang.org/x/crypto/bcrypt"
)

// SessionKicker closes a user's live websocket connections
type SessionKicker interface {
	KickUser(userId string)
}

// AuthService handles authentication logic
type AuthService struct {
	userRepo    *repository.UserRepo
	profileRepo *repository.ProfileRepo
	roleRepo    *repository.RoleRepo
	cfg         *config.Config
	tokenStore  *jwt.TokenStore
	kicker      SessionKicker
}

// NewAuthService creates a new AuthService
func NewAuthService(repos *repository.Repositories, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:    repos.User,
		profileRepo: repos.Profile,
		roleRepo:    repos.Role,
		cfg:         cfg,
		tokenStore:  jwt.NewTokenStore(repos.Redis, cfg.JWT.ExpireHours),
	}
}

// RegisterRequest represents user registration request
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

// LoginRequest represents user login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login or registration
type LoginResponse struct {
	Token  string       `json:"token"`
	UserId string       `json:"user_id"`
	Email  string       `json:"email"`
	Role   string       `json:"role"`
	Name   string       `json:"display_name"`
	User   *entity.User `json:"-"`
}

// Register registers a new account. The display name is held as a
// pending name and materialized into a profile on first login.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") || req.Password == "" {
		return nil, errcode.ErrInvalidParam
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		log.CtxError(ctx, "check email exists failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if exists {
		return nil, errcode.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.CtxError(ctx, "hash password failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	user := &entity.User{
		Id:          uuid.New().String(),
		Email:       email,
		Password:    string(hashedPassword),
		PendingName: strings.TrimSpace(req.DisplayName),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		log.CtxError(ctx, "create user failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	log.CtxInfo(ctx, "user registered: user_id=%s", user.Id)
	return s.issueSession(ctx, user)
}

// Login authenticates an account by email and password
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, errcode.ErrInvalidParam
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.CtxError(ctx, "get user by email failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if user == nil {
		return nil, errcode.ErrLoginFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errcode.ErrLoginFailed
	}

	log.CtxInfo(ctx, "user logged in: user_id=%s", user.Id)
	return s.issueSession(ctx, user)
}

// SetKicker sets the websocket session kicker
func (s *AuthService) SetKicker(kicker SessionKicker) {
	s.kicker = kicker
}

// Logout revokes the presented token
func (s *AuthService) Logout(ctx context.Context, userId, token string) error {
	return s.tokenStore.RevokeToken(ctx, userId, token)
}

// LogoutAll revokes every token the user holds and drops their live
// websocket connections, so stolen or stale sessions die immediately.
func (s *AuthService) LogoutAll(ctx context.Context, userId string) error {
	if err := s.tokenStore.RevokeAll(ctx, userId); err != nil {
		log.CtxError(ctx, "revoke all tokens failed: %v", err)
		return errcode.ErrInternalServer
	}
	if s.kicker != nil {
		s.kicker.KickUser(userId)
	}
	log.CtxInfo(ctx, "all sessions revoked: user_id=%s", userId)
	return nil
}

// VerifyToken checks the token signature and its redis status
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.ParseToken(token, s.cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	status, err := s.tokenStore.GetTokenStatus(ctx, claims.UserId, token)
	if err != nil {
		log.CtxError(ctx, "get token status failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if status != jwt.TokenStatusNormal {
		return nil, errcode.ErrTokenInvalid
	}
	return claims, nil
}

// issueSession ensures the profile exists, resolves the effective role
// and mints a token.
func (s *AuthService) issueSession(ctx context.Context, user *entity.User) (*LoginResponse, error) {
	profile, err := s.ensureProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	roles, err := s.roleRepo.GetRoles(ctx, user.Id)
	if err != nil {
		log.CtxError(ctx, "get roles failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	role := entity.ResolveRole(roles)

	token, err := jwt.GenerateToken(user.Id, role, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		log.CtxError(ctx, "generate token failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if err := s.tokenStore.StoreToken(ctx, user.Id, token); err != nil {
		log.CtxError(ctx, "store token failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	return &LoginResponse{
		Token:  token,
		UserId: user.Id,
		Email:  user.Email,
		Role:   role,
		Name:   profile.DisplayName,
		User:   user,
	}, nil
}

// ensureProfile creates the profile lazily on first session
func (s *AuthService) ensureProfile(ctx context.Context, user *entity.User) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByUserId(ctx, user.Id)
	if err != nil {
		log.CtxError(ctx, "get profile failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if profile != nil {
		return profile, nil
	}

	profile = &entity.Profile{
		UserId:      user.Id,
		DisplayName: entity.SeedDisplayName(user.PendingName, user.Email),
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		// Lost a race with a concurrent session; read the winner's row.
		existing, getErr := s.profileRepo.GetByUserId(ctx, user.Id)
		if getErr == nil && existing != nil {
			return existing, nil
		}
		log.CtxError(ctx, "create profile failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return profile, nil
}
