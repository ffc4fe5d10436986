package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/ws"
	"ads-inventory-ws/pkg/jwt"
	"ads-inventory-ws/pkg/logger"
	"ads-inventory-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest, meta SessionMeta) (*LoginResponse, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	Authenticate(ctx context.Context, token string) (*Principal, error)
	ChangePassword(ctx context.Context, p *Principal, req *ChangePasswordRequest) error
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// SessionMeta is recorded on the session row for auditing.
type SessionMeta struct {
	IP        string
	UserAgent string
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// Principal is the authenticated caller of a request.
type Principal struct {
	User      *model.User
	SessionID uuid.UUID
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	secret      []byte
	ttl         time.Duration
	wsHub       *ws.Hub
	log         *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, secret string, ttl time.Duration, hub *ws.Hub, log *logger.Logger) AuthService {
	if log == nil {
		log = logger.Nop()
	}
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		secret:      []byte(secret),
		ttl:         ttl,
		wsHub:       hub,
		log:         log,
	}
}

func (s *authService) Login(ctx context.Context, req *LoginRequest, meta SessionMeta) (*LoginResponse, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}

	// 1. Find user by username
	user, err := s.userRepo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(req.Username)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password before revealing account state
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Server-side session with a fixed expiry
	now := clock().UTC()
	session := &model.Session{
		UserID:    user.ID,
		ExpiresAt: now.Add(s.ttl),
		IP:        meta.IP,
		UserAgent: truncate(meta.UserAgent, 255),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	// 4. Token carries the session id as jti
	token, err := jwt.GenerateToken(s.secret, session.ID.String(), user.ID, user.Username, string(user.Role), session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	s.wsHub.Publish(ws.Event{
		Type:   "user_status_update",
		Action: "online",
		Data:   map[string]string{"user_id": user.ID.String(), "username": user.Username},
	})

	return &LoginResponse{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.wsHub.Publish(ws.Event{
		Type:   "user_status_update",
		Action: "offline",
		Data:   map[string]string{"user_id": session.UserID.String()},
	})
	return nil
}

// Authenticate checks the token signature, the session row, its expiry and the user's active flag.
func (s *authService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := jwt.ValidateToken(s.secret, token)
	if err != nil {
		return nil, &kindError{kind: ErrUnauthorized, msg: err.Error()}
	}
	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, ErrSessionExpired
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	if session.Expired(clock()) {
		if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
			s.log.Error(s.log.WithField(ctx, "session_id", session.ID.String()), "expired session cleanup failed", err)
		}
		return nil, ErrSessionExpired
	}
	if session.UserID != claims.UserID {
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return &Principal{User: user, SessionID: session.ID}, nil
}

// ChangePassword keeps the caller's session and revokes all others.
func (s *authService) ChangePassword(ctx context.Context, p *Principal, req *ChangePasswordRequest) error {
	if msg := validator.FirstError(req); msg != "" {
		return validationError(msg)
	}
	if !p.User.CheckPassword(req.OldPassword) {
		return ErrWrongPassword
	}
	if err := p.User.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, p.User.ID, p.User.Password); err != nil {
		return err
	}
	return s.sessionRepo.DeleteByUserExcept(ctx, p.User.ID, p.SessionID)
}

func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, clock().UTC())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
