package services

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/KingGimer44/VideoJuego/common/errors"
	"github.com/KingGimer44/VideoJuego/models"
	awspkg "github.com/KingGimer44/VideoJuego/pkg/aws"
	"github.com/KingGimer44/VideoJuego/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MsgRegisterFieldsReq  = "Nombre, email y contraseña son requeridos"
	MsgLoginFieldsReq     = "Email y contraseña son requeridos"
	MsgUserExists         = "El usuario ya existe"
	MsgInvalidCredentials = "Credenciales inválidas"
	MsgUserCreated        = "Usuario creado exitosamente"
	MsgLoginOK            = "Login exitoso"
)

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, *apperrors.Error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, *apperrors.Error)
}

// AuthOptions toggles login hardening.
type AuthOptions struct {
	// VerifyPassword makes login compare the password. When false any
	// password is accepted for a known email.
	VerifyPassword bool
}

type authServiceImpl struct {
	users   repository.UserRepository
	hasher  PasswordHasher
	tokens  TokenIssuer
	events  *EventPublisher
	metrics MetricsRecorder
	opts    AuthOptions
	logger  *zap.Logger
	newID   func() string
}

// NewAuthService creates an AuthService. tokens, events and metrics may be nil.
func NewAuthService(
	users repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	events *EventPublisher,
	metrics MetricsRecorder,
	opts AuthOptions,
	logger *zap.Logger,
) AuthService {
	if hasher == nil {
		hasher = PlainHasher{}
	}
	return &authServiceImpl{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		events:  events,
		metrics: metrics,
		opts:    opts,
		logger:  logger,
		newID:   uuid.NewString,
	}
}

// NormalizeEmail trims and lowercases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. A taken email is a 409 whether it is caught
// by the lookup or by the store's unique index.
func (s *authServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, *apperrors.Error) {
	name := strings.TrimSpace(req.Name)
	email := NormalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, apperrors.Validation(MsgRegisterFieldsReq)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check email", zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.Conflict(MsgUserExists)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.Conflict(MsgUserExists)
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	s.events.Publish(ctx, models.EventUserRegistered, models.UserRegisteredEvent{
		EventType: models.EventUserRegistered,
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now().UTC(),
	})
	recordAsync(s.metrics, awspkg.MetricUsersRegistered)

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return &models.AuthResponse{User: user.Response(), Message: MsgUserCreated}, nil
}

// Login authenticates by email, and by password when VerifyPassword is set.
func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, *apperrors.Error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperrors.Validation(MsgLoginFieldsReq)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			recordAsync(s.metrics, awspkg.MetricLoginFailures)
			return nil, apperrors.Unauthorized(MsgInvalidCredentials)
		}
		s.logger.Error("Failed to find user", zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	if s.opts.VerifyPassword && !s.hasher.Compare(user.PasswordHash, req.Password) {
		recordAsync(s.metrics, awspkg.MetricLoginFailures)
		return nil, apperrors.Unauthorized(MsgInvalidCredentials)
	}

	resp := &models.AuthResponse{User: user.Response(), Message: MsgLoginOK}
	if s.tokens != nil {
		token, err := s.tokens.Issue(user)
		if err != nil {
			s.logger.Error("Failed to issue token", zap.String("user_id", user.ID), zap.Error(err))
			return nil, apperrors.Internal(err)
		}
		resp.Token = token
	}

	recordAsync(s.metrics, awspkg.MetricLogins)
	return resp, nil
}
