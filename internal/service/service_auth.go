package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

// authService is the concrete implementation of AuthService.
// It handles signup, credential verification and the JWT token lifecycle
// using a UserRepository for persistence and bcrypt for password hashing.
type authService struct {
	userRepository store.UserRepository

	// ids produces user identifiers.
	ids *utils.UUIDGenerator

	// passwordHashCost is the bcrypt work factor applied on signup.
	passwordHashCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:   userRepository,
		ids:              utils.NewUUIDGenerator(),
		passwordHashCost: cfg.PasswordHashCost,
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		now:              time.Now,
		logger:           logger,
	}
}

// Signup registers a new user and issues the first access token.
//
// Email uniqueness is checked before username uniqueness, so a request that
// collides on both reports ErrEmailAlreadyRegistered. The unique constraints
// of the store back these checks up when two signups race.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	if err := a.checkUnique(ctx, req.Email, req.Username, ""); err != nil {
		return models.AuthResult{}, err
	}

	passwordHash, err := utils.HashPassword(req.Password, a.passwordHashCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.AuthResult{}, fmt.Errorf("signup: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		ID:           a.ids.Generate(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		CreatedAt:    a.now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.AuthResult{}, fmt.Errorf("user creation ended with error: %w", conflictError(err))
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")

	return a.authResult(ctx, user)
}

// Login verifies email and password and issues a fresh token.
//
// An unknown email and a wrong password both yield ErrIncorrectCredentials.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Msg("unknown email")
		return models.AuthResult{}, ErrIncorrectCredentials
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.AuthResult{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		log.Debug().Str("user_id", user.ID).Msg("wrong password")
		return models.AuthResult{}, ErrIncorrectCredentials
	}

	return a.authResult(ctx, user)
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, wrong algorithm, malformed,
// missing subject) is normalised to ErrInvalidCredentials.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrInvalidCredentials
	}

	return token, nil
}

// Authenticate resolves the owner of tokenString. The user is loaded on
// every call, so a token of a deleted user stops working immediately.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		logger.FromContext(ctx).Debug().Str("user_id", token.UserID).Msg("token owner not found")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

func (a *authService) authResult(ctx context.Context, user models.User) (models.AuthResult, error) {
	token, err := a.CreateToken(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("token creation failed")
		return models.AuthResult{}, err
	}

	return models.AuthResult{
		AccessToken: token.String(),
		TokenType:   models.TokenTypeBearer,
		User:        user,
	}, nil
}

// checkUnique verifies that email and username are free for excludeID.
// Empty values are skipped.
func (a *authService) checkUnique(ctx context.Context, email, username, excludeID string) error {
	return checkUnique(ctx, a.userRepository, email, username, excludeID)
}

func checkUnique(ctx context.Context, users store.UserRepository, email, username, excludeID string) error {
	if email != "" {
		exists, err := users.EmailExists(ctx, email, excludeID)
		if err != nil {
			return fmt.Errorf("email lookup failed: %w", err)
		}
		if exists {
			return ErrEmailAlreadyRegistered
		}
	}

	if username != "" {
		exists, err := users.UsernameExists(ctx, username, excludeID)
		if err != nil {
			return fmt.Errorf("username lookup failed: %w", err)
		}
		if exists {
			return ErrUsernameAlreadyTaken
		}
	}

	return nil
}

// conflictError translates store unique violations into the messages shown
// to callers.
func conflictError(err error) error {
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return ErrEmailAlreadyRegistered
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return ErrUsernameAlreadyTaken
	default:
		return err
	}
}
