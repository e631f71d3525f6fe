package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"deepsea-be/internal/config"
	"deepsea-be/internal/dto"
	"deepsea-be/internal/pkg/logger"
	"deepsea-be/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL        = 30 * 24 * time.Hour
	maxLoginRetries = 5
	throttleWindow  = 15 * time.Minute
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress string) (*dto.LoginResponse, error)
}

type authService struct {
	cfg      config.AuthConfig
	logger   logger.ILogger
	validate *validator.Validate
	// attempts tracks failed logins per client IP within the throttle window.
	attempts *cache.Cache
}

func NewAuthService(cfg config.AuthConfig, sysLogger logger.ILogger, validate *validator.Validate) IAuthService {
	return &authService{
		cfg:      cfg,
		logger:   sysLogger,
		validate: validate,
		attempts: cache.New(throttleWindow, 10*time.Minute),
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress string) (*dto.LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.Validation("username and password are required")
	}

	if s.cfg.Username == "" || (s.cfg.Password == "" && s.cfg.PasswordHash == "") {
		return nil, apperror.Configuration("server credentials not set")
	}

	if count, found := s.attempts.Get(ipAddress); found && count.(int) >= maxLoginRetries {
		s.logger.Warn("AUTH", "Login throttled", map[string]interface{}{"ip": ipAddress})
		return nil, apperror.Unauthorized("Too many failed attempts, try again later")
	}

	if !s.credentialsMatch(req.Username, req.Password) {
		s.recordFailure(ipAddress)
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	token, err := s.signToken(req.Username)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.attempts.Delete(ipAddress)
	s.logger.Info("AUTH", "Login successful", map[string]interface{}{"username": req.Username, "ip": ipAddress})

	return &dto.LoginResponse{Token: token}, nil
}

func (s *authService) credentialsMatch(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) != 1 {
		return false
	}
	if s.cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
}

func (s *authService) recordFailure(ipAddress string) {
	if err := s.attempts.Add(ipAddress, 1, cache.DefaultExpiration); err != nil {
		s.attempts.IncrementInt(ipAddress, 1)
	}
}

func (s *authService) signToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
