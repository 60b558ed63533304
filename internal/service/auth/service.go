package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"seguimiento-noticias/internal/config"
	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/pkg/logger"
	"seguimiento-noticias/internal/pkg/validation"
	"seguimiento-noticias/internal/repository"
)

var (
	ErrInvalidCredentials = domain.NewRuleError("auth.invalid_credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

type Service interface {
	Login(ctx context.Context, input domain.LoginInput) (*domain.Session, error)
	Logout(ctx context.Context, actor domain.Actor) error
	// Authenticate resolves a bearer token to the actor owning the session.
	Authenticate(ctx context.Context, token string) (*domain.Actor, error)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type Claims struct {
	ReporteroID int64       `json:"reportero_id"`
	Role        domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	reporteroRepo repository.ReporteroRepository
	sessionRepo   repository.SessionRepository
	secret        []byte
	ttl           time.Duration
	now           func() time.Time
	log           *logrus.Entry
}

func NewService(reporteroRepo repository.ReporteroRepository, sessionRepo repository.SessionRepository, cfg *config.Config) Service {
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		// Development only; Load refuses an empty secret in production.
		secret = make([]byte, 32)
		_, _ = rand.Read(secret)
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}

	return &service{
		reporteroRepo: reporteroRepo,
		sessionRepo:   sessionRepo,
		secret:        secret,
		ttl:           ttl,
		now:           time.Now,
		log:           logger.WithComponent("auth"),
	}
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.Session, error) {
	input.Nombre = strings.TrimSpace(input.Nombre)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	reportero, err := s.reporteroRepo.GetByNombre(ctx, input.Nombre)
	if err != nil {
		return nil, err
	}
	if reportero == nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.checkPassword(ctx, reportero, input.Password); err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	token, err := s.signToken(reportero, now, expiresAt)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Store(ctx, reportero.ID, HashToken(token), expiresAt); err != nil {
		return nil, err
	}

	return &domain.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Reportero: reportero,
	}, nil
}

// checkPassword accepts bcrypt hashes and, for accounts created before
// hashing was introduced, a plain text match that is upgraded on the spot.
func (s *service) checkPassword(ctx context.Context, reportero *domain.Reportero, password string) error {
	stored := reportero.PasswordHash
	if strings.HasPrefix(stored, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
		return nil
	}

	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.reporteroRepo.UpdatePassword(ctx, reportero.ID, string(hashed)); err != nil {
		s.log.WithError(err).WithField("reportero_id", reportero.ID).Warn("failed to upgrade legacy password")
		return nil
	}
	reportero.PasswordHash = string(hashed)
	return nil
}

func (s *service) signToken(reportero *domain.Reportero, now, expiresAt time.Time) (string, error) {
	claims := &Claims{
		ReporteroID: reportero.ID,
		Role:        reportero.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *service) Logout(ctx context.Context, actor domain.Actor) error {
	return s.sessionRepo.Revoke(ctx, actor.ID)
}

func (s *service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, s.now())
}

func (s *service) Authenticate(ctx context.Context, tokenString string) (*domain.Actor, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	now := s.now()
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	// The stored hash is what makes logout and re-login revoke older tokens.
	reportero, err := s.sessionRepo.GetByTokenHash(ctx, HashToken(tokenString), now)
	if err != nil {
		return nil, err
	}
	if reportero == nil || reportero.ID != claims.ReporteroID {
		return nil, ErrInvalidSession
	}

	actor := reportero.Actor()
	return &actor, nil
}

func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
