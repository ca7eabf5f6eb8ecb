package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"campusshield/config"
	"campusshield/database"
	"campusshield/logger"
	"campusshield/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// Identity is an authenticated account as reported by the auth provider.
type Identity struct {
	UID   string
	Email string
}

type AuthProvider interface {
	Verify(ctx context.Context, email, password string) (*Identity, error)
}

// FirebaseAuth checks email/password accounts through the Identity Toolkit
// REST API. Only the project's web API key is needed.
type FirebaseAuth struct {
	svc *identitytoolkit.Service
}

func NewFirebaseAuth(ctx context.Context, apiKey string, opts ...option.ClientOption) (*FirebaseAuth, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create identity toolkit client: %w", err)
	}
	return &FirebaseAuth{svc: svc}, nil
}

func (f *FirebaseAuth) Verify(ctx context.Context, email, password string) (*Identity, error) {
	resp, err := f.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("firebase verify password: %w", err)
	}
	return &Identity{UID: resp.LocalId, Email: resp.Email}, nil
}

type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	UpdatePassword(ctx context.Context, email, hash string) error
}

// LocalAuth verifies bcrypt hashes stored in the admins collection.
type LocalAuth struct {
	store AdminStore
	cost  int
}

func NewLocalAuth(store AdminStore) *LocalAuth {
	return &LocalAuth{store: store, cost: bcrypt.DefaultCost}
}

func (l *LocalAuth) Verify(ctx context.Context, email, password string) (*Identity, error) {
	admin, err := l.store.FindByEmail(ctx, email)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &Identity{UID: admin.ID.Hex(), Email: admin.Email}, nil
}

func (l *LocalAuth) CreateAdmin(ctx context.Context, email, name, password string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.cost)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := l.store.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

const minPasswordLength = 8

// ChangePassword re-checks the current password before storing the new hash.
func (l *LocalAuth) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}
	if _, err := l.Verify(ctx, email, oldPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), l.cost)
	if err != nil {
		return err
	}
	return l.store.UpdatePassword(ctx, email, string(hash))
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

const tokenIssuer = "campusshield"

type AuthService struct {
	provider AuthProvider
	revoker  Revoker
	secret   []byte
	ttl      time.Duration
	allowed  map[string]struct{}
	now      func() time.Time
}

func NewAuthService(provider AuthProvider, revoker Revoker, cfg config.AuthConfig) *AuthService {
	if revoker == nil {
		revoker = NewMemoryRevoker()
	}
	ttl := cfg.JWTExpire
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	allowed := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, e := range cfg.AdminEmails {
		allowed[strings.ToLower(e)] = struct{}{}
	}
	return &AuthService{
		provider: provider,
		revoker:  revoker,
		secret:   []byte(cfg.JWTSecret),
		ttl:      ttl,
		allowed:  allowed,
		now:      time.Now,
	}
}

func (s *AuthService) TTL() time.Duration { return s.ttl }

func (s *AuthService) isAllowed(email string) bool {
	if len(s.allowed) == 0 {
		return true
	}
	_, ok := s.allowed[strings.ToLower(email)]
	return ok
}

// Login verifies the credentials and mints a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *Claims, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	id, err := s.provider.Verify(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if !s.isAllowed(id.Email) {
		logger.Log.Warn("login refused, account not in admin list", zap.String("email", id.Email))
		return "", nil, ErrInvalidCredentials
	}

	now := s.now()
	claims := &Claims{
		Email: strings.ToLower(id.Email),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   id.UID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, claims, nil
}

// ParseToken validates signature, expiry and revocation.
func (s *AuthService) ParseToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}
