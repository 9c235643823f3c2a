package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/serendibgo/rental-api/databases"
	"github.com/serendibgo/rental-api/models"
)

// verified tokens are remembered for this long before the JWT is checked again
const tokenCacheTTL = 5 * time.Minute

// MiddlewareDB is a struct that holds the database and token settings
type MiddlewareDB struct {
	DB       databases.UserDatabase
	Secret   []byte
	TokenTTL time.Duration
}

var authenticator auth.Authenticator
var cache store.Cache

// tokenClaims is the payload of the access tokens issued by CreateToken
type tokenClaims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Middleware authenticates the request and stores the caller on its context
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Debugw("unauthorized", "url", r.URL.String(), "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success": false, "message": "Not authorized"}`))
			return
		}

		p, err := principalFromInfo(user)
		if err != nil {
			zap.S().Errorw("authenticated user has a malformed id", "user", user.UserName(), "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success": false, "message": "Not authorized"}`))
			return
		}
		zap.S().Debugf("User %s Authenticated", user.UserName())
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// CreateToken exchanges basic credentials for a signed access token
func (m MiddlewareDB) CreateToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	email, password, ok := r.BasicAuth()
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success": false, "message": "Basic credentials required"}`))
		return
	}

	info, err := m.ValidateUser(r.Context(), r, email, password)
	if err != nil {
		zap.S().Debugw("token request rejected", "email", email, "error", err)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success": false, "message": "Invalid credentials"}`))
		return
	}
	p, err := principalFromInfo(info)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success": false, "message": "Failed to issue token"}`))
		return
	}

	expiresAt := time.Now().Add(m.TokenTTL)
	token, err := m.signToken(p, expiresAt)
	if err != nil {
		zap.S().Errorw("failed to sign token", "userId", p.UserID.Hex(), "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success": false, "message": "Failed to issue token"}`))
		return
	}

	b, _ := json.Marshal(models.SuccessResponse{
		Success: true,
		Data: models.TokenResponse{
			Token:     token,
			UserID:    p.UserID.Hex(),
			Role:      p.Role,
			ExpiresAt: expiresAt.UTC(),
		},
	})
	_, _ = w.Write(b)
}

// SetupGoGuardian sets up the go-guardian middleware
func (m MiddlewareDB) SetupGoGuardian() {
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), tokenCacheTTL)
	basicStrategy := basic.New(m.ValidateUser, cache)
	tokenStrategy := bearer.New(m.ValidateToken, cache)

	authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// ValidateUser checks an email and password against the users collection
func (m MiddlewareDB) ValidateUser(ctx context.Context, r *http.Request, email, password string) (auth.Info, error) {
	user, err := m.DB.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user by email")
	}
	if !user.IsActive {
		return nil, fmt.Errorf("user %s is deactivated", user.ID.Hex())
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("failed to compare password")
	}
	return auth.NewDefaultUser(user.Email, user.ID.Hex(), []string{string(user.Role)}, nil), nil
}

// ValidateToken verifies an access token issued by CreateToken
func (m MiddlewareDB) ValidateToken(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}
	return auth.NewDefaultUser(claims.Email, claims.Subject, []string{string(claims.Role)}, nil), nil
}

func (m MiddlewareDB) signToken(p models.Principal, expiresAt time.Time) (string, error) {
	claims := tokenClaims{
		Email: p.Email,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.Hex(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

func principalFromInfo(info auth.Info) (models.Principal, error) {
	id, err := primitive.ObjectIDFromHex(info.ID())
	if err != nil {
		return models.Principal{}, err
	}
	p := models.Principal{UserID: id, Email: info.UserName()}
	if groups := info.Groups(); len(groups) > 0 {
		p.Role = models.Role(groups[0])
	}
	return p, nil
}
