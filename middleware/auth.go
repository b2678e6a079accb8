package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"servicehub/database/repository"
	userRepo "servicehub/database/repository/user"
	"servicehub/models"
	"servicehub/services/auth"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Gin context keys set by the auth middleware.
const (
	CtxUserID     = "userID"
	CtxRole       = "role"
	CtxProviderID = "providerID"
	CtxUser       = "user"
	CtxIdentity   = "identity"
	CtxTokenHash  = "tokenHash"
)

// Authenticator checks bearer tokens. Verified token hashes map to the UID in the
// auth Redis database so repeat requests skip the verifier.
type Authenticator struct {
	verifier auth.TokenVerifier
	users    userRepo.UserRepository
	cache    *redis.Client
	logger   *zap.Logger
}

// NewAuthenticator builds the middleware set. cache may be nil.
func NewAuthenticator(verifier auth.TokenVerifier, users userRepo.UserRepository, cache *redis.Client, logger *zap.Logger) *Authenticator {
	return &Authenticator{verifier: verifier, users: users, cache: cache, logger: logger}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Identify verifies the token without requiring a registered user. The verified
// identity is stored under CtxIdentity. Used by the sync endpoint.
func (a *Authenticator) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "missing bearer token")
			return
		}
		id, err := a.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "invalid or expired token")
			return
		}
		a.remember(c.Request.Context(), token, id)
		c.Set(CtxIdentity, id)
		c.Set(CtxTokenHash, utils.HashToken(token))
		c.Next()
	}
}

// Auth requires a valid token belonging to a registered, enabled user.
func (a *Authenticator) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "missing bearer token")
			return
		}
		if !a.authenticate(c, token) {
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present. Anonymous requests
// and requests with unusable tokens continue without a user.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		uid, err := a.resolve(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}
		u, err := a.users.GetByID(c.Request.Context(), uid)
		if err == nil && !u.Disabled {
			setUser(c, u, token)
		}
		c.Next()
	}
}

// Forget drops a token from the cache.
func (a *Authenticator) Forget(ctx context.Context, tokenHash string) error {
	if a.cache == nil || tokenHash == "" {
		return nil
	}
	return a.cache.Del(ctx, utils.AuthCachePrefix+tokenHash).Err()
}

func (a *Authenticator) authenticate(c *gin.Context, token string) bool {
	ctx := c.Request.Context()
	uid, err := a.resolve(ctx, token)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "invalid or expired token")
		return false
	}
	u, err := a.users.GetByID(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "user is not registered; call /api/auth/sync first")
		return false
	}
	if err != nil {
		a.logger.Error("Failed to load user", zap.String("userId", uid), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", "")
		return false
	}
	if u.Disabled {
		utils.JSONError(c, http.StatusForbidden, "Account disabled", "")
		return false
	}
	setUser(c, u, token)
	return true
}

// resolve returns the UID behind token, from cache or the verifier.
func (a *Authenticator) resolve(ctx context.Context, token string) (string, error) {
	key := utils.AuthCachePrefix + utils.HashToken(token)
	if a.cache != nil {
		uid, err := a.cache.Get(ctx, key).Result()
		if err == nil && uid != "" {
			return uid, nil
		}
		if err != nil && err != redis.Nil {
			a.logger.Warn("Auth cache read failed", zap.Error(err))
		}
	}
	id, err := a.verifier.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	a.remember(ctx, token, id)
	return id.UID, nil
}

func (a *Authenticator) remember(ctx context.Context, token string, id *auth.Identity) {
	if a.cache == nil {
		return
	}
	ttl := utils.AuthCacheTTL
	if left := time.Until(id.ExpiresAt); left < ttl {
		ttl = left
	}
	if ttl <= 0 {
		return
	}
	if err := a.cache.Set(ctx, utils.AuthCachePrefix+utils.HashToken(token), id.UID, ttl).Err(); err != nil {
		a.logger.Warn("Auth cache write failed", zap.Error(err))
	}
}

func setUser(c *gin.Context, u *models.User, token string) {
	c.Set(CtxUser, u)
	c.Set(CtxUserID, u.ID)
	c.Set(CtxRole, u.Role)
	c.Set(CtxProviderID, u.ProviderID)
	c.Set(CtxTokenHash, utils.HashToken(token))
}

// ActorFrom returns the authenticated caller, or nil for anonymous requests.
func ActorFrom(c *gin.Context) *models.Actor {
	uid := c.GetString(CtxUserID)
	if uid == "" {
		return nil
	}
	return &models.Actor{UserID: uid, Role: c.GetString(CtxRole), ProviderID: c.GetString(CtxProviderID)}
}
