package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rizaldinur/crowdfunding-api/internal/config"
	"github.com/rizaldinur/crowdfunding-api/internal/model"
)

const contextKey = "authData"
const refreshKey = "refreshToken"

// Claims JWT载荷
type Claims struct {
	UserId int64  `json:"userId"`
	Email  string `json:"email"`
	Slug   string `json:"slug"`
	Avatar string `json:"avatar"`
	jwt.RegisteredClaims
}

// Manager 签发和校验token
type Manager struct {
	secret           []byte
	expiry           time.Duration
	refreshThreshold time.Duration
}

// NewManager 创建token管理器
func NewManager(cfg config.JwtConfig) *Manager {
	return &Manager{
		secret:           []byte(cfg.Secret),
		expiry:           time.Duration(cfg.ExpiryMinutes) * time.Minute,
		refreshThreshold: time.Duration(cfg.RefreshThreshold) * time.Minute,
	}
}

// Issue 为用户签发token
func (m *Manager) Issue(user *model.User) (string, error) {
	claims := &Claims{
		UserId: user.Id,
		Email:  user.Email,
		Slug:   user.Slug,
		Avatar: user.AvatarUrl,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify 校验token并返回载荷
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// RefreshIfNeeded 剩余有效期不足阈值时签发新token, 否则返回空串
func (m *Manager) RefreshIfNeeded(claims *Claims) (string, error) {
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 || remaining >= m.refreshThreshold {
		return "", nil
	}
	user := &model.User{
		Id:        claims.UserId,
		Email:     claims.Email,
		Slug:      claims.Slug,
		AvatarUrl: claims.Avatar,
	}
	return m.Issue(user)
}

// Middleware gin认证中间件, 解析Bearer token并注入上下文
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := ""
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
			token = parts[1]
		}
		if token == "" {
			abortUnauthenticated(c)
			return
		}

		claims, err := m.Verify(token)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(contextKey, claims)

		// 快过期时顺带下发新token, 由handler放入响应
		if refresh, err := m.RefreshIfNeeded(claims); err == nil && refresh != "" {
			c.Set(refreshKey, refresh)
		}

		c.Next()
	}
}

// abortUnauthenticated 以统一响应格式返回401
func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   true,
		"message": "尚未登录。",
		"status":  http.StatusUnauthorized,
		"data":    gin.H{"authenticated": false},
	})
}

// FromContext 取出当前请求的认证信息
func FromContext(c *gin.Context) *Claims {
	if v, ok := c.Get(contextKey); ok {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return nil
}

// RefreshFromContext 取出本次请求下发的新token(可能为空)
func RefreshFromContext(c *gin.Context) string {
	return c.GetString(refreshKey)
}
