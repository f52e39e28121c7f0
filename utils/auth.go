// utils/auth.go
package utils

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const principalKey = "principal"

var ErrInvalidToken = errors.New("invalid token")

// Principal is the authenticated caller. SalonID is nil for global operators.
type Principal struct {
	UserID  uuid.UUID
	SalonID *uuid.UUID
	Role    string
}

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	Secret []byte
	Expiry time.Duration
	Now    func() time.Time
}

func NewTokenIssuer(secret string, expiryHours int) TokenIssuer {
	if expiryHours <= 0 {
		expiryHours = 24
	}
	return TokenIssuer{Secret: []byte(secret), Expiry: time.Duration(expiryHours) * time.Hour, Now: time.Now}
}

// Generate JWT token
func (t TokenIssuer) Generate(p Principal) (string, error) {
	if len(t.Secret) == 0 {
		return "", errors.New("JWT_SECRET not set")
	}
	now := t.Now()
	salonID := ""
	if p.SalonID != nil {
		salonID = p.SalonID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     p.UserID.String(),
		"salonId": salonID,
		"role":    p.Role,
		"exp":     now.Add(t.Expiry).Unix(),
		"iat":     now.Unix(),
	})
	return token.SignedString(t.Secret)
}

// Parse verifies the signature and expiry and returns the principal.
func (t TokenIssuer) Parse(tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.Secret, nil
	}, jwt.WithTimeFunc(t.Now))
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	p := Principal{UserID: userID}
	p.Role, _ = claims["role"].(string)
	if raw, _ := claims["salonId"].(string); raw != "" {
		salonID, err := uuid.Parse(raw)
		if err != nil {
			return Principal{}, ErrInvalidToken
		}
		p.SalonID = &salonID
	}
	return p, nil
}

func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

func bearerToken(c *gin.Context) string {
	tokenString := c.GetHeader("Authorization")
	if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
		return tokenString[7:]
	}
	if tokenString == "" {
		if cookie, err := c.Cookie("token"); err == nil {
			return cookie
		}
	}
	return tokenString
}

// Auth middleware
func AuthMiddleware(issuer TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		p, err := issuer.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		SetPrincipal(c, p)
		c.Next()
	}
}

// OptionalAuth attaches a principal when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(issuer TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if p, err := issuer.Parse(tokenString); err == nil {
				SetPrincipal(c, p)
			}
		}
		c.Next()
	}
}

// RequireRole rejects principals whose role is not listed.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
