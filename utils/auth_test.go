package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func fixedIssuer(at time.Time) TokenIssuer {
	issuer := NewTokenIssuer("test-secret", 1)
	issuer.Now = func() time.Time { return at }
	return issuer
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	issuer := fixedIssuer(time.Now())
	salonID := uuid.New()
	in := Principal{UserID: uuid.New(), SalonID: &salonID, Role: "admin"}

	token, err := issuer.Generate(in)
	require.NoError(t, err)

	out, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, in.UserID, out.UserID)
	assert.Equal(t, in.Role, out.Role)
	require.NotNil(t, out.SalonID)
	assert.Equal(t, salonID, *out.SalonID)
}

func TestTokenWithoutSalon(t *testing.T) {
	t.Parallel()

	issuer := fixedIssuer(time.Now())
	token, err := issuer.Generate(Principal{UserID: uuid.New(), Role: "admin"})
	require.NoError(t, err)

	out, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Nil(t, out.SalonID)
}

func TestTokenRejected(t *testing.T) {
	t.Parallel()

	issued := time.Now()
	token, err := fixedIssuer(issued).Generate(Principal{UserID: uuid.New(), Role: "client"})
	require.NoError(t, err)

	_, err = fixedIssuer(issued.Add(2 * time.Hour)).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	other := fixedIssuer(issued)
	other.Secret = []byte("another-secret")
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")

	_, err = fixedIssuer(issued).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = TokenIssuer{Now: time.Now}.Generate(Principal{})
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("S3cret", hash))
}

func authRouter(issuer TokenIssuer, roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/", AuthMiddleware(issuer), RequireRole(roles...), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.String(http.StatusOK, p.Role)
	})
	return r
}

func TestAuthMiddlewareAndRoles(t *testing.T) {
	t.Parallel()

	issuer := fixedIssuer(time.Now())
	r := authRouter(issuer, "admin", "professional")

	tokenFor := func(role string) string {
		token, err := issuer.Generate(Principal{UserID: uuid.New(), Role: role})
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"garbage", "Bearer abc", "", http.StatusUnauthorized},
		{"admin", "Bearer " + tokenFor("admin"), "", http.StatusOK},
		{"professional", "bearer " + tokenFor("professional"), "", http.StatusOK},
		{"client forbidden", "Bearer " + tokenFor("client"), "", http.StatusForbidden},
		{"cookie", "", tokenFor("admin"), http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if tt.cookie != "" {
			req.AddCookie(&http.Cookie{Name: "token", Value: tt.cookie})
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, tt.name)
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.GET("/", OptionalAuth(fixedIssuer(time.Now())), func(c *gin.Context) {
		_, ok := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer broken")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
}
