package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ministryworks/dms-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuth(t *testing.T) {
	t.Helper()
	config.JwtSecret = "test-signing-key"
	config.Issuer = "dms-test"
	Init()
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{JWTAuthMiddleware()}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/protected", chain...)
	return r
}

func TestGenerateAndParseToken(t *testing.T) {
	setupAuth(t)

	token, err := GenerateToken(42, "ada@works.gov", "commissioner")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@works.gov", claims.Email)
	assert.Equal(t, "commissioner", claims.Role)
	assert.Equal(t, "dms-test", claims.Issuer)
}

func TestJWTAuthMiddlewareBearer(t *testing.T) {
	setupAuth(t)
	r := protectedRouter()

	token, err := GenerateToken(1, "ada@works.gov", "staff")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddlewareCookie(t *testing.T) {
	setupAuth(t)
	r := protectedRouter()

	token, err := GenerateToken(1, "ada@works.gov", "staff")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddlewareRejects(t *testing.T) {
	setupAuth(t)
	r := protectedRouter()

	cases := map[string]func(*http.Request){
		"no credentials": func(req *http.Request) {},
		"malformed header": func(req *http.Request) {
			req.Header.Set("Authorization", "Token abc")
		},
		"garbage token": func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer not-a-jwt")
		},
	}

	for name, prepare := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			prepare(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestApproverGate(t *testing.T) {
	setupAuth(t)
	r := protectedRouter(Approver())

	for role, want := range map[string]int{
		"admin":        http.StatusOK,
		"commissioner": http.StatusOK,
		"staff":        http.StatusForbidden,
	} {
		t.Run(role, func(t *testing.T) {
			token, err := GenerateToken(1, "u@works.gov", role)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, want, w.Code)
		})
	}
}

func TestAdminGate(t *testing.T) {
	setupAuth(t)
	r := protectedRouter(Admin())

	token, err := GenerateToken(1, "u@works.gov", "commissioner")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
