package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-collection/internal/api/middleware"
	"github.com/feral-file/ff-collection/internal/logger"
)

const testSubjectAddress = "0x1111111111111111111111111111111111111111"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// generateTestKeyPair returns an RSA private key and its PKIX PEM public key
func generateTestKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pubDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)

	pubPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubDER,
	})

	return privateKey, string(pubPEM)
}

// signTestJWT issues an RS256 token with the given subject and expiry
func signTestJWT(t *testing.T, key *rsa.PrivateKey, subject string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestAuthenticate_APIKey(t *testing.T) {
	cfg := middleware.AuthConfig{
		APIKeys: []string{"key-one", "key-two"},
	}

	testCases := []struct {
		name       string
		authHeader string
		cfg        middleware.AuthConfig
		success    bool
		errMsg     string
	}{
		{
			name:       "valid API key",
			authHeader: "apikey key-one",
			cfg:        cfg,
			success:    true,
		},
		{
			name:       "auth type is case insensitive",
			authHeader: "APIKey key-two",
			cfg:        cfg,
			success:    true,
		},
		{
			name:       "unknown API key",
			authHeader: "apikey wrong-key",
			cfg:        cfg,
			errMsg:     "invalid API key",
		},
		{
			name:       "no API keys configured",
			authHeader: "apikey key-one",
			cfg:        middleware.AuthConfig{},
			errMsg:     "no API keys configured",
		},
		{
			name:   "missing header",
			cfg:    cfg,
			errMsg: "missing Authorization header",
		},
		{
			name:       "malformed header",
			authHeader: "apikey-without-space",
			cfg:        cfg,
			errMsg:     "invalid Authorization header format",
		},
		{
			name:       "unsupported auth type",
			authHeader: "basic dXNlcjpwYXNz",
			cfg:        cfg,
			errMsg:     "unsupported authorization type",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := middleware.Authenticate(tc.authHeader, tc.cfg)

			if tc.success {
				assert.True(t, result.Success)
				assert.Equal(t, "apikey", result.AuthType)
				assert.NoError(t, result.Error)
			} else {
				assert.False(t, result.Success)
				assert.ErrorContains(t, result.Error, tc.errMsg)
			}
		})
	}
}

func TestAuthenticate_JWT(t *testing.T) {
	privateKey, publicPEM := generateTestKeyPair(t)
	cfg := middleware.AuthConfig{JWTPublicKey: publicPEM}

	t.Run("valid token", func(t *testing.T) {
		token := signTestJWT(t, privateKey, testSubjectAddress, time.Now().Add(time.Hour))

		result := middleware.Authenticate("bearer "+token, cfg)

		require.True(t, result.Success)
		assert.Equal(t, "jwt", result.AuthType)
		assert.Equal(t, testSubjectAddress, result.AuthSubject)
		require.NotNil(t, result.Claims)
		assert.Equal(t, testSubjectAddress, result.Claims.Subject)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signTestJWT(t, privateKey, testSubjectAddress, time.Now().Add(-time.Hour))

		result := middleware.Authenticate("bearer "+token, cfg)

		assert.False(t, result.Success)
		assert.ErrorContains(t, result.Error, "expired")
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		otherKey, _ := generateTestKeyPair(t)
		token := signTestJWT(t, otherKey, testSubjectAddress, time.Now().Add(time.Hour))

		result := middleware.Authenticate("bearer "+token, cfg)

		assert.False(t, result.Success)
		assert.ErrorContains(t, result.Error, "failed to parse token")
	})

	t.Run("non-RSA signing method is rejected", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   testSubjectAddress,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte("shared-secret"))
		require.NoError(t, err)

		result := middleware.Authenticate("bearer "+signed, cfg)

		assert.False(t, result.Success)
		assert.ErrorContains(t, result.Error, "unexpected signing method")
	})

	t.Run("no public key configured", func(t *testing.T) {
		token := signTestJWT(t, privateKey, testSubjectAddress, time.Now().Add(time.Hour))

		result := middleware.Authenticate("bearer "+token, middleware.AuthConfig{})

		assert.False(t, result.Success)
		assert.ErrorContains(t, result.Error, "JWT public key not configured")
	})

	t.Run("PKCS1 public key format", func(t *testing.T) {
		pkcs1PEM := pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PUBLIC KEY",
			Bytes: x509.MarshalPKCS1PublicKey(&privateKey.PublicKey),
		})
		token := signTestJWT(t, privateKey, testSubjectAddress, time.Now().Add(time.Hour))

		result := middleware.Authenticate("bearer "+token, middleware.AuthConfig{JWTPublicKey: string(pkcs1PEM)})

		assert.True(t, result.Success)
	})
}

func TestAuth_Middleware(t *testing.T) {
	privateKey, publicPEM := generateTestKeyPair(t)
	cfg := middleware.AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      []string{"test-key"},
	}

	router := gin.New()
	router.GET("/protected", middleware.Auth(cfg), func(c *gin.Context) {
		subject := c.GetString(middleware.AuthSubjectKey)
		c.JSON(http.StatusOK, gin.H{
			"auth_type": c.GetString(middleware.AuthTypeKey),
			"subject":   subject,
		})
	})

	t.Run("JWT caller carries its subject", func(t *testing.T) {
		token := signTestJWT(t, privateKey, testSubjectAddress, time.Now().Add(time.Hour))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"auth_type":"jwt"`)
		assert.Contains(t, w.Body.String(), testSubjectAddress)
	})

	t.Run("API key caller has no subject", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "apikey test-key")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"auth_type":"apikey"`)
		assert.Contains(t, w.Body.String(), `"subject":""`)
	})

	t.Run("unauthenticated request is aborted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthorized")
	})
}

func TestAPIKeyAuth_Middleware(t *testing.T) {
	privateKey, publicPEM := generateTestKeyPair(t)
	cfg := middleware.AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      []string{"test-key"},
	}

	router := gin.New()
	router.POST("/admin", middleware.APIKeyAuth(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	t.Run("API key accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin", nil)
		req.Header.Set("Authorization", "apikey test-key")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("valid JWT is still rejected", func(t *testing.T) {
		token := signTestJWT(t, privateKey, testSubjectAddress, time.Now().Add(time.Hour))

		req := httptest.NewRequest(http.MethodPost, "/admin", nil)
		req.Header.Set("Authorization", "bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "API key authentication required")
	})
}
