package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"journal-workflow/config"
	"journal-workflow/logging"
	"journal-workflow/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, userID, role string, secret []byte, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:   userID,
		Username: "jdoe",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(logging.Discard()))
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})
	r.GET("/chief", AuthMiddleware(), RequireRole(models.RoleEditorInChief), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := authRouter()
	id := uuid.New()
	hour := time.Now().Add(time.Hour)

	w := get(r, "/me", signToken(t, id.String(), string(models.RoleReviewer), config.JWTSecret, hour))
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, id.String(), body["id"])
	assert.Equal(t, string(models.RoleReviewer), body["role"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	cases := map[string]string{
		"missing":      "",
		"wrong secret": signToken(t, id.String(), string(models.RoleReviewer), []byte("another-secret"), hour),
		"expired":      signToken(t, id.String(), string(models.RoleReviewer), config.JWTSecret, time.Now().Add(-time.Hour)),
		"bad user id":  signToken(t, "42", string(models.RoleReviewer), config.JWTSecret, hour),
		"unknown role": signToken(t, id.String(), "publisher", config.JWTSecret, hour),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, get(r, "/me", token).Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", signToken(t, id.String(), string(models.RoleReviewer), config.JWTSecret, hour))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "token without the Bearer prefix")
}

func TestRequireRole(t *testing.T) {
	r := authRouter()
	hour := time.Now().Add(time.Hour)

	w := get(r, "/chief", signToken(t, uuid.NewString(), string(models.RoleEditorInChief), config.JWTSecret, hour))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = get(r, "/chief", signToken(t, uuid.NewString(), string(models.RoleAreaEditor), config.JWTSecret, hour))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSanitizeInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/echo", SanitizeInput(), func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", body)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"title":"<b>Graph</b> minors<script>alert(1)</script>","keywords":["<i>graphs</i>"],"meta":{"note":"<p>ok</p>"},"rating":4}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Graph minors", got["title"])
	assert.Equal(t, []interface{}{"graphs"}, got["keywords"])
	assert.Equal(t, map[string]interface{}{"note": "ok"}, got["meta"])
	assert.Equal(t, float64(4), got["rating"])

	assert.Equal(t, http.StatusOK, post("").Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"title":`).Code)
}
