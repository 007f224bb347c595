package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"auth-service/internal/config"
	"auth-service/internal/database"
	"auth-service/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "auth.db")},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
	db, err := database.Init(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return router.SetupRouter(cfg, db)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}

func registerBody(username, email, password string) string {
	b, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	return string(b)
}

func loginBody(username, password string) string {
	b, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	return string(b)
}

func TestLiveness(t *testing.T) {
	r := newTestServer(t)
	res := doJSON(t, r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, res.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "running", body["status"])
	assert.NotEmpty(t, body["message"])
}

func TestRegisterSuccess(t *testing.T) {
	r := newTestServer(t)
	res := doJSON(t, r, http.MethodPost, "/register", registerBody("alice", "alice@example.com", "secret123"))
	require.Equal(t, http.StatusCreated, res.Code)

	var body struct {
		ID        uint   `json:"id"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		IsActive  bool   `json:"is_active"`
		CreatedAt string `json:"created_at"`
		Message   string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.NotZero(t, body.ID)
	assert.Equal(t, "alice", body.Username)
	assert.Equal(t, "alice@example.com", body.Email)
	assert.True(t, body.IsActive)
	assert.NotEmpty(t, body.CreatedAt)
	assert.Equal(t, "User registered successfully", body.Message)

	// the hash never leaves the server
	assert.NotContains(t, res.Body.String(), "password")
	assert.NotContains(t, res.Body.String(), "secret123")
}

func TestRegisterValidationBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
		want     int
	}{
		{"username too short", "ab", "secret123", http.StatusBadRequest},
		{"username at minimum", "abc", "secret123", http.StatusCreated},
		{"username too long", strings.Repeat("a", 51), "secret123", http.StatusBadRequest},
		{"username at maximum", strings.Repeat("a", 50), "secret123", http.StatusCreated},
		{"username bad charset", "bad name!", "secret123", http.StatusBadRequest},
		{"username with hyphen and underscore", "good_name-1", "secret123", http.StatusCreated},
		{"password too short", "shortpw", "12345", http.StatusBadRequest},
		{"password at minimum", "minpw", "123456", http.StatusCreated},
		{"password too long", "longpw", strings.Repeat("p", 101), http.StatusBadRequest},
		{"password at maximum", "maxpw", strings.Repeat("p", 100), http.StatusCreated},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestServer(t)
			email := fmt.Sprintf("user%d@example.com", i)
			res := doJSON(t, r, http.MethodPost, "/register", registerBody(tc.username, email, tc.password))
			assert.Equal(t, tc.want, res.Code, "body: %s", res.Body.String())
			if tc.want == http.StatusBadRequest {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
				assert.EqualValues(t, http.StatusBadRequest, body["status_code"])
				assert.NotEmpty(t, body["message"])
			}
		})
	}
}

func TestRegisterRejectsBadEmail(t *testing.T) {
	r := newTestServer(t)
	res := doJSON(t, r, http.MethodPost, "/register", registerBody("bob", "not-an-email", "secret123"))
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestRegisterConflicts(t *testing.T) {
	r := newTestServer(t)
	res := doJSON(t, r, http.MethodPost, "/register", registerBody("carol", "carol@example.com", "secret123"))
	require.Equal(t, http.StatusCreated, res.Code)

	// same username, different email
	res = doJSON(t, r, http.MethodPost, "/register", registerBody("carol", "other@example.com", "secret123"))
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Username already registered")

	// same email, different username
	res = doJSON(t, r, http.MethodPost, "/register", registerBody("caroline", "carol@example.com", "secret123"))
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Email already registered")
}

func TestLogin(t *testing.T) {
	r := newTestServer(t)
	res := doJSON(t, r, http.MethodPost, "/register", registerBody("dave", "dave@example.com", "secret123"))
	require.Equal(t, http.StatusCreated, res.Code)
	var registered struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &registered))

	res = doJSON(t, r, http.MethodPost, "/login", loginBody("dave", "secret123"))
	require.Equal(t, http.StatusOK, res.Code)

	var body struct {
		Message string `json:"message"`
		User    struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "Login successful", body.Message)
	assert.Equal(t, registered.ID, body.User.ID)
	assert.Equal(t, "dave", body.User.Username)
}

func TestLoginFailureIsUndifferentiated(t *testing.T) {
	r := newTestServer(t)
	res := doJSON(t, r, http.MethodPost, "/register", registerBody("erin", "erin@example.com", "secret123"))
	require.Equal(t, http.StatusCreated, res.Code)

	wrongPass := doJSON(t, r, http.MethodPost, "/login", loginBody("erin", "wrong-password"))
	unknownUser := doJSON(t, r, http.MethodPost, "/login", loginBody("no-such-user", "secret123"))

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	// identical body: nothing may reveal whether the account exists
	assert.Equal(t, wrongPass.Body.String(), unknownUser.Body.String())
	assert.Contains(t, wrongPass.Body.String(), "Incorrect username or password")
}

func TestGetMe(t *testing.T) {
	r := newTestServer(t)
	res := doJSON(t, r, http.MethodPost, "/register", registerBody("frank", "frank@example.com", "secret123"))
	require.Equal(t, http.StatusCreated, res.Code)
	var registered struct {
		ID        uint   `json:"id"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		IsActive  bool   `json:"is_active"`
		CreatedAt string `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &registered))

	res = doJSON(t, r, http.MethodGet, fmt.Sprintf("/users/me?current_user_id=%d", registered.ID), "")
	require.Equal(t, http.StatusOK, res.Code)

	var fetched struct {
		ID        uint   `json:"id"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		IsActive  bool   `json:"is_active"`
		CreatedAt string `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &fetched))
	assert.Equal(t, registered.ID, fetched.ID)
	assert.Equal(t, registered.Username, fetched.Username)
	assert.Equal(t, registered.Email, fetched.Email)
	assert.Equal(t, registered.IsActive, fetched.IsActive)
	assert.Equal(t, registered.CreatedAt, fetched.CreatedAt)
}

func TestGetMeMisses(t *testing.T) {
	r := newTestServer(t)

	res := doJSON(t, r, http.MethodGet, "/users/me?current_user_id=9999", "")
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Contains(t, res.Body.String(), "User not found")

	res = doJSON(t, r, http.MethodGet, "/users/me?current_user_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, res.Code)
}
