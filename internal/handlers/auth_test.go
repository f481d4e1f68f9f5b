package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authResponse struct {
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var registered authResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &registered))
	assert.Equal(t, "user", registered.User.Role)
	assert.NotEmpty(t, registered.Token)
	// The password hash never leaves the server.
	assert.NotContains(t, recorder.Body.String(), "password")

	recorder = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "new@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var loggedIn authResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &loggedIn))
	assert.NotEmpty(t, loggedIn.Token)

	// The issued token works against a protected route.
	recorder = env.do(t, http.MethodGet, "/api/auth/profile", loggedIn.Token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "partial@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Please provide all required fields", decodeMessage(t, recorder))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Imposter",
		"email":    "user@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "User already exists", decodeMessage(t, recorder))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		email string
		pass  string
	}{
		{"unknown email", "ghost@example.com", "user123"},
		{"wrong password", "user@example.com", "wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
				"email":    tt.email,
				"password": tt.pass,
			})
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Equal(t, "Invalid email or password", decodeMessage(t, recorder))
		})
	}
}

func TestProfileReturnsCurrentUser(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodGet, "/api/auth/profile", env.userToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var profile struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &profile))
	assert.Equal(t, "user@example.com", profile.Email)
	assert.Equal(t, "user", profile.Role)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Server is running!", decodeMessage(t, recorder))
}
