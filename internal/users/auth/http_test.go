// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_Login(t *testing.T) {
	service, _ := newTestService(t)
	mustRegister(t, service, "alice", "alice@example.com", "password123")
	router := NewHandler(service).Routes()

	t.Run("empty credentials fail validation before the credential check", func(t *testing.T) {
		testCases := []struct {
			name string
			body string
		}{
			{name: "missing username", body: `{"username": "", "password": "password123"}`},
			{name: "missing password", body: `{"username": "alice", "password": ""}`},
			{name: "missing both", body: `{}`},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				recorder := postJSON(t, router, "/login", tc.body)

				assert.Equal(t, http.StatusBadRequest, recorder.Code)
				assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
			})
		}
	})

	t.Run("bad credentials fail with 401, not 400", func(t *testing.T) {
		recorder := postJSON(t, router, "/login", `{"username": "alice", "password": "wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), MsgBadCredentials)
	})

	t.Run("valid credentials return a bearer token envelope", func(t *testing.T) {
		recorder := postJSON(t, router, "/login", `{"username": "alice", "password": "password123"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data TokenPair `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, BearerTokenType, envelope.Data.TokenType)
		assert.NotEmpty(t, envelope.Data.AccessToken)
	})

	t.Run("malformed JSON fails validation", func(t *testing.T) {
		recorder := postJSON(t, router, "/login", `{"username": `)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
