package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockServer builds an httptest.Server that checks the incoming request
// before handing it to the configured response.
type mockServer struct {
	t           *testing.T
	handler     http.HandlerFunc
	expectPath  string
	expectMeth  string
	expectAuth  string
	expectQuery map[string]string
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	return &mockServer{t: t, expectQuery: map[string]string{}}
}

func (m *mockServer) ExpectPath(path string) *mockServer {
	m.expectPath = path
	return m
}

func (m *mockServer) ExpectMethod(method string) *mockServer {
	m.expectMeth = method
	return m
}

func (m *mockServer) ExpectGET() *mockServer  { return m.ExpectMethod(http.MethodGet) }
func (m *mockServer) ExpectPOST() *mockServer { return m.ExpectMethod(http.MethodPost) }
func (m *mockServer) ExpectPUT() *mockServer  { return m.ExpectMethod(http.MethodPut) }

// ExpectBearer checks the Authorization header carries token.
func (m *mockServer) ExpectBearer(token string) *mockServer {
	m.expectAuth = "Bearer " + token
	return m
}

// ExpectQuery checks a single query parameter.
func (m *mockServer) ExpectQuery(key, value string) *mockServer {
	m.expectQuery[key] = value
	return m
}

func (m *mockServer) Handler(h func(w http.ResponseWriter, r *http.Request)) *mockServer {
	m.handler = h
	return m
}

func (m *mockServer) RespondJSON(v any) *mockServer {
	m.handler = func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(m.t, w, http.StatusOK, v)
	}
	return m
}

// RespondError replies the way the server does: {"error": ..., "code": ...}.
func (m *mockServer) RespondError(status int, code, message string) *mockServer {
	m.handler = func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(m.t, w, status, map[string]string{"error": message, "code": code})
	}
	return m
}

func (m *mockServer) Build() *httptest.Server {
	m.t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.expectPath != "" {
			assert.Equal(m.t, m.expectPath, r.URL.Path, "unexpected request path")
		}
		if m.expectMeth != "" {
			assert.Equal(m.t, m.expectMeth, r.Method, "unexpected request method")
		}
		if m.expectAuth != "" {
			assert.Equal(m.t, m.expectAuth, r.Header.Get("Authorization"), "unexpected authorization")
		}
		for k, v := range m.expectQuery {
			assert.Equal(m.t, v, r.URL.Query().Get(k), "unexpected query %s", k)
		}
		if m.handler != nil {
			m.handler(w, r)
		}
	}))
}

func respondJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON response: %v", err)
	}
}

func ptr[T any](v T) *T { return &v }
