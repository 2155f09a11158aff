package v1

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/vmunix/bingeworthy/internal/auth"
	"github.com/vmunix/bingeworthy/internal/settings"
)

// maxBodyBytes bounds admin request bodies.
const maxBodyBytes = 1 << 20

// readCredentials accepts a form (the OAuth2 password flow) or a JSON body.
func readCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req credentialsRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}

	if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return req, err
	}
	req.Username = r.PostFormValue("username")
	req.Password = r.PostFormValue("password")
	return req, nil
}

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request) {
	req, err := readCredentials(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	token, err := s.deps.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.log.Warn("failed admin login", "username", req.Username, "ip", clientIP(r))
			writeError(w, http.StatusBadRequest, "INVALID_CREDENTIALS", err.Error())
			return
		}
		s.log.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := s.deps.Settings.Update(r.Context(), req.SearchFields, req.CardFields); err != nil {
		if errors.Is(err, settings.ErrInvalid) {
			writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
		s.log.Error("update settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "ok", Message: "settings updated"})
}

func (s *Server) clearCache(w http.ResponseWriter, r *http.Request) {
	n, err := s.deps.Cache.Clear(r.Context())
	if err != nil {
		s.log.Error("clear cache failed", "error", err)
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	if admin := adminFromContext(r.Context()); admin != nil {
		s.log.Info("cache cleared", "admin", admin.Username, "deleted", n)
	}
	writeJSON(w, http.StatusOK, clearCacheResponse{
		statusResponse: statusResponse{Status: "ok", Message: "cache cleared"},
		Deleted:        n,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	user, err := s.deps.Auth.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrUsernameExists):
		writeError(w, http.StatusBadRequest, "USERNAME_EXISTS", "username may already exist")
		return
	case errors.Is(err, auth.ErrUsernameRequired), errors.Is(err, auth.ErrPasswordRequired):
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	case err != nil:
		s.log.Error("register admin failed", "error", err)
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	if admin := adminFromContext(r.Context()); admin != nil {
		s.log.Info("admin created", "by", admin.Username, "username", user.Username)
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok", Message: "admin created"})
}
