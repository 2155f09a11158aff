// internal/api/v1/types.go
package v1

// tokenResponse is the response for POST /admin/token.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// credentialsRequest is the JSON body of the token and register endpoints.
// The token endpoint also accepts the same fields as a form.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// settingsRequest is the body of PUT /admin/settings.
type settingsRequest struct {
	SearchFields map[string]bool `json:"search_fields"`
	CardFields   map[string]bool `json:"card_fields"`
}

// statusResponse acknowledges an admin mutation.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// clearCacheResponse is the response for POST /admin/clear_cache.
type clearCacheResponse struct {
	statusResponse
	Deleted int64 `json:"deleted"`
}

// serverStatus is the response for GET /status.
type serverStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
