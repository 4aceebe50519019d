package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ExtractUserID pulls user_id out of the request regardless of how the client
// sent it: JSON body, multipart upload form, url-encoded form, or query
// string. The body is restored afterwards so handlers can still parse it.
func ExtractUserID(r *http.Request) (string, error) {
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		return userID, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	defer r.Body.Close()
	restore := func() {
		r.Body = io.NopCloser(bytes.NewBuffer(body))
	}

	ct := strings.ToLower(r.Header.Get("Content-Type"))
	restore()
	if strings.Contains(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err == nil {
			if userID := r.FormValue("user_id"); userID != "" {
				restore()
				return userID, nil
			}
		}
	} else if strings.Contains(ct, "json") {
		var req map[string]interface{}
		if err := json.Unmarshal(body, &req); err == nil {
			if userID, ok := req["user_id"].(string); ok && userID != "" {
				restore()
				return userID, nil
			}
		}
	} else {
		if err := r.ParseForm(); err == nil {
			if userID := r.FormValue("user_id"); userID != "" {
				restore()
				return userID, nil
			}
		}
	}

	restore()
	return "", fmt.Errorf("user_id not found in request")
}
