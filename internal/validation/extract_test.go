package validation

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractUserIDFromQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "/stock/balance?user_id=seller-1", nil)
	got, err := ExtractUserID(req)
	require.NoError(t, err)
	assert.Equal(t, "seller-1", got)
}

func TestExtractUserIDFromJSON(t *testing.T) {
	body := `{"user_id":"seller-2","mode":"orders"}`
	req := httptest.NewRequest("POST", "/reports/turnover", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	got, err := ExtractUserID(req)
	require.NoError(t, err)
	assert.Equal(t, "seller-2", got)

	// body must still be readable by the handler
	rest, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(rest))
}

func TestExtractUserIDFromURLEncodedForm(t *testing.T) {
	form := url.Values{"user_id": {"seller-3"}}
	req := httptest.NewRequest("POST", "/sessions/close", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := ExtractUserID(req)
	require.NoError(t, err)
	assert.Equal(t, "seller-3", got)
}

func TestExtractUserIDFromMultipart(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("user_id", "seller-4"))
	part, err := w.CreateFormFile("orders", "orders.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("supplier_article\nA-1\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/reports/turnover", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	got, err := ExtractUserID(req)
	require.NoError(t, err)
	assert.Equal(t, "seller-4", got)
}

func TestExtractUserIDMissing(t *testing.T) {
	req := httptest.NewRequest("POST", "/reports/turnover", strings.NewReader(`{"mode":"orders"}`))
	req.Header.Set("Content-Type", "application/json")
	_, err := ExtractUserID(req)
	assert.Error(t, err)
}
