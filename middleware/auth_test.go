package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestWebhookAuthAcceptsValidSecret(t *testing.T) {
	h := WebhookAuth("s3cret", okHandler())

	req := httptest.NewRequest(http.MethodPost, "/telegram", nil)
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "s3cret")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookAuthRejectsWrongSecret(t *testing.T) {
	h := WebhookAuth("s3cret", okHandler())

	for _, got := range []string{"", "wrong"} {
		req := httptest.NewRequest(http.MethodPost, "/telegram", nil)
		if got != "" {
			req.Header.Set("X-Telegram-Bot-Api-Secret-Token", got)
		}
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, "secret=%q", got)
	}
}

func TestWebhookAuthDisabledWithEmptySecret(t *testing.T) {
	h := WebhookAuth("", okHandler())

	req := httptest.NewRequest(http.MethodPost, "/telegram", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
