// Package middleware — проверка, что вебхук дёргает именно Telegram.
package middleware

import (
	"crypto/subtle"
	"net/http"
)

const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookAuth сверяет секрет, заданный при setWebhook. Пустой секрет
// отключает проверку (локальная разработка через туннель).
func WebhookAuth(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if secret != "" {
			got := r.Header.Get(secretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				http.Error(w, "🚫 Неверный секрет вебхука", http.StatusForbidden)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
