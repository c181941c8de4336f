// Package security — чистка текстовых полей, которые вводят операторы.
package security

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// maxFieldLen ограничивает длину текстового поля карточки
const maxFieldLen = 256

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// SanitizeText готовит пользовательский текст к записи в базу:
// HTML-теги и управляющие символы выбрасываются, спецсимволы
// экранируются, пробелы схлопываются, длина ограничивается.
func SanitizeText(input string) string {
	cleaned := htmlTagRe.ReplaceAllString(input, "")
	cleaned = html.EscapeString(cleaned)

	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, cleaned)

	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if len(cleaned) > maxFieldLen {
		cleaned = cleaned[:maxFieldLen]
	}
	return cleaned
}
