package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Cola", "Cola"},
		{"  Cola  Zero  ", "Cola Zero"},
		{"<script>alert(1)</script>Cola", "alert(1)Cola"},
		{"a & b", "a &amp; b"},
		{"line1\nline2\ttab", "line1 line2 tab"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SanitizeText(c.in), "input=%q", c.in)
	}
}

func TestSanitizeTextTruncatesLongInput(t *testing.T) {
	long := strings.Repeat("a", 1000)
	assert.Len(t, SanitizeText(long), 256)
}
