package auth

import (
	_ "embed"
	"regexp"
	"strings"

	"jobboard/internal/pkg/validation"
)

const (
	minPasswordLength  = 8
	maxPasswordBytes   = 72
	maxSimilarityRatio = 0.7
)

//go:embed common_passwords.txt
var commonPasswordsRaw string

var commonPasswords = func() map[string]struct{} {
	out := map[string]struct{}{}
	for _, line := range strings.Split(commonPasswordsRaw, "\n") {
		line = strings.TrimSpace(strings.ToLower(line))
		if line != "" {
			out[line] = struct{}{}
		}
	}
	return out
}()

var nonWord = regexp.MustCompile(`\W+`)

type userAttribute struct {
	label string
	value string
}

// checkPassword returns the messages for every rule pw breaks.
func checkPassword(pw string, attrs []userAttribute) []string {
	var msgs []string

	lower := strings.ToLower(pw)
	for _, a := range attrs {
		if tooSimilar(lower, strings.ToLower(a.value)) {
			msgs = append(msgs, "The password is too similar to the "+a.label+".")
			break
		}
	}
	if len([]rune(pw)) < minPasswordLength {
		msgs = append(msgs, "This password is too short. It must contain at least 8 characters.")
	}
	// bcrypt refuses inputs longer than 72 bytes.
	if len(pw) > maxPasswordBytes {
		msgs = append(msgs, "This password is too long. It must contain at most 72 bytes.")
	}
	if _, ok := commonPasswords[strings.TrimSpace(lower)]; ok {
		msgs = append(msgs, "This password is too common.")
	}
	if isNumeric(pw) {
		msgs = append(msgs, "This password is entirely numeric.")
	}
	return msgs
}

func validatePassword(pw, email, fullName string) validation.FieldErrors {
	attrs := []userAttribute{
		{label: "email address", value: email},
		{label: "full name", value: fullName},
	}
	msgs := checkPassword(pw, attrs)
	if len(msgs) == 0 {
		return nil
	}
	return validation.FieldErrors{"password": msgs}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// tooSimilar compares pw with value and with each word of value.
func tooSimilar(pw, value string) bool {
	if value == "" {
		return false
	}
	parts := append([]string{value}, nonWord.Split(value, -1)...)
	for _, part := range parts {
		if part == "" {
			continue
		}
		if similarity(pw, part) >= maxSimilarityRatio {
			return true
		}
	}
	return false
}

// similarity is the Ratcliff/Obershelp ratio 2*M/T, where M counts characters
// in recursively matched common blocks.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingChars(ra, rb)) / float64(total)
}

func matchingChars(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	i, j, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size + matchingChars(a[:i], b[:j]) + matchingChars(a[i+size:], b[j+size:])
}

func longestCommonBlock(a, b []rune) (int, int, int) {
	bestI, bestJ, best := 0, 0, 0
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > best {
					best = cur[j]
					bestI, bestJ = i-best, j-best
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return bestI, bestJ, best
}
