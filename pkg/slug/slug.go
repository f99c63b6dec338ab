package slug

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const randomSuffixLen = 6

var (
	separators   = regexp.MustCompile(`[\s_]+`)
	disallowed   = regexp.MustCompile(`[^a-z0-9\-]`)
	multiHyphens = regexp.MustCompile(`-+`)

	suffixAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")
)

// Slugify lowercases the name, replaces whitespace/underscores with hyphens
// and strips everything that is not alphanumeric or a hyphen.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = separators.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = multiHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// RandomSuffix returns a 6-character lowercase alphanumeric string from a
// cryptographically secure source.
func RandomSuffix() (string, error) {
	max := big.NewInt(int64(len(suffixAlphabet)))
	var b strings.Builder
	for i := 0; i < randomSuffixLen; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate slug suffix: %w", err)
		}
		b.WriteRune(suffixAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// GenerateUnique builds "<slugified-name>-<suffix>" and appends an
// incrementing counter while exists reports a collision.
func GenerateUnique(name string, exists func(string) (bool, error)) (string, error) {
	base := Slugify(name)
	suffix, err := RandomSuffix()
	if err != nil {
		return "", err
	}

	candidate := fmt.Sprintf("%s-%s", base, suffix)
	counter := 1
	for {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%s-%d", base, suffix, counter)
		counter++
	}
}
