package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-json"
)

// User is a GameZone account as cached locally.
type User struct {
	// ID is assigned by the remote system; zero until then.
	ID int64

	Name  string
	Email string

	// PasswordHash is the argon2id hash of the password (see cryptox).
	// The cleartext never reaches the local store.
	PasswordHash string

	Address       string
	AcceptedTerms bool

	// Interests holds tags from InterestCatalog.
	Interests []string

	// Image is an optional profile picture reference: a local path or a URL.
	Image *string
}

// EncodeInterests serialises tags as a JSON array string, the form used
// both in the local store and on the wire.
func EncodeInterests(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		// a []string always marshals
		panic(err)
	}
	return string(b)
}

// DecodeInterests parses a JSON array string. Values written by older
// clients as "a, b, c" are accepted as well. Empty input yields nil.
func DecodeInterests(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(s), &tags); err != nil {
			return nil, fmt.Errorf("failed to decode interests %q: %w", s, err)
		}
		if len(tags) == 0 {
			return nil, nil
		}
		return tags, nil
	}

	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

// Clone returns a deep copy of u.
func (u User) Clone() User {
	c := u
	c.Interests = slices.Clone(u.Interests)
	if u.Image != nil {
		img := *u.Image
		c.Image = &img
	}
	return c
}
