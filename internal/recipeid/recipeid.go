// Package recipeid turns the recipe identifiers clients send back to us into
// the provider's numeric id.
//
// Clients echo ids in several shapes: the bare number, a prefixed slug such as
// "recipe-716429", or a provider image name such as "716429-556x370.jpg". The
// leading run of digits after any known prefix is the id.
package recipeid

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
)

var ErrInvalid = errors.New("invalid recipe id")

var prefixes = []string{"recipe-", "recipe_", "recipe:", "recipes/"}

// Parse extracts the provider id from raw.
func Parse(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, "/") {
		s = path.Base(s)
	}
	lower := strings.ToLower(s)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			s = s[len(p):]
			break
		}
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, raw)
	}

	id, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	return id, nil
}

// ID is a recipe id that accepts a JSON number or any string form Parse understands.
type ID int64

func (i *ID) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		if n <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalid, n)
		}
		*i = ID(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: expected number or string", ErrInvalid)
	}
	n, err := Parse(s)
	if err != nil {
		return err
	}
	*i = ID(n)
	return nil
}

func (i ID) Int64() int64 {
	return int64(i)
}
