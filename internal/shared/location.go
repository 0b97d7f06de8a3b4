package shared

import (
	"fmt"
	"net/url"
)

// SearchParam is the location query parameter that mirrors the live search query.
const SearchParam = "search"

// QueryFromLocation returns the search query carried by a share link.
//
// A location without the parameter yields an empty query.
func QueryFromLocation(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: location %q: %v", ErrInvalidInput, raw, err)
	}
	return u.Query().Get(SearchParam), nil
}

// LocationWithQuery returns base with its search parameter set to query.
//
// An empty query removes the parameter. Other parameters and the fragment are kept.
func LocationWithQuery(base, query string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: location %q: %v", ErrInvalidInput, base, err)
	}

	values := u.Query()
	if query == "" {
		values.Del(SearchParam)
	} else {
		values.Set(SearchParam, query)
	}
	u.RawQuery = values.Encode()

	return u.String(), nil
}
