// Package share encodes proof references into shareable URLs and back.
// A share link carries the reference in the "proof" query parameter, so
// opening it lets anyone re-run verification against the service.
package share

import (
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/ghostproof/internal/common"
)

const queryParam = "proof"

// Encode builds a share URL for reference on top of base.
func Encode(base string, reference string) (string, error) {
	if reference == "" {
		return "", fmt.Errorf("%w: empty reference", common.ErrInvalidInput)
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: bad base url: %v", common.ErrInvalidInput, err)
	}
	q := u.Query()
	q.Set(queryParam, reference)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Decode extracts the proof reference from a share URL. It returns an empty
// string when the URL carries no reference.
func Decode(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: bad share url: %v", common.ErrInvalidInput, err)
	}
	return u.Query().Get(queryParam), nil
}
