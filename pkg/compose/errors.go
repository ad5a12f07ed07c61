package compose

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a located route has no page template behind
// it. Callers translate it to a 404.
var ErrNotFound = errors.New("page not found")

// ProviderError reports that a route's data provider failed. It is the
// only descriptor failure that escapes composition; callers translate
// it to a 500 and hand it to the error-page fallback chain.
type ProviderError struct {
	Route string
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider for %s: %v", e.Route, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
