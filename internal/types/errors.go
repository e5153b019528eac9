package types

import (
	"errors"
	"fmt"
)

// Validation sentinels. These are reported before any side effect is
// attempted.
var (
	ErrNoRecipes         = errors.New("at least one recipe id is required")
	ErrNoRecipesResolved = errors.New("none of the given recipe ids resolve to a stored recipe")
	ErrInvalidMealCount  = errors.New("number of meals must be at least 1")
)

// ContentError reports that an upstream language model returned content that
// could not be interpreted as the expected structure.
type ContentError struct {
	Reason string
	Err    error
}

func (e *ContentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm content error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("llm content error: %s", e.Reason)
}

func (e *ContentError) Unwrap() error { return e.Err }

// RetrievalError reports that a page could not be fetched or did not contain
// a recognizable recipe.
type RetrievalError struct {
	URL    string
	Reason string
	Err    error
}

func (e *RetrievalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to retrieve recipe from %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to retrieve recipe from %s: %s", e.URL, e.Reason)
}

func (e *RetrievalError) Unwrap() error { return e.Err }
