package suggestions

import (
	"errors"
	"fmt"

	"github.com/insightapi/suggestions-client-go/api"
)

var ErrMissingField = errors.New("response envelope is missing field")

// ShapeError reports a list response that lacks its envelope field.
type ShapeError struct {
	Field string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v %q", ErrMissingField, e.Field)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrMissingField
}

// envelope is implemented by every list response shape. Each list operation
// names its envelope type, so the unwrapped field is fixed at compile time.
type envelope[T any] interface {
	unwrap() ([]T, error)
}

type templatesEnvelope struct {
	Templates []api.QueryTemplate `json:"templates"`
	Total     int                 `json:"total"`
}

func (e *templatesEnvelope) unwrap() ([]api.QueryTemplate, error) {
	if e.Templates == nil {
		return nil, &ShapeError{Field: "templates"}
	}
	return e.Templates, nil
}

type queriesEnvelope struct {
	Queries []api.SavedQuery `json:"queries"`
	Total   int              `json:"total"`
}

func (e *queriesEnvelope) unwrap() ([]api.SavedQuery, error) {
	if e.Queries == nil {
		return nil, &ShapeError{Field: "queries"}
	}
	return e.Queries, nil
}
