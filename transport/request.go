// Package transport carries resolved operation descriptors to the backend.
package transport

import (
	"context"
	"fmt"
	"net/url"
	"reflect"

	"github.com/insightapi/suggestions-client-go/location"
)

// Params are query parameters. Values may be scalars, pointers to scalars or
// slices of scalars; nil values are omitted.
type Params map[string]any

// Request fully determines one HTTP exchange. It is built for a single call
// and must not be reused after dispatch.
type Request struct {
	Stack       location.Stack
	ServiceName string
	Version     string
	AccountID   string
	// Path is relative to /{ServiceName}/{Version}/{AccountID}.
	Path   string
	Params Params
	Body   any
}

// Endpoint returns the route of the request relative to the stack base URL.
func (r Request) Endpoint() string {
	return "/" + r.ServiceName + "/" + r.Version + "/" + r.AccountID + r.Path
}

// Client is the capability used to dispatch requests. Implementations must be
// safe for concurrent use.
type Client interface {
	// Get issues a GET and decodes the response body into out.
	Get(ctx context.Context, r Request, out any) error
	// Post issues a POST with the JSON-encoded body and decodes the response into out.
	Post(ctx context.Context, r Request, out any) error
	Delete(ctx context.Context, r Request) error
}

// Values converts the parameters for the query string. Slices become
// repeated keys; scalars are formatted with fmt.
func (p Params) Values() url.Values {
	q := url.Values{}
	for key, value := range p {
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				continue
			}
			rv = rv.Elem()
		}
		if !rv.IsValid() {
			continue
		}
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				q.Add(key, fmt.Sprint(rv.Index(i).Interface()))
			}
			continue
		}
		q.Set(key, fmt.Sprint(rv.Interface()))
	}
	return q
}
