// Package suggestions is a typed client for version 2 of the suggestions
// service: query templates, saved queries and saved-query property values.
//
// Each method builds one transport.Request and dispatches it with a fixed
// verb. Errors returned by the transport are passed back unchanged.
package suggestions

import (
	"context"
	"errors"
	"fmt"

	"github.com/blang/semver/v4"

	"github.com/insightapi/suggestions-client-go/api"
	"github.com/insightapi/suggestions-client-go/location"
	"github.com/insightapi/suggestions-client-go/registry"
	"github.com/insightapi/suggestions-client-go/transport"
)

// SharedKey names the process-wide client in the registry.
const SharedKey = "al.suggestions.v2"

type Client struct {
	Builder
	transport transport.Client
}

type Option func(*Client) error

func WithStack(stack location.Stack) Option {
	return func(c *Client) error {
		if stack == "" {
			return errors.New("stack must not be empty")
		}
		c.Stack = stack
		return nil
	}
}

// WithServiceVersion selects the service version. Any semver-like form is
// accepted ("v2", "2", "2.0.0") and normalized to the major version segment.
func WithServiceVersion(version string) Option {
	return func(c *Client) error {
		v, err := NormalizeVersion(version)
		if err != nil {
			return err
		}
		c.Version = v
		return nil
	}
}

func NormalizeVersion(version string) (string, error) {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return "", fmt.Errorf("parse service version %q: %w", version, err)
	}
	if len(v.Pre) > 0 {
		return "", fmt.Errorf("service version %q must not be a pre-release", version)
	}
	return fmt.Sprintf("v%d", v.Major), nil
}

func New(t transport.Client, options ...Option) (*Client, error) {
	if t == nil {
		return nil, errors.New("transport is required")
	}
	c := &Client{Builder: NewBuilder(), transport: t}
	for _, o := range options {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func MustNew(t transport.Client, options ...Option) *Client {
	c, err := New(t, options...)
	if err != nil {
		panic(err)
	}
	return c
}

// Shared returns the process-wide client, constructing it with newClient on
// first use. A failed construction is returned and retried by the next call.
// Only the composition root should call it.
func Shared(newClient func() (*Client, error)) (*Client, error) {
	return registry.TryShared(SharedKey, newClient)
}

func (c *Client) CreateQueryTemplate(ctx context.Context, accountID string, template api.CreateQueryTemplate) (*api.QueryTemplate, error) {
	var out api.QueryTemplate
	if err := c.transport.Post(ctx, c.Builder.CreateQueryTemplate(accountID, template), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteQueryTemplate(ctx context.Context, accountID, templateID string) error {
	return c.transport.Delete(ctx, c.Builder.DeleteQueryTemplate(accountID, templateID))
}

// GetQueryTemplates lists templates and returns the "templates" field of the response.
func (c *Client) GetQueryTemplates(ctx context.Context, accountID string, filter *TemplateFilter) ([]api.QueryTemplate, error) {
	return getList[api.QueryTemplate, templatesEnvelope](ctx, c.transport, c.Builder.GetQueryTemplates(accountID, filter))
}

// GetQueryTemplate reads the templates collection and decodes it as a single
// template. The route carries no template id.
func (c *Client) GetQueryTemplate(ctx context.Context, accountID string, filter *TemplateFilter) (*api.QueryTemplate, error) {
	var out api.QueryTemplate
	if err := c.transport.Get(ctx, c.Builder.GetQueryTemplate(accountID, filter), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateQueryTemplate(ctx context.Context, accountID, templateID string, template api.UpdateQueryTemplate) (*api.QueryTemplate, error) {
	var out api.QueryTemplate
	if err := c.transport.Post(ctx, c.Builder.UpdateQueryTemplate(accountID, templateID, template), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSavedQuery(ctx context.Context, accountID string, query api.CreateSavedQueryParams) (*api.SavedQuery, error) {
	var out api.SavedQuery
	if err := c.transport.Post(ctx, c.Builder.CreateSavedQuery(accountID, query), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSavedQuery(ctx context.Context, accountID, queryID string) error {
	return c.transport.Delete(ctx, c.Builder.DeleteSavedQuery(accountID, queryID))
}

func (c *Client) GetPropertyValues(ctx context.Context, accountID string, properties []api.Property) (api.PropertyValues, error) {
	var out api.PropertyValues
	if err := c.transport.Get(ctx, c.Builder.GetPropertyValues(accountID, properties), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSavedQuery(ctx context.Context, accountID, queryID string) (*api.SavedQuery, error) {
	var out api.SavedQuery
	if err := c.transport.Get(ctx, c.Builder.GetSavedQuery(accountID, queryID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSavedQueries lists saved queries and returns the "queries" field of the response.
func (c *Client) GetSavedQueries(ctx context.Context, accountID string) ([]api.SavedQuery, error) {
	return getList[api.SavedQuery, queriesEnvelope](ctx, c.transport, c.Builder.GetSavedQueries(accountID))
}

// UpdateSavedQuery overwrites a saved query. The backend accepts POST for this route.
func (c *Client) UpdateSavedQuery(ctx context.Context, accountID, queryID string, query api.UpdateSavedQueryParams) (*api.SavedQuery, error) {
	var out api.SavedQuery
	if err := c.transport.Post(ctx, c.Builder.UpdateSavedQuery(accountID, queryID, query), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func getList[T, E any, PE interface {
	*E
	envelope[T]
}](ctx context.Context, t transport.Client, r transport.Request) ([]T, error) {
	var env E
	if err := t.Get(ctx, r, &env); err != nil {
		return nil, err
	}
	return PE(&env).unwrap()
}
