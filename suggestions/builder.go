package suggestions

import (
	"github.com/insightapi/suggestions-client-go/api"
	"github.com/insightapi/suggestions-client-go/location"
	"github.com/insightapi/suggestions-client-go/transport"
)

const (
	ServiceName           = "suggestions"
	DefaultServiceVersion = "v2"
)

// TemplateFilter narrows template reads. Unset fields are not sent.
type TemplateFilter struct {
	Deleted  *bool
	DataType string
}

func (f *TemplateFilter) params() transport.Params {
	if f == nil {
		return nil
	}
	params := transport.Params{}
	if f.Deleted != nil {
		params["deleted"] = *f.Deleted
	}
	if f.DataType != "" {
		params["data_type"] = f.DataType
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

// Builder assembles the request for each logical operation. It performs no
// validation: identifiers are interpolated into the path verbatim.
type Builder struct {
	Stack   location.Stack
	Version string
}

func NewBuilder() Builder {
	return Builder{Stack: location.InsightAPI, Version: DefaultServiceVersion}
}

func (b Builder) request(accountID, path string) transport.Request {
	return transport.Request{
		Stack:       b.Stack,
		ServiceName: ServiceName,
		Version:     b.Version,
		AccountID:   accountID,
		Path:        path,
	}
}

func (b Builder) CreateQueryTemplate(accountID string, template api.CreateQueryTemplate) transport.Request {
	r := b.request(accountID, "/templates")
	r.Body = template
	return r
}

func (b Builder) DeleteQueryTemplate(accountID, templateID string) transport.Request {
	return b.request(accountID, "/templates/"+templateID)
}

func (b Builder) GetQueryTemplates(accountID string, filter *TemplateFilter) transport.Request {
	r := b.request(accountID, "/templates")
	r.Params = filter.params()
	return r
}

func (b Builder) GetQueryTemplate(accountID string, filter *TemplateFilter) transport.Request {
	r := b.request(accountID, "/templates")
	r.Params = filter.params()
	return r
}

func (b Builder) UpdateQueryTemplate(accountID, templateID string, template api.UpdateQueryTemplate) transport.Request {
	r := b.request(accountID, "/templates/"+templateID)
	r.Body = template
	return r
}

func (b Builder) CreateSavedQuery(accountID string, query api.CreateSavedQueryParams) transport.Request {
	r := b.request(accountID, "/queries")
	r.Body = query
	return r
}

func (b Builder) DeleteSavedQuery(accountID, queryID string) transport.Request {
	return b.request(accountID, "/queries/"+queryID)
}

// GetPropertyValues passes properties through as given, including a nil slice.
func (b Builder) GetPropertyValues(accountID string, properties []api.Property) transport.Request {
	r := b.request(accountID, "/queries/properties")
	r.Params = transport.Params{"properties": properties}
	return r
}

func (b Builder) GetSavedQuery(accountID, queryID string) transport.Request {
	return b.request(accountID, "/queries/"+queryID)
}

func (b Builder) GetSavedQueries(accountID string) transport.Request {
	return b.request(accountID, "/queries")
}

func (b Builder) UpdateSavedQuery(accountID, queryID string, query api.UpdateSavedQueryParams) transport.Request {
	r := b.request(accountID, "/queries/"+queryID)
	r.Body = query
	return r
}
