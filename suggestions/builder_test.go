package suggestions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/insightapi/suggestions-client-go/api"
	"github.com/insightapi/suggestions-client-go/location"
	"github.com/insightapi/suggestions-client-go/transport"
)

func TestBuilder_Paths(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	const acct = "67000001"

	tests := []struct {
		name     string
		req      transport.Request
		endpoint string
		hasBody  bool
	}{
		{name: "createQueryTemplate", req: b.CreateQueryTemplate(acct, api.CreateQueryTemplate{Name: "t"}), endpoint: "/suggestions/v2/67000001/templates", hasBody: true},
		{name: "deleteQueryTemplate", req: b.DeleteQueryTemplate(acct, "tmpl-1"), endpoint: "/suggestions/v2/67000001/templates/tmpl-1"},
		{name: "getQueryTemplates", req: b.GetQueryTemplates(acct, nil), endpoint: "/suggestions/v2/67000001/templates"},
		{name: "getQueryTemplate", req: b.GetQueryTemplate(acct, nil), endpoint: "/suggestions/v2/67000001/templates"},
		{name: "updateQueryTemplate", req: b.UpdateQueryTemplate(acct, "tmpl-1", api.UpdateQueryTemplate{Name: "t2"}), endpoint: "/suggestions/v2/67000001/templates/tmpl-1", hasBody: true},
		{name: "createSavedQuery", req: b.CreateSavedQuery(acct, api.CreateSavedQueryParams{Name: "q"}), endpoint: "/suggestions/v2/67000001/queries", hasBody: true},
		{name: "deleteSavedQuery", req: b.DeleteSavedQuery(acct, "q-1"), endpoint: "/suggestions/v2/67000001/queries/q-1"},
		{name: "getPropertyValues", req: b.GetPropertyValues(acct, []api.Property{api.PropertyTags}), endpoint: "/suggestions/v2/67000001/queries/properties"},
		{name: "getSavedQuery", req: b.GetSavedQuery(acct, "q-1"), endpoint: "/suggestions/v2/67000001/queries/q-1"},
		{name: "getSavedQueries", req: b.GetSavedQueries(acct), endpoint: "/suggestions/v2/67000001/queries"},
		{name: "updateSavedQuery", req: b.UpdateSavedQuery(acct, "q-1", api.UpdateSavedQueryParams{Name: "q2"}), endpoint: "/suggestions/v2/67000001/queries/q-1", hasBody: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.endpoint, tt.req.Endpoint())
			assert.Equal(t, location.InsightAPI, tt.req.Stack)
			assert.Equal(t, ServiceName, tt.req.ServiceName)
			assert.Equal(t, "v2", tt.req.Version)
			assert.Equal(t, acct, tt.req.AccountID)
			if tt.hasBody {
				assert.NotNil(t, tt.req.Body)
			} else {
				assert.Nil(t, tt.req.Body)
			}
		})
	}
}

func TestBuilder_IdentifiersVerbatim(t *testing.T) {
	t.Parallel()

	r := NewBuilder().GetSavedQuery("acct", "A b%2F")
	assert.Equal(t, "/queries/A b%2F", r.Path)
}

func TestBuilder_TemplateFilter(t *testing.T) {
	t.Parallel()

	yes := true
	no := false

	tests := []struct {
		name   string
		filter *TemplateFilter
		want   transport.Params
	}{
		{name: "nil filter", filter: nil, want: nil},
		{name: "empty filter", filter: &TemplateFilter{}, want: nil},
		{name: "deleted only", filter: &TemplateFilter{Deleted: &yes}, want: transport.Params{"deleted": true}},
		{name: "deleted false is sent", filter: &TemplateFilter{Deleted: &no}, want: transport.Params{"deleted": false}},
		{name: "data type only", filter: &TemplateFilter{DataType: "logmsgs"}, want: transport.Params{"data_type": "logmsgs"}},
		{name: "both", filter: &TemplateFilter{Deleted: &yes, DataType: "logmsgs"}, want: transport.Params{"deleted": true, "data_type": "logmsgs"}},
	}

	b := NewBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, b.GetQueryTemplates("acct", tt.filter).Params)
			assert.Equal(t, tt.want, b.GetQueryTemplate("acct", tt.filter).Params)
		})
	}
}

func TestBuilder_PropertyValuesParams(t *testing.T) {
	t.Parallel()

	props := []api.Property{"prop1", "prop2"}
	r := NewBuilder().GetPropertyValues("acct", props)

	assert.Equal(t, transport.Params{"properties": []api.Property{"prop1", "prop2"}}, r.Params)
}

func TestBuilder_NoParamsWhenNotApplicable(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	for _, r := range []transport.Request{
		b.GetSavedQueries("acct"),
		b.GetSavedQuery("acct", "q"),
		b.DeleteSavedQuery("acct", "q"),
		b.DeleteQueryTemplate("acct", "t"),
	} {
		assert.Nil(t, r.Params, r.Path)
	}
}
