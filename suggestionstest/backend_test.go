package suggestionstest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightapi/suggestions-client-go/api"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	backend := New()
	backend.Now = func() time.Time { return time.Unix(1700000000, 0) }
	s := NewServer(backend)
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, s *Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestBackend_TemplateLifecycle(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	resp, data := do(t, s, http.MethodPost, "/suggestions/v2/1/templates", api.CreateQueryTemplate{Name: "auth failures", DataType: "logmsgs"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created api.QueryTemplate
	require.NoError(t, json.Unmarshal(data, &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, &api.AuditStamp{At: 1700000000, By: "fake-user"}, created.Created)

	resp, data = do(t, s, http.MethodPost, "/suggestions/v2/1/templates/"+created.ID, api.UpdateQueryTemplate{Description: "d"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated api.QueryTemplate
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, "auth failures", updated.Name)
	assert.Equal(t, "d", updated.Description)

	resp, _ = do(t, s, http.MethodDelete, "/suggestions/v2/1/templates/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Empty(t, s.Backend.Templates("1", false))
	deleted := s.Backend.Templates("1", true)
	require.Len(t, deleted, 1)
	assert.True(t, deleted[0].Deleted)

	resp, _ = do(t, s, http.MethodDelete, "/suggestions/v2/1/templates/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBackend_ListTemplatesFilters(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.Backend.MustUpsertTemplate("1", &api.QueryTemplate{ID: "a", DataType: "logmsgs"})
	s.Backend.MustUpsertTemplate("1", &api.QueryTemplate{ID: "b", DataType: "observations"})
	s.Backend.MustUpsertTemplate("1", &api.QueryTemplate{ID: "c", DataType: "logmsgs", Deleted: true})
	s.Backend.MustUpsertTemplate("2", &api.QueryTemplate{ID: "d", DataType: "logmsgs"})

	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"a", "b"}},
		{query: "?data_type=logmsgs", want: []string{"a"}},
		{query: "?deleted=true", want: []string{"a", "b", "c"}},
		{query: "?deleted=true&data_type=logmsgs", want: []string{"a", "c"}},
	}

	for _, tt := range tests {
		resp, data := do(t, s, http.MethodGet, "/suggestions/v2/1/templates"+tt.query, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var env struct {
			Templates []api.QueryTemplate `json:"templates"`
			Total     int                 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(data, &env))

		ids := []string{}
		for _, tmpl := range env.Templates {
			ids = append(ids, tmpl.ID)
		}
		assert.Equal(t, tt.want, ids, tt.query)
		assert.Equal(t, len(tt.want), env.Total, tt.query)
	}

	resp, _ := do(t, s, http.MethodGet, "/suggestions/v2/1/templates?deleted=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBackend_SavedQueries(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	resp, _ := do(t, s, http.MethodGet, "/suggestions/v2/1/queries", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data := do(t, s, http.MethodPost, "/suggestions/v2/1/queries", api.CreateSavedQueryParams{Name: "q", Tags: []string{"x", "y"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created api.SavedQuery
	require.NoError(t, json.Unmarshal(data, &created))

	resp, data = do(t, s, http.MethodGet, "/suggestions/v2/1/queries/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got api.SavedQuery
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, created, got)

	resp, _ = do(t, s, http.MethodGet, "/suggestions/v2/2/queries/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, s, http.MethodPost, "/suggestions/v2/1/queries", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, s, http.MethodDelete, "/suggestions/v2/1/queries/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, s, http.MethodGet, "/suggestions/v2/1/queries/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBackend_PropertyValues(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.Backend.MustUpsertSavedQuery("1", &api.SavedQuery{ID: "a", Tags: []string{"x", "y"}, DataType: "logmsgs", Created: &api.AuditStamp{By: "alice"}})
	s.Backend.MustUpsertSavedQuery("1", &api.SavedQuery{ID: "b", Tags: []string{"y", "z"}, Created: &api.AuditStamp{By: "bob"}})
	s.Backend.MustUpsertSavedQuery("1", &api.SavedQuery{ID: "c", Tags: []string{"gone"}, Deleted: true})

	resp, data := do(t, s, http.MethodGet, "/suggestions/v2/1/queries/properties?properties=tags&properties=created_by&properties=data_type", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"tags":["x","y","z"],"created_by":["alice","bob"],"data_type":["logmsgs"]}`, string(data))

	resp, _ = do(t, s, http.MethodGet, "/suggestions/v2/1/queries/properties?properties=owner", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, s, http.MethodGet, "/suggestions/v2/1/queries/properties", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBackend_UpsertValidation(t *testing.T) {
	t.Parallel()

	b := New()
	require.Error(t, b.UpsertTemplate("1", nil))
	require.Error(t, b.UpsertTemplate("1", &api.QueryTemplate{}))
	require.Error(t, b.UpsertSavedQuery("1", nil))
	require.Error(t, b.UpsertSavedQuery("1", &api.SavedQuery{}))
	assert.Panics(t, func() { b.MustUpsertSavedQuery("1", nil) })
}
