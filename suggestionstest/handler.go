package suggestionstest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/insightapi/suggestions-client-go/api"
)

// Handler serves the suggestions v2 routes under /suggestions/v2/{account}.
func (b *Backend) Handler() http.Handler {
	mux := http.NewServeMux()

	const prefix = "/suggestions/v2/{account}"
	mux.HandleFunc("POST "+prefix+"/templates", b.createTemplate)
	mux.HandleFunc("GET "+prefix+"/templates", b.listTemplates)
	mux.HandleFunc("POST "+prefix+"/templates/{id}", b.updateTemplate)
	mux.HandleFunc("DELETE "+prefix+"/templates/{id}", b.deleteTemplate)

	mux.HandleFunc("POST "+prefix+"/queries", b.createQuery)
	mux.HandleFunc("GET "+prefix+"/queries", b.listQueries)
	mux.HandleFunc("GET "+prefix+"/queries/properties", b.propertyValues)
	mux.HandleFunc("GET "+prefix+"/queries/{id}", b.getQuery)
	mux.HandleFunc("POST "+prefix+"/queries/{id}", b.updateQuery)
	mux.HandleFunc("DELETE "+prefix+"/queries/{id}", b.deleteQuery)

	return mux
}

func decodeBody[T any](b *Backend, w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		b.fail(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return v, false
	}
	return v, true
}

func (b *Backend) createTemplate(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[api.CreateQueryTemplate](b, w, r)
	if !ok {
		return
	}
	if in.Name == "" {
		b.fail(w, r, http.StatusBadRequest, "name is required")
		return
	}

	t := &api.QueryTemplate{
		ID:            newID(),
		Name:          in.Name,
		Description:   in.Description,
		DataType:      in.DataType,
		SearchRequest: in.SearchRequest,
		Tags:          in.Tags,
		Created:       b.stamp(),
		Modified:      b.stamp(),
	}
	b.templates.Set(key{r.PathValue("account"), t.ID}, t)
	b.encode(w, r, http.StatusCreated, t)
}

func (b *Backend) listTemplates(w http.ResponseWriter, r *http.Request) {
	includeDeleted, ok := b.boolParam(w, r, "deleted")
	if !ok {
		return
	}
	dataType := r.URL.Query().Get("data_type")

	templates := []api.QueryTemplate{}
	for _, t := range b.Templates(r.PathValue("account"), includeDeleted) {
		if dataType == "" || t.DataType == dataType {
			templates = append(templates, t)
		}
	}
	b.encode(w, r, http.StatusOK, map[string]any{
		"templates": templates,
		"total":     len(templates),
	})
}

func (b *Backend) updateTemplate(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[api.UpdateQueryTemplate](b, w, r)
	if !ok {
		return
	}

	var updated *api.QueryTemplate
	found := b.templates.Update(key{r.PathValue("account"), r.PathValue("id")}, func(old *api.QueryTemplate, ok bool) (*api.QueryTemplate, bool) {
		if !ok || old.Deleted {
			return nil, false
		}
		t := *old
		if in.Name != "" {
			t.Name = in.Name
		}
		if in.Description != "" {
			t.Description = in.Description
		}
		if in.DataType != "" {
			t.DataType = in.DataType
		}
		if in.SearchRequest != nil {
			t.SearchRequest = in.SearchRequest
		}
		if in.Tags != nil {
			t.Tags = in.Tags
		}
		t.Modified = b.stamp()
		updated = &t
		return updated, true
	})
	if !found {
		b.fail(w, r, http.StatusNotFound, "template not found")
		return
	}
	b.encode(w, r, http.StatusOK, updated)
}

func (b *Backend) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	found := b.templates.Update(key{r.PathValue("account"), r.PathValue("id")}, func(old *api.QueryTemplate, ok bool) (*api.QueryTemplate, bool) {
		if !ok || old.Deleted {
			return nil, false
		}
		t := *old
		t.Deleted = true
		t.Modified = b.stamp()
		return &t, true
	})
	if !found {
		b.fail(w, r, http.StatusNotFound, "template not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) createQuery(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[api.CreateSavedQueryParams](b, w, r)
	if !ok {
		return
	}
	if in.Name == "" {
		b.fail(w, r, http.StatusBadRequest, "name is required")
		return
	}

	q := &api.SavedQuery{
		ID:            newID(),
		Name:          in.Name,
		Description:   in.Description,
		DataType:      in.DataType,
		SearchRequest: in.SearchRequest,
		TimeRange:     in.TimeRange,
		Tags:          in.Tags,
		Created:       b.stamp(),
		Modified:      b.stamp(),
	}
	b.queries.Set(key{r.PathValue("account"), q.ID}, q)
	b.encode(w, r, http.StatusCreated, q)
}

func (b *Backend) listQueries(w http.ResponseWriter, r *http.Request) {
	queries := b.SavedQueries(r.PathValue("account"), false)
	if queries == nil {
		queries = []api.SavedQuery{}
	}
	b.encode(w, r, http.StatusOK, map[string]any{
		"queries": queries,
		"total":   len(queries),
	})
}

func (b *Backend) getQuery(w http.ResponseWriter, r *http.Request) {
	q, ok := b.queries.GetCheck(key{r.PathValue("account"), r.PathValue("id")})
	if !ok || q.Deleted {
		b.fail(w, r, http.StatusNotFound, "saved query not found")
		return
	}
	b.encode(w, r, http.StatusOK, q)
}

func (b *Backend) updateQuery(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[api.UpdateSavedQueryParams](b, w, r)
	if !ok {
		return
	}

	var updated *api.SavedQuery
	found := b.queries.Update(key{r.PathValue("account"), r.PathValue("id")}, func(old *api.SavedQuery, ok bool) (*api.SavedQuery, bool) {
		if !ok || old.Deleted {
			return nil, false
		}
		q := *old
		if in.Name != "" {
			q.Name = in.Name
		}
		if in.Description != "" {
			q.Description = in.Description
		}
		if in.DataType != "" {
			q.DataType = in.DataType
		}
		if in.SearchRequest != nil {
			q.SearchRequest = in.SearchRequest
		}
		if in.TimeRange != nil {
			q.TimeRange = in.TimeRange
		}
		if in.Tags != nil {
			q.Tags = in.Tags
		}
		q.Modified = b.stamp()
		updated = &q
		return updated, true
	})
	if !found {
		b.fail(w, r, http.StatusNotFound, "saved query not found")
		return
	}
	b.encode(w, r, http.StatusOK, updated)
}

func (b *Backend) deleteQuery(w http.ResponseWriter, r *http.Request) {
	found := b.queries.Update(key{r.PathValue("account"), r.PathValue("id")}, func(old *api.SavedQuery, ok bool) (*api.SavedQuery, bool) {
		if !ok || old.Deleted {
			return nil, false
		}
		q := *old
		q.Deleted = true
		q.Modified = b.stamp()
		return &q, true
	})
	if !found {
		b.fail(w, r, http.StatusNotFound, "saved query not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// propertyValues reports the distinct values of each requested property
// across the account's live saved queries, in first-seen order by query id.
func (b *Backend) propertyValues(w http.ResponseWriter, r *http.Request) {
	properties := r.URL.Query()["properties"]
	if len(properties) == 0 {
		b.fail(w, r, http.StatusBadRequest, "properties is required")
		return
	}

	queries := b.SavedQueries(r.PathValue("account"), false)
	out := make(map[api.Property][]string, len(properties))
	for _, name := range properties {
		p := api.Property(name)
		if !p.Valid() {
			b.fail(w, r, http.StatusBadRequest, "invalid property "+strconv.Quote(name))
			return
		}

		seen := map[string]bool{}
		values := []string{}
		add := func(v string) {
			if v == "" || seen[v] {
				return
			}
			seen[v] = true
			values = append(values, v)
		}
		for _, q := range queries {
			switch p {
			case api.PropertyTags:
				for _, tag := range q.Tags {
					add(tag)
				}
			case api.PropertyDataType:
				add(q.DataType)
			case api.PropertyCreatedBy:
				if q.Created != nil {
					add(q.Created.By)
				}
			case api.PropertyModifiedBy:
				if q.Modified != nil {
					add(q.Modified.By)
				}
			}
		}
		out[p] = values
	}
	b.encode(w, r, http.StatusOK, out)
}

func (b *Backend) boolParam(w http.ResponseWriter, r *http.Request, name string) (bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		b.fail(w, r, http.StatusBadRequest, "invalid "+name+" parameter")
		return false, false
	}
	return v, true
}
