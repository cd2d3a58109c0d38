// Package suggestionstest provides an in-memory suggestions backend for tests
// and local development.
package suggestionstest

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/insightapi/suggestions-client-go/api"
	"github.com/insightapi/suggestions-client-go/internal/util"
)

type key struct {
	account string
	id      string
}

// Backend stores templates and saved queries per account. Deletes are soft:
// deleted resources stay listed when asked for with deleted=true.
type Backend struct {
	templates util.SyncMap[key, *api.QueryTemplate]
	queries   util.SyncMap[key, *api.SavedQuery]

	// Actor is recorded as the author of every change.
	Actor string
	Log   logr.Logger
	Now   func() time.Time
}

func New() *Backend {
	return &Backend{
		templates: util.NewSyncMap[key, *api.QueryTemplate](),
		queries:   util.NewSyncMap[key, *api.SavedQuery](),
		Actor:     "fake-user",
		Log:       logr.Discard(),
		Now:       time.Now,
	}
}

func (b *Backend) stamp() *api.AuditStamp {
	return &api.AuditStamp{At: b.Now().Unix(), By: b.Actor}
}

func (b *Backend) MustUpsertTemplate(account string, t *api.QueryTemplate) {
	if err := b.UpsertTemplate(account, t); err != nil {
		panic(err)
	}
}

func (b *Backend) UpsertTemplate(account string, t *api.QueryTemplate) error {
	if t == nil {
		return errors.New("nil template cannot be upserted")
	}
	if t.ID == "" {
		return errors.New("template must have an ID")
	}
	b.templates.Set(key{account, t.ID}, t)
	return nil
}

func (b *Backend) MustUpsertSavedQuery(account string, q *api.SavedQuery) {
	if err := b.UpsertSavedQuery(account, q); err != nil {
		panic(err)
	}
}

func (b *Backend) UpsertSavedQuery(account string, q *api.SavedQuery) error {
	if q == nil {
		return errors.New("nil saved query cannot be upserted")
	}
	if q.ID == "" {
		return errors.New("saved query must have an ID")
	}
	b.queries.Set(key{account, q.ID}, q)
	return nil
}

// Templates returns the account's templates ordered by id.
func (b *Backend) Templates(account string, includeDeleted bool) []api.QueryTemplate {
	var out []api.QueryTemplate
	for k, t := range entries(&b.templates) {
		if k.account == account && (includeDeleted || !t.Deleted) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SavedQueries returns the account's saved queries ordered by id.
func (b *Backend) SavedQueries(account string, includeDeleted bool) []api.SavedQuery {
	var out []api.SavedQuery
	for k, q := range entries(&b.queries) {
		if k.account == account && (includeDeleted || !q.Deleted) {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func entries[V any](m *util.SyncMap[key, V]) map[key]V {
	out := map[key]V{}
	for _, k := range m.Keys() {
		if v, ok := m.GetCheck(k); ok {
			out[k] = v
		}
	}
	return out
}

func newID() string {
	return uuid.NewString()
}

func (b *Backend) encode(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		b.Log.Error(err, "error encoding response", "method", r.Method, "path", r.URL.Path)
	}
}

func (b *Backend) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	b.encode(w, r, status, map[string]string{"error": msg})
}
