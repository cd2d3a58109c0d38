package suggestionstest

import (
	"net/http/httptest"

	"github.com/insightapi/suggestions-client-go/location"
	"github.com/insightapi/suggestions-client-go/transport"
)

// Server is a Backend listening on a local httptest server.
type Server struct {
	*httptest.Server
	Backend   *Backend
	Locations *location.Table
}

// NewServer starts backend and registers its URL for location.InsightAPI.
// Callers must Close the server.
func NewServer(backend *Backend) *Server {
	s := httptest.NewServer(backend.Handler())
	return &Server{
		Server:    s,
		Backend:   backend,
		Locations: location.MustNewTable(map[location.Stack]string{location.InsightAPI: s.URL}),
	}
}

// Transport returns an HTTP transport resolving stacks against this server.
func (s *Server) Transport(options ...transport.Option) (*transport.HTTPClient, error) {
	options = append([]transport.Option{transport.WithHTTPClient(s.Client())}, options...)
	return transport.New(s.Locations, options...)
}
