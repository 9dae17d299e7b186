// Package featuretest provides a recording stand-in for the gateway proxy
// used by the feature client tests.
package featuretest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poskit/pos-gateway/internal/relay"
)

// Call is one request seen by the gateway.
type Call struct {
	Method string
	Path   string
	Query  string
	Body   string
}

type reply struct {
	status int
	body   string
}

// Gateway answers "METHOD /path" routes under /api/proxy with canned JSON.
type Gateway struct {
	Server *httptest.Server

	mu      sync.Mutex
	replies map[string]reply
	calls   []Call
}

// NewGateway starts a gateway closed at test cleanup.
func NewGateway(t *testing.T) *Gateway {
	t.Helper()
	g := &Gateway{replies: map[string]reply{}}
	g.Server = httptest.NewServer(http.HandlerFunc(g.serve))
	t.Cleanup(g.Server.Close)
	return g
}

// Reply registers the answer for method and backend path (without /api/proxy).
func (g *Gateway) Reply(method, path string, status int, body string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies[method+" /api/proxy"+path] = reply{status: status, body: body}
}

// Last returns the most recent call.
func (g *Gateway) Last(t *testing.T) Call {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	require.NotEmpty(t, g.calls, "no call reached the gateway")
	return g.calls[len(g.calls)-1]
}

// Calls returns the number of calls seen.
func (g *Gateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// Client builds a relay client against the gateway.
func (g *Gateway) Client(t *testing.T) *relay.Client {
	t.Helper()
	c, err := relay.NewClient(g.Server.URL)
	require.NoError(t, err)
	return c
}

func (g *Gateway) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	g.mu.Lock()
	g.calls = append(g.calls, Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body)})
	rep, ok := g.replies[r.Method+" "+r.URL.Path]
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Cannot `+r.Method+` `+r.URL.Path+`","statusCode":404}`)
		return
	}
	if rep.status != 0 {
		w.WriteHeader(rep.status)
	}
	_, _ = io.WriteString(w, rep.body)
}
