// Package web hosts the HTTP surface: the landing page, the map view,
// and a JSON map endpoint.
package web

import (
	crand "crypto/rand"
	"embed"
	"encoding/binary"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/repocrawl/internal/config"
	"github.com/samdwyer/repocrawl/internal/github"
)

//go:embed static
var staticFS embed.FS

// Server routes HTTP requests to the map and repository handlers.
type Server struct {
	cfg    config.Config
	github *github.Client
	mux    *http.ServeMux
}

// New builds the HTTP server around a GitHub client.
func New(cfg config.Config, gh *github.Client) *Server {
	s := &Server{cfg: cfg, github: gh, mux: http.NewServeMux()}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /map", s.handleMap)
	s.mux.HandleFunc("GET /api/map", s.handleAPIMap)
	s.mux.Handle("GET /static/", http.FileServerFS(staticFS))

	return s
}

// Handler returns the routed handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return requestID(s.mux)
}

// requestID tags every request with a UUID in the response headers and
// the log output.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s %s", id, r.Method, r.URL.Path, time.Since(start))
	})
}

// newSeed draws a map seed from crypto/rand, falling back to the clock
// when the system source is unavailable.
func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		log.Printf("random seed: %v", err)
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
