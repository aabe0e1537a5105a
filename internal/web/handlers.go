package web

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/repocrawl/internal/dungeon"
	"github.com/samdwyer/repocrawl/internal/telemetry"
	"github.com/samdwyer/repocrawl/internal/web/views"
)

// minMapSide keeps maps explorable for users with only a handful of
// repositories.
const minMapSide = 16

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	templ.Handler(views.Index()).ServeHTTP(w, r)
}

// handleMap fetches the user's repositories and renders their dungeon.
// The repository count drives the map: a side of half the count and one
// room and one door per repository.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	tracer := telemetry.Tracer("web")
	ctx, span := tracer.Start(r.Context(), "web.map")
	defer span.End()

	username := strings.TrimSpace(r.FormValue("username"))
	if username == "" {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("map.username", username))

	repos, err := s.github.Repos(ctx, username)
	if err != nil {
		log.Printf("fetch repos for %s: %v", username, err)
		http.Error(w, "could not fetch repositories", http.StatusBadGateway)
		return
	}

	side := max(minMapSide, len(repos)/2)
	m, err := dungeon.Generate(ctx, dungeon.Config{
		Width:      side,
		Height:     side,
		RoomCount:  len(repos),
		DoorCount:  len(repos),
		Strategy:   dungeon.StrategyScatter,
		MaxRetries: s.cfg.MapRetries,
	}, rand.New(rand.NewSource(newSeed())))
	if err != nil {
		log.Printf("generate map for %s: %v", username, err)
		http.Error(w, "map generation failed", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(
		attribute.Int("map.repo_count", len(repos)),
		attribute.Int("map.side", side),
		attribute.Int("map.room_count", len(m.Rooms)),
	)

	templ.Handler(views.MapPage(views.MapData{
		Username: username,
		Repos:    repos,
		Map:      m,
	})).ServeHTTP(w, r)
}

// mapResponse is the JSON contract for renderer clients: the raw grid in
// the fixed tile encoding plus the spawn coordinate.
type mapResponse struct {
	Grid  [][]int   `json:"grid"`
	Spawn *mapPoint `json:"spawn"`
}

type mapPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// handleAPIMap generates a map from query parameters. An explicit seed
// makes the response reproducible.
func (s *Server) handleAPIMap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cfg := dungeon.Config{
		Width:      intParam(q.Get("width"), minMapSide),
		Height:     intParam(q.Get("height"), minMapSide),
		RoomCount:  intParam(q.Get("rooms"), 5),
		DoorCount:  intParam(q.Get("doors"), 3),
		MaxRetries: s.cfg.MapRetries,
	}
	if q.Get("strategy") == "bsp" {
		cfg.Strategy = dungeon.StrategyBSP
	}

	seed := newSeed()
	if raw := q.Get("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		seed = parsed
	}

	m, err := dungeon.Generate(r.Context(), cfg, rand.New(rand.NewSource(seed)))
	switch {
	case errors.Is(err, dungeon.ErrInvalidDimensions):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := mapResponse{Grid: m.Grid.Ints()}
	if m.HasSpawn() {
		resp.Spawn = &mapPoint{X: m.SpawnX, Y: m.SpawnY}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("encode map response: %v", err)
	}
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
