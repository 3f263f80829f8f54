// Package handler provides HTTP handlers for all API endpoints. Handlers
// read from the feed service's cache; the providers are never hit more than
// once per TTL regardless of request volume.
package handler

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/scorewire/gamefeed/internal/api/respond"
	"github.com/scorewire/gamefeed/internal/feed"
	"github.com/scorewire/gamefeed/internal/teams"
	"github.com/scorewire/gamefeed/pkg/gamestate"
)

// snapshotContentType is the media type for the length-prefixed binary
// snapshot payload.
const snapshotContentType = "application/x-protobuf"

// ScoreFeed is the slice of the feed service the handlers use.
type ScoreFeed interface {
	Scores(ctx context.Context, sports []gamestate.Sport) (map[string][]gamestate.Game, error)
	ScoresFor(ctx context.Context, sport gamestate.Sport) ([]gamestate.Game, error)
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	feed ScoreFeed
}

// New creates a Handler with shared dependencies.
func New(f ScoreFeed) *Handler {
	return &Handler{feed: f}
}

// Root serves API info at /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "Gamefeed API",
		"version": "1.0.0",
		"status":  "running",
		"sports":  feed.AllSportIDs(),
	})
}

// HealthCheck returns basic health status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Sports lists the sport ids the feed serves.
func (h *Handler) Sports(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sports": feed.AllSportIDs(),
	})
}

// Scores returns the current slate keyed by sport id. With no query every
// sport is included; ?sports=hockey,golf narrows the set.
func (h *Handler) Scores(w http.ResponseWriter, r *http.Request) {
	sports := feed.AllSports()
	if q := r.URL.Query().Get("sports"); q != "" {
		sports = sports[:0]
		for _, id := range strings.Split(q, ",") {
			s, err := feed.ParseSport(strings.TrimSpace(id))
			if err != nil {
				respond.WriteError(w, http.StatusBadRequest, "UNKNOWN_SPORT", err.Error())
				return
			}
			sports = append(sports, s)
		}
	}
	scores, err := h.feed.Scores(r.Context(), sports)
	if err != nil {
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, scores)
}

// ScoresSport returns the current slate for one sport.
func (h *Handler) ScoresSport(w http.ResponseWriter, r *http.Request) {
	sport, ok := h.sportParam(w, r)
	if !ok {
		return
	}
	games, err := h.feed.ScoresFor(r.Context(), sport)
	if err != nil {
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, games)
}

// Teams lists the registry teams for one sport, sorted by feed id.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	sport, ok := h.sportParam(w, r)
	if !ok {
		return
	}
	registry, ok := teams.ForSport(sport)
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "NO_REGISTRY", "sport has no team registry")
		return
	}
	list := make([]gamestate.Team, 0, len(registry))
	for _, t := range registry {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	respond.WriteJSON(w, http.StatusOK, list)
}

// Snapshot returns one sport's slate as a binary stream: each game encoded
// in the wire format, preceded by its varint byte length.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	sport, ok := h.sportParam(w, r)
	if !ok {
		return
	}
	games, err := h.feed.ScoresFor(r.Context(), sport)
	if err != nil {
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		return
	}

	var buf []byte
	for i := range games {
		data, err := games[i].MarshalBinary()
		if err != nil {
			respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR", err.Error())
			return
		}
		buf = protowire.AppendVarint(buf, uint64(len(data)))
		buf = append(buf, data...)
	}
	respond.WriteBinary(w, snapshotContentType, buf)
}

func (h *Handler) sportParam(w http.ResponseWriter, r *http.Request) (gamestate.Sport, bool) {
	sport, err := feed.ParseSport(chi.URLParam(r, "sportID"))
	if err != nil {
		respond.WriteError(w, http.StatusNotFound, "UNKNOWN_SPORT", err.Error())
		return gamestate.Sport{}, false
	}
	return sport, true
}
