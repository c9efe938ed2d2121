package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"eatery_catalog/internal/app"
	"eatery_catalog/internal/domain"
)

const maxBodyBytes = 1 << 20

const notFoundDetail = "No eatery with that id"

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type eateryReq struct {
	ID *uint64 `json:"id"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("Hello world!")) })
	s.mux.Post("/echo", echo)
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/eateries", h.listEateries)
	s.mux.Get("/eateries/search", h.searchEateries)
	s.mux.Get("/eateries/{id}", h.getEateryByPath)
	s.mux.Post("/eatery", h.getEateryByBody)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON sends v with a weak ETag, answering 304 when the client has it.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// etagMatches applies the weak comparison If-None-Match calls for:
// "*" matches anything, otherwise any listed tag equal to etag once W/ is ignored.
func etagMatches(inm, etag string) bool {
	if inm == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, tag := range strings.Split(inm, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || strings.TrimPrefix(tag, "W/") == want {
			return true
		}
	}
	return false
}

func echo(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeProblem(w, http.StatusRequestEntityTooLarge, "Payload Too Large", "")
		return
	}
	_, _ = w.Write(b)
}

func (h *Handlers) listEateries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, domain.EateryList{Restaurants: h.Q.List(r.Context())})
}

func (h *Handlers) searchEateries(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	writeJSON(w, r, domain.EateryList{Restaurants: h.Q.SearchByName(r.Context(), name)})
}

func (h *Handlers) getEateryByPath(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a non-negative integer")
		return
	}
	h.writeEatery(w, r, id)
}

func (h *Handlers) getEateryByBody(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var req eateryReq
	if err := dec.Decode(&req); err != nil || req.ID == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid request", `body must be {"id": <non-negative integer>}`)
		return
	}
	h.writeEatery(w, r, *req.ID)
}

func (h *Handlers) writeEatery(w http.ResponseWriter, r *http.Request, id uint64) {
	e, err := h.Q.GetByID(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", notFoundDetail)
		return
	}
	if err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("get eatery failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeJSON(w, r, e)
}
