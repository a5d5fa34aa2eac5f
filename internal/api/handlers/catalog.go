package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jmorel/goflick/internal/auth"
	"github.com/jmorel/goflick/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

// CatalogHandler serves movie discovery endpoints backed by the catalog client
type CatalogHandler struct {
	client   *tmdb.Client
	sessions *auth.SessionManager
	logger   *logrus.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(client *tmdb.Client, sessions *auth.SessionManager, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		client:   client,
		sessions: sessions,
		logger:   logger,
	}
}

// requireSession resolves the session token or writes a 401
func (h *CatalogHandler) requireSession(w http.ResponseWriter, r *http.Request) *auth.Session {
	session := h.sessions.Get(r.Header.Get(SessionTokenHeader))
	if session == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return nil
	}
	return session
}

// writeCatalogError maps catalog client failures onto HTTP responses
func (h *CatalogHandler) writeCatalogError(w http.ResponseWriter, err error) {
	if errors.Is(err, tmdb.ErrMissingCredential) {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	var reqErr *tmdb.RequestError
	if errors.As(err, &reqErr) {
		http.Error(w, reqErr.Error(), http.StatusBadGateway)
		return
	}
	h.logger.WithError(err).Error("Catalog request failed")
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// pageParam parses the page query parameter, defaulting to 1
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Trending handles GET /api/movies/trending
func (h *CatalogHandler) Trending(w http.ResponseWriter, r *http.Request) {
	if h.requireSession(w, r) == nil {
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "day"
	}
	if period != "day" && period != "week" {
		http.Error(w, "period must be 'day' or 'week'", http.StatusBadRequest)
		return
	}

	movies, err := h.client.Trending(period)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// SearchMovies handles GET /api/movies/search
func (h *CatalogHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	if h.requireSession(w, r) == nil {
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	movies, err := h.client.SearchMovies(query, pageParam(r))
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// Discover handles GET /api/movies/discover
func (h *CatalogHandler) Discover(w http.ResponseWriter, r *http.Request) {
	if h.requireSession(w, r) == nil {
		return
	}

	genreID, err := strconv.Atoi(r.URL.Query().Get("genre_id"))
	if err != nil {
		http.Error(w, "genre_id is required", http.StatusBadRequest)
		return
	}

	movies, err := h.client.DiscoverByGenre(genreID, pageParam(r))
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// movieDetailsResponse augments the catalog details with derived URLs
type movieDetailsResponse struct {
	*tmdb.MovieDetails
	PosterURL  string `json:"poster_url,omitempty"`
	TrailerURL string `json:"trailer_url,omitempty"`
}

// MovieDetails handles GET /api/movies/{id}
func (h *CatalogHandler) MovieDetails(w http.ResponseWriter, r *http.Request) {
	if h.requireSession(w, r) == nil {
		return
	}

	movieID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid movie id", http.StatusBadRequest)
		return
	}

	details, err := h.client.MovieDetails(movieID)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	response := movieDetailsResponse{
		MovieDetails: details,
		PosterURL:    tmdb.PosterURL(details.PosterPath),
	}

	// The detail view still renders without a trailer
	videos, err := h.client.MovieVideos(movieID)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to fetch movie videos")
	} else {
		response.TrailerURL = tmdb.TrailerURL(videos)
	}

	writeJSON(w, http.StatusOK, response)
}

// MovieVideos handles GET /api/movies/{id}/videos
func (h *CatalogHandler) MovieVideos(w http.ResponseWriter, r *http.Request) {
	if h.requireSession(w, r) == nil {
		return
	}

	movieID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid movie id", http.StatusBadRequest)
		return
	}

	videos, err := h.client.MovieVideos(movieID)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

// SearchPeople handles GET /api/people/search
func (h *CatalogHandler) SearchPeople(w http.ResponseWriter, r *http.Request) {
	if h.requireSession(w, r) == nil {
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	people, err := h.client.SearchPerson(query)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, people)
}

// PersonCredits handles GET /api/people/{id}/credits
func (h *CatalogHandler) PersonCredits(w http.ResponseWriter, r *http.Request) {
	if h.requireSession(w, r) == nil {
		return
	}

	personID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid person id", http.StatusBadRequest)
		return
	}

	movies, err := h.client.PersonMovieCredits(personID)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// Genres handles GET /api/genres
func (h *CatalogHandler) Genres(w http.ResponseWriter, r *http.Request) {
	if h.requireSession(w, r) == nil {
		return
	}

	genres, err := h.client.Genres()
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}
