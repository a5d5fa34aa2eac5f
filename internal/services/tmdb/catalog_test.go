package tmdb

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDedupeMovies(t *testing.T) {
	cast := []Movie{{ID: 1, Title: "Cast One"}, {ID: 2, Title: "Cast Two"}}
	crew := []Movie{{ID: 2, Title: "Crew Two"}, {ID: 3, Title: "Crew Three"}}

	result := dedupeMovies(cast, crew)

	if len(result) != 3 {
		t.Fatalf("Expected 3 movies, got %d", len(result))
	}
	for i, id := range []int{1, 2, 3} {
		if result[i].ID != id {
			t.Errorf("Expected id %d at position %d, got %d", id, i, result[i].ID)
		}
	}
	// Cast entry wins over crew for the same id
	if result[1].Title != "Cast Two" {
		t.Errorf("Expected cast entry to win for id 2, got '%s'", result[1].Title)
	}
}

func TestPersonMovieCredits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/person/42/movie_credits" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"cast": [{"id": 1, "title": "A"}, {"id": 2, "title": "B"}],
			"crew": [{"id": 2, "title": "B (director)"}, {"id": 3, "title": "C"}]
		}`))
	}))
	defer server.Close()

	client := newTestClient("shortkey00", server.URL)

	movies, err := client.PersonMovieCredits(42)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if len(movies) != 3 {
		t.Fatalf("Expected 3 deduplicated movies, got %d", len(movies))
	}
	if movies[0].ID != 1 || movies[1].ID != 2 || movies[2].ID != 3 {
		t.Errorf("Order not preserved: %+v", movies)
	}
}

func TestSearchMoviesParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("query") != "matrix" {
			t.Errorf("Expected query 'matrix', got '%s'", q.Get("query"))
		}
		if q.Get("page") != "2" {
			t.Errorf("Expected page 2, got '%s'", q.Get("page"))
		}
		if q.Get("include_adult") != "false" {
			t.Errorf("Expected adult filtering disabled, got '%s'", q.Get("include_adult"))
		}
		w.Write([]byte(`{"results": [{"id": 603, "title": "The Matrix"}]}`))
	}))
	defer server.Close()

	client := newTestClient("shortkey00", server.URL)

	movies, err := client.SearchMovies("matrix", 2)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if len(movies) != 1 || movies[0].ID != 603 {
		t.Errorf("Unexpected results: %+v", movies)
	}
}

func TestDiscoverByGenreParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("with_genres") != "28" {
			t.Errorf("Expected genre 28, got '%s'", q.Get("with_genres"))
		}
		if q.Get("sort_by") != "popularity.desc" {
			t.Errorf("Expected popularity sort, got '%s'", q.Get("sort_by"))
		}
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := newTestClient("shortkey00", server.URL)

	if _, err := client.DiscoverByGenre(28, 1); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
}

func TestGenres(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/genre/movie/list" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"genres": [{"id": 28, "name": "Action"}, {"id": 35, "name": "Comedy"}]}`))
	}))
	defer server.Close()

	client := newTestClient("shortkey00", server.URL)

	genres, err := client.Genres()
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if len(genres) != 2 || genres[0].Name != "Action" {
		t.Errorf("Unexpected genres: %+v", genres)
	}
}

func TestMovieVideosLanguagePinned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("language") != "en-US" {
			t.Errorf("Expected pinned language, got '%s'", r.URL.Query().Get("language"))
		}
		w.Write([]byte(`{"results": [{"site": "YouTube", "type": "Trailer", "key": "abc123"}]}`))
	}))
	defer server.Close()

	client := newTestClient("shortkey00", server.URL)

	videos, err := client.MovieVideos(603)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if len(videos) != 1 || videos[0].Key != "abc123" {
		t.Errorf("Unexpected videos: %+v", videos)
	}
}

func TestEmptyResultsDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No results field at all
		w.Write([]byte(`{"page": 1}`))
	}))
	defer server.Close()

	client := newTestClient("shortkey00", server.URL)

	movies, err := client.Trending("week")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if len(movies) != 0 {
		t.Errorf("Expected empty results for absent field, got %+v", movies)
	}
}

func TestPosterURL(t *testing.T) {
	if got := PosterURL(""); got != "" {
		t.Errorf("Expected empty string for missing poster, got '%s'", got)
	}
	if got := PosterURL("/abc.jpg"); got != "https://image.tmdb.org/t/p/w500/abc.jpg" {
		t.Errorf("Unexpected poster URL: '%s'", got)
	}
}

func TestTrailerURL(t *testing.T) {
	videos := []Video{
		{Site: "Vimeo", Type: "Trailer", Key: "skip-me"},
		{Site: "YouTube", Type: "Clip", Key: "also-skip"},
		{Site: "YouTube", Type: "Teaser", Key: "teaser1"},
		{Site: "YouTube", Type: "Trailer", Key: "trailer1"},
	}

	if got := TrailerURL(videos); got != "https://www.youtube.com/watch?v=teaser1" {
		t.Errorf("Expected first YouTube teaser/trailer, got '%s'", got)
	}
	if got := TrailerURL(nil); got != "" {
		t.Errorf("Expected empty string for no videos, got '%s'", got)
	}
}
