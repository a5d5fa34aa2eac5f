package tmdb

import (
	"fmt"
	"net/url"
	"strconv"
)

// Trending returns the trending movies for a period ("day" or "week")
func (c *Client) Trending(period string) ([]Movie, error) {
	var resp movieListResponse
	if err := c.get("/trending/movie/"+period, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SearchMovies searches movie titles, adult content excluded
func (c *Client) SearchMovies(query string, page int) ([]Movie, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")

	var resp movieListResponse
	if err := c.get("/search/movie", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SearchPerson searches people by name, adult content excluded
func (c *Client) SearchPerson(query string) ([]Person, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")

	var resp personListResponse
	if err := c.get("/search/person", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// PersonMovieCredits returns a person's filmography, cast credits first,
// deduplicated by movie id
func (c *Client) PersonMovieCredits(personID int) ([]Movie, error) {
	var resp creditsResponse
	if err := c.get(fmt.Sprintf("/person/%d/movie_credits", personID), nil, &resp); err != nil {
		return nil, err
	}
	return dedupeMovies(resp.Cast, resp.Crew), nil
}

// Genres returns the full movie genre list
func (c *Client) Genres() ([]Genre, error) {
	var resp genreListResponse
	if err := c.get("/genre/movie/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// DiscoverByGenre returns movies of a genre, most popular first
func (c *Client) DiscoverByGenre(genreID, page int) ([]Movie, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))

	var resp movieListResponse
	if err := c.get("/discover/movie", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// MovieDetails returns the full details object for a movie
func (c *Client) MovieDetails(movieID int) (*MovieDetails, error) {
	var details MovieDetails
	if err := c.get(fmt.Sprintf("/movie/%d", movieID), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// MovieVideos returns the videos attached to a movie
func (c *Client) MovieVideos(movieID int) ([]Video, error) {
	params := url.Values{}
	params.Set("language", "en-US")

	var resp videoListResponse
	if err := c.get(fmt.Sprintf("/movie/%d/videos", movieID), params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// PosterURL builds the poster image URL for a poster path.
// Returns the empty string when the movie has no poster. No network call.
func PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return imageBaseURL + posterPath
}

// TrailerURL picks the first YouTube trailer or teaser and returns its watch
// URL, or the empty string when none exists. No network call.
func TrailerURL(videos []Video) string {
	for _, v := range videos {
		if v.Site == "YouTube" && (v.Type == "Trailer" || v.Type == "Teaser") {
			return youtubeURL + v.Key
		}
	}
	return ""
}

// dedupeMovies concatenates cast and crew credits and drops duplicate movie
// ids, keeping first-seen order so cast entries win
func dedupeMovies(cast, crew []Movie) []Movie {
	seen := make(map[int]bool)
	var unique []Movie
	for _, m := range append(append([]Movie{}, cast...), crew...) {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		unique = append(unique, m)
	}
	return unique
}
