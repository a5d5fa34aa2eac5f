package tmdb

// Movie represents a movie record returned by the catalog
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// MovieDetails is the full movie object from the details endpoint
type MovieDetails struct {
	Movie
	Tagline string  `json:"tagline"`
	Runtime int     `json:"runtime"`
	Genres  []Genre `json:"genres"`
}

// Person represents a person record (actor, director)
type Person struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Genre represents a movie genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video represents a video attached to a movie (trailer, teaser, clip)
type Video struct {
	Site string `json:"site"`
	Type string `json:"type"`
	Key  string `json:"key"`
}

// Response envelopes. Absent fields decode to empty slices.

type movieListResponse struct {
	Results []Movie `json:"results"`
}

type personListResponse struct {
	Results []Person `json:"results"`
}

type creditsResponse struct {
	Cast []Movie `json:"cast"`
	Crew []Movie `json:"crew"`
}

type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

type videoListResponse struct {
	Results []Video `json:"results"`
}
