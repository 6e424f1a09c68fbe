package domain

// Rating values as submitted by the presentation layer.
const (
	RatingLike    = 1
	RatingDislike = -1
)

// Rating is a single like/dislike signal for a series. IsAnchor marks a liked
// series the user considers a strong reference point; it carries double
// weight during profile aggregation.
type Rating struct {
	TMDBID   uint64 `json:"tmdb_id"`
	Rating   int    `json:"rating"`
	IsAnchor bool   `json:"is_anchor"`
}

// RecommendationFilters narrows the candidate pool before any similarity
// work. Categories combine with AND, values within a category with OR.
// A nil/empty slice means "don't filter on this category".
type RecommendationFilters struct {
	Languages []string `json:"languages"`
	Status    []string `json:"status"`
	Decades   []int    `json:"decades"`
	Genres    []int64  `json:"genres"`
}

// Recommendation is one ranked result enriched with catalog metadata.
type Recommendation struct {
	TMDBID           uint64   `json:"tmdb_id"`
	Score            float64  `json:"score"`
	TitleEn          string   `json:"title_en"`
	TitleHe          string   `json:"title_he"`
	Overview         string   `json:"overview"`
	Popularity       float64  `json:"popularity"`
	PosterPath       *string  `json:"poster_path"`
	FirstAirDate     string   `json:"first_air_date,omitempty"`
	Status           string   `json:"status"`
	OriginCountry    string   `json:"origin_country"`
	NumberOfSeasons  *int     `json:"number_of_seasons"`
	NumberOfEpisodes *int     `json:"number_of_episodes"`
	ContentRating    string   `json:"content_rating"`
	Genres           []string `json:"genres"`
}

// RecommendationResult is what the orchestrator returns to the presentation
// layer. Reason is empty on success; otherwise it carries a machine-readable
// code explaining why the list is empty.
type RecommendationResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Reason          string           `json:"reason,omitempty"`
}

// CatalogStats summarizes the catalog for the stats endpoint.
type CatalogStats struct {
	TotalSeries int64            `json:"total_series"`
	ByLanguage  map[string]int64 `json:"by_language"`
	ByStatus    map[string]int64 `json:"by_status"`
	ByDecade    map[int]int64    `json:"by_decade"`
	TopGenres   map[string]int64 `json:"top_genres"`
}

// SeriesSummary is the compact listing shape used by search and popular
// endpoints, where full metadata would be wasted.
type SeriesSummary struct {
	TMDBID           uint64  `json:"tmdb_id"`
	TitleEn          string  `json:"title_en"`
	TitleHe          string  `json:"title_he"`
	PosterPath       *string `json:"poster_path"`
	OriginalLanguage string  `json:"original_language"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	Popularity       float64 `json:"popularity"`
}

// SeriesDetails is the full per-series view for the details endpoint.
type SeriesDetails struct {
	Series
	Genres []string `json:"genres"`
}
