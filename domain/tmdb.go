package domain

// Response shapes for the TMDB v3 API endpoints the ingestion pipeline hits.

type TMDBDiscoverResponse struct {
	Page         int                 `json:"page"`
	Results      []TMDBDiscoverEntry `json:"results"`
	TotalPages   int                 `json:"total_pages"`
	TotalResults int                 `json:"total_results"`
}

type TMDBDiscoverEntry struct {
	ID uint64 `json:"id"`
}

type TMDBTVDetails struct {
	ID               uint64          `json:"id"`
	Name             string          `json:"name"`
	Overview         string          `json:"overview"`
	Popularity       float64         `json:"popularity"`
	PosterPath       *string         `json:"poster_path"`
	OriginalLanguage string          `json:"original_language"`
	OriginCountry    []string        `json:"origin_country"`
	Status           string          `json:"status"`
	Adult            bool            `json:"adult"`
	FirstAirDate     string          `json:"first_air_date"`
	LastAirDate      string          `json:"last_air_date"`
	NumberOfSeasons  *int            `json:"number_of_seasons"`
	NumberOfEpisodes *int            `json:"number_of_episodes"`
	Genres           []TMDBGenre     `json:"genres"`
}

type TMDBGenre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type TMDBKeywordsResponse struct {
	ID      uint64        `json:"id"`
	Results []TMDBKeyword `json:"results"`
}

type TMDBKeyword struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type TMDBContentRatingsResponse struct {
	ID      uint64              `json:"id"`
	Results []TMDBContentRating `json:"results"`
}

type TMDBContentRating struct {
	ISO3166 string `json:"iso_3166_1"`
	Rating  string `json:"rating"`
}

type TMDBWatchProvidersResponse struct {
	ID      uint64                         `json:"id"`
	Results map[string]TMDBCountryProviders `json:"results"`
}

type TMDBCountryProviders struct {
	Flatrate []TMDBProvider `json:"flatrate"`
}

type TMDBProvider struct {
	ProviderID   int64   `json:"provider_id"`
	ProviderName string  `json:"provider_name"`
	LogoPath     *string `json:"logo_path"`
}

// TMDBSeries is the aggregate of all per-series TMDB endpoints after
// normalization, ready to be upserted into the catalog.
type TMDBSeries struct {
	Series    Series
	Genres    []TMDBGenre
	Keywords  []TMDBKeyword
	Providers []TMDBProvider
}
