package domain

import (
	"time"
)

// CREATE TABLE public.series (
//     tmdb_id             BIGINT PRIMARY KEY,
//     title_he            TEXT,
//     title_en            TEXT,
//     overview            TEXT,
//     popularity          NUMERIC,
//     poster_path         TEXT,
//     original_language   TEXT,
//     origin_country      TEXT,
//     status              TEXT,
//     adult               BOOLEAN DEFAULT FALSE,
//     first_air_date      DATE,
//     last_air_date       DATE,
//     number_of_seasons   INT,
//     number_of_episodes  INT,
//     content_rating      TEXT,
//     created_at          TIMESTAMPTZ DEFAULT NOW()
// );

// Series is a catalog item as ingested from TMDB. Attributes that can be
// missing upstream are pointers; a nil value means "unknown" and every
// similarity dimension treats it as zero similarity.
type Series struct {
	TMDBID           uint64     `gorm:"primaryKey;column:tmdb_id" json:"tmdb_id"`
	TitleHe          string     `gorm:"column:title_he;type:text" json:"title_he"`
	TitleEn          string     `gorm:"column:title_en;type:text" json:"title_en"`
	Overview         string     `gorm:"column:overview;type:text" json:"overview"`
	Popularity       float64    `gorm:"column:popularity;type:numeric" json:"popularity"`
	PosterPath       *string    `gorm:"column:poster_path;type:text" json:"poster_path"`
	OriginalLanguage string     `gorm:"column:original_language;type:text" json:"original_language"`
	OriginCountry    string     `gorm:"column:origin_country;type:text" json:"origin_country"`
	Status           string     `gorm:"column:status;type:text" json:"status"`
	Adult            bool       `gorm:"column:adult;default:false" json:"adult"`
	FirstAirDate     *time.Time `gorm:"column:first_air_date;type:date" json:"first_air_date"`
	LastAirDate      *time.Time `gorm:"column:last_air_date;type:date" json:"last_air_date"`
	NumberOfSeasons  *int       `gorm:"column:number_of_seasons" json:"number_of_seasons"`
	NumberOfEpisodes *int       `gorm:"column:number_of_episodes" json:"number_of_episodes"`
	ContentRating    string     `gorm:"column:content_rating;type:text" json:"content_rating"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"-"`
}

func (Series) TableName() string {
	return "series"
}

// CREATE TABLE public.genres (
//     genre_id        BIGINT PRIMARY KEY,
//     genre_name      TEXT NOT NULL,
//     main_category   TEXT
// );

type Genre struct {
	GenreID      int64  `gorm:"primaryKey;column:genre_id" json:"genre_id"`
	GenreName    string `gorm:"column:genre_name;type:text;not null" json:"genre_name"`
	MainCategory string `gorm:"column:main_category;type:text" json:"main_category"`
}

func (Genre) TableName() string {
	return "genres"
}

// CREATE TABLE public.series_genres (
//     tmdb_id     BIGINT REFERENCES series(tmdb_id),
//     genre_id    BIGINT REFERENCES genres(genre_id),
//     PRIMARY KEY (tmdb_id, genre_id)
// );

type SeriesGenre struct {
	TMDBID  uint64 `gorm:"primaryKey;column:tmdb_id" json:"tmdb_id"`
	GenreID int64  `gorm:"primaryKey;column:genre_id" json:"genre_id"`
}

func (SeriesGenre) TableName() string {
	return "series_genres"
}

// CREATE TABLE public.keywords (
//     keyword_id  BIGINT PRIMARY KEY,
//     name        TEXT NOT NULL
// );

type Keyword struct {
	KeywordID int64  `gorm:"primaryKey;column:keyword_id" json:"keyword_id"`
	Name      string `gorm:"column:name;type:text;not null" json:"name"`
}

func (Keyword) TableName() string {
	return "keywords"
}

// CREATE TABLE public.series_keywords (
//     tmdb_id     BIGINT REFERENCES series(tmdb_id),
//     keyword_id  BIGINT REFERENCES keywords(keyword_id),
//     position    INT NOT NULL DEFAULT 0,
//     PRIMARY KEY (tmdb_id, keyword_id)
// );

// SeriesKeyword links a series to a keyword. Position preserves the upstream
// relevance order so the engine can truncate to the top keywords.
type SeriesKeyword struct {
	TMDBID    uint64 `gorm:"primaryKey;column:tmdb_id" json:"tmdb_id"`
	KeywordID int64  `gorm:"primaryKey;column:keyword_id" json:"keyword_id"`
	Position  int    `gorm:"column:position;not null;default:0" json:"position"`
}

func (SeriesKeyword) TableName() string {
	return "series_keywords"
}

// CREATE TABLE public.streaming_providers (
//     provider_id     BIGINT PRIMARY KEY,
//     provider_name   TEXT NOT NULL,
//     logo_path       TEXT
// );

type StreamingProvider struct {
	ProviderID   int64   `gorm:"primaryKey;column:provider_id" json:"provider_id"`
	ProviderName string  `gorm:"column:provider_name;type:text;not null" json:"provider_name"`
	LogoPath     *string `gorm:"column:logo_path;type:text" json:"logo_path"`
}

func (StreamingProvider) TableName() string {
	return "streaming_providers"
}

// CREATE TABLE public.series_availability (
//     tmdb_id         BIGINT REFERENCES series(tmdb_id),
//     provider_id     BIGINT REFERENCES streaming_providers(provider_id),
//     country_code    TEXT NOT NULL,
//     PRIMARY KEY (tmdb_id, provider_id, country_code)
// );

type SeriesAvailability struct {
	TMDBID      uint64 `gorm:"primaryKey;column:tmdb_id" json:"tmdb_id"`
	ProviderID  int64  `gorm:"primaryKey;column:provider_id" json:"provider_id"`
	CountryCode string `gorm:"primaryKey;column:country_code;type:text" json:"country_code"`
}

func (SeriesAvailability) TableName() string {
	return "series_availability"
}
