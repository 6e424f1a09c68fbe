package catalog

// Filter reference data. Users filter by main category; each category fans
// out to the underlying genre ids before the query runs.

var GenreCategories = map[string][]int64{
	"Action & Adventure": {10759, 37},
	"Animation":          {16},
	"Comedy":             {35},
	"Crime":              {80},
	"Documentary":        {99},
	"Drama":              {18, 10766},
	"Family":             {10751},
	"Kids":               {10762},
	"News":               {10763},
	"Reality":            {10764},
	"Romance":            {10749},
	"Sci-Fi & Fantasy":   {10765},
	"Talk Show":          {10767},
	"Thriller":           {9648},
	"War & Politics":     {10768},
}

var GenreIDToName = map[int64]string{
	10759: "Action & Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	10762: "Kids",
	9648:  "Mystery",
	10763: "News",
	10764: "Reality",
	10749: "Romance",
	10765: "Sci-Fi & Fantasy",
	10766: "Soap Opera",
	10767: "Talk Show",
	10768: "War & Politics",
	37:    "Western",
}

var LanguageNames = map[string]string{
	"en": "English",
	"he": "Hebrew",
	"es": "Spanish",
	"ja": "Japanese",
}

var ValidLanguages = []string{"en", "he", "es", "ja"}

var ValidStatuses = []string{"Running", "Ended"}

var ValidDecades = []int{1940, 1950, 1960, 1970, 1980, 1990, 2000, 2010, 2020}

// ExpandGenreCategories maps user-facing category names to the genre ids the
// filter query understands. Unknown names are skipped rather than failing
// the whole request.
func ExpandGenreCategories(names []string) []int64 {
	var ids []int64
	for _, name := range names {
		ids = append(ids, GenreCategories[name]...)
	}
	return ids
}
