package schema

// ComicGenreTable represents the 'core.comicgenre' table
type ComicGenreTable struct {
	Table   string
	ComicID string
	GenreID string
}

// ComicGenre is the schema definition for core.comicgenre
var ComicGenre = ComicGenreTable{
	Table:   "core.comicgenre",
	ComicID: "comicid",
	GenreID: "genreid",
}
