package schema

// CoreComicTable represents the 'core.comic' table
type CoreComicTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Description string
	Author      string
	Artist      string
	CoverURL    string
	Rating      string
	Status      string
	IsFeatured  string
	CreatedAt   string
	UpdatedAt   string
}

// CoreComic is the schema definition for core.comic
var CoreComic = CoreComicTable{
	Table:       "core.comic",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Description: "description",
	Author:      "author",
	Artist:      "artist",
	CoverURL:    "coverurl",
	Rating:      "rating",
	Status:      "status",
	IsFeatured:  "isfeatured",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreComicTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Description, t.Author, t.Artist,
		t.CoverURL, t.Rating, t.Status, t.IsFeatured, t.CreatedAt, t.UpdatedAt,
	}
}
