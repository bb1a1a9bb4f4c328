package schema

// CorePageTable represents the 'core.page' table
type CorePageTable struct {
	Table      string
	ID         string
	ChapterID  string
	PageNumber string
	ImageURL   string
	ObjectKey  string
	CreatedAt  string
}

// CorePage is the schema definition for core.page.
//
// imageurl is what readers load; objectkey is the bucket-relative key the
// image was uploaded under, kept so a deleted page can remove its object.
var CorePage = CorePageTable{
	Table:      "core.page",
	ID:         "id",
	ChapterID:  "chapterid",
	PageNumber: "pagenumber",
	ImageURL:   "imageurl",
	ObjectKey:  "objectkey",
	CreatedAt:  "createdat",
}

func (t CorePageTable) Columns() []string {
	return []string{t.ID, t.ChapterID, t.PageNumber, t.ImageURL, t.ObjectKey, t.CreatedAt}
}
