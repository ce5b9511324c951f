package model

type Book struct {
	ID            string `json:"id"`
	GoogleBooksID string `json:"google_books_id"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	Description   string `json:"description"`
	CoverImage    string `json:"cover_image"`
	InfoLink      string `json:"info_link"`
	PreviewLink   string `json:"preview_link"`
	PublishedDate string `json:"published_date"`
	PageCount     int    `json:"page_count"`
	Categories    string `json:"categories"`
	IsCurated     int    `json:"is_curated"`
	IsFeatured    int    `json:"is_featured"`
	ViewCount     int64  `json:"view_count"`
	Ctime         int64  `json:"ctime"`
	Mtime         int64  `json:"mtime"`
}
