package model

type Theme struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Tagline   string `json:"tagline"`
	SortOrder int    `json:"sort_order"`
	IsActive  int    `json:"is_active"`
	Ctime     int64  `json:"ctime"`
}

type BookTheme struct {
	BookID      string `json:"book_id"`
	ThemeID     string `json:"theme_id"`
	CuratorPick int    `json:"curator_pick"`
	SortOrder   int    `json:"sort_order"`
	Ctime       int64  `json:"ctime"`
}
