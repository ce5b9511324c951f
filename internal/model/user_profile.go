package model

type UserProfile struct {
	UserID string `json:"user_id"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
	Ctime  int64  `json:"ctime"`
	Mtime  int64  `json:"mtime"`
}

const (
	ShelfFavorite = "favorite"
	ShelfReading  = "reading"
	ShelfRead     = "read"
)

type ShelfEntry struct {
	UserID string `json:"user_id"`
	BookID string `json:"book_id"`
	Shelf  string `json:"shelf"`
	Ctime  int64  `json:"ctime"`
}
