package model

type ReadingNote struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	BookID   string `json:"book_id"`
	Note     string `json:"note"`
	IsPublic int    `json:"is_public"`
	Ctime    int64  `json:"ctime"`
	Mtime    int64  `json:"mtime"`
}
