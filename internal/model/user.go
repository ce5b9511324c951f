package model

const (
	UserInactive = 0
	UserActive   = 1
)

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	IsActive     int    `json:"is_active"`
	IsVerified   int    `json:"is_verified"`
	Ctime        int64  `json:"ctime"`
	Mtime        int64  `json:"mtime"`
}
