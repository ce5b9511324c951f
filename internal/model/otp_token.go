package model

// OtpToken rows are append-only. A user may own many rows over time;
// only the most recently created one is ever consulted for validation.
// Seq is assigned by the database on insert and orders rows created
// within the same second.
type OtpToken struct {
	ID        string `json:"id"`
	Seq       int64  `json:"seq"`
	UserID    string `json:"user_id"`
	Code      string `json:"code"`
	Ctime     int64  `json:"ctime"`
	ExpiresAt int64  `json:"expires_at"`
}
