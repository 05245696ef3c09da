package model

import "time"

// セッションのカートを外部に保存するときの形。
// Itemsは表示順のまま保存し、復元時はそのまま並べ直す（マージしない）。
type CartSnapshot struct {
	SessionID string         `json:"session_id"`
	Items     []CartLineItem `json:"items"`
	SavedAt   time.Time      `json:"saved_at"`
}
