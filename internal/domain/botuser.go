package domain

import "time"

// BotUser is a Telegram user that has interacted with the bot at least
// once. Kept for operational visibility only
type BotUser struct {
	UserID    int64
	FirstName string
	LastName  string
	Username  string
	Language  string
	FirstSeen time.Time
}
