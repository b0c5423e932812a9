package entity

import "time"

// Presence represents a user's liveness row, upserted by heartbeat.
// The going-offline beacon is best effort: a crashed tab never clears
// is_online, so readers must also apply the staleness rule.
type Presence struct {
	UserId   string `json:"user_id" gorm:"column:user_id;primaryKey"`
	IsOnline bool   `json:"is_online" gorm:"column:is_online"`
	LastSeen int64  `json:"last_seen" gorm:"column:last_seen"`
}

// TableName returns the table name for Presence
func (Presence) TableName() string {
	return "user_presence"
}

// OnlineAt reports whether the row still counts as online at the given
// instant: the flag must be set and last_seen must not be stale.
func (p *Presence) OnlineAt(now time.Time, staleAfter time.Duration) bool {
	if !p.IsOnline {
		return false
	}
	return now.UnixMilli()-p.LastSeen <= staleAfter.Milliseconds()
}
