package entity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alumnet/reunion/pkg/constant"
)

// NowUnixMilli returns current unix timestamp in milliseconds
func NowUnixMilli() int64 {
	return time.Now().UnixMilli()
}

// GenDirectKey generates the deterministic key of a direct conversation.
// Format: di_{min(userA,userB)}:{max(userA,userB)}
// Uses ":" as separator between userIds to support userIds containing "_".
// A unique index on this key is what makes direct-conversation creation
// idempotent even under concurrent creation by both parties.
func GenDirectKey(userA, userB string) string {
	users := []string{userA, userB}
	sort.Strings(users)
	return fmt.Sprintf("%s%s:%s", constant.DirectKeyPrefix, users[0], users[1])
}

// DirectKeyContains checks whether userId is one of the two participants
// encoded in a direct key.
func DirectKeyContains(directKey, userId string) bool {
	if !strings.HasPrefix(directKey, constant.DirectKeyPrefix) {
		return false
	}
	pair := directKey[len(constant.DirectKeyPrefix):]
	idx := strings.Index(pair, ":")
	if idx == -1 {
		return false
	}
	return pair[:idx] == userId || pair[idx+1:] == userId
}

// MessagePreview returns the directory preview text for a message.
// Media messages collapse to a type marker, text messages show as-is.
func MessagePreview(messageType string, content *string) string {
	switch messageType {
	case constant.MessageTypeImage:
		return "📷 Photo"
	case constant.MessageTypeVideo:
		return "🎥 Video"
	default:
		if content != nil {
			return *content
		}
		return ""
	}
}

// FormatMessageTime renders a message timestamp relative to now:
// today shows the clock time, yesterday shows "Yesterday", anything
// older shows the date.
func FormatMessageTime(tsMilli int64, now time.Time) string {
	ts := time.UnixMilli(tsMilli).In(now.Location())

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	switch {
	case !ts.Before(today):
		return ts.Format("15:04")
	case !ts.Before(yesterday):
		return "Yesterday"
	default:
		return ts.Format("Jan 2, 2006")
	}
}
