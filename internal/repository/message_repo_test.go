package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockRepoDB opens a gorm DB backed by sqlmock. Default transactions
// are skipped so write expectations are plain Exec calls.
func newMockRepoDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gdb, mock
}

func TestCountUnreadByConversations(t *testing.T) {
	gdb, mock := newMockRepoDB(t)
	repo := NewMessageRepo(gdb)

	rows := sqlmock.NewRows([]string{"conversation_id", "cnt"}).
		AddRow("c1", 2).
		AddRow("c2", 5)
	mock.ExpectQuery("SELECT m.conversation_id AS conversation_id").WillReturnRows(rows)

	counts, err := repo.CountUnreadByConversations(context.Background(), "u1", []string{"c1", "c2", "c3"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), counts["c1"])
	assert.Equal(t, int64(5), counts["c2"])

	// A conversation with no unread rows reads as zero
	assert.Equal(t, int64(0), counts["c3"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUnreadByConversationsEmpty(t *testing.T) {
	gdb, mock := newMockRepoDB(t)
	repo := NewMessageRepo(gdb)

	// No conversations means no query at all
	counts, err := repo.CountUnreadByConversations(context.Background(), "u1", nil)
	assert.NoError(t, err)
	assert.Empty(t, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUnreadTotal(t *testing.T) {
	gdb, mock := newMockRepoDB(t)
	repo := NewMessageRepo(gdb)

	rows := sqlmock.NewRows([]string{"conversation_id", "cnt"}).
		AddRow("c1", 2).
		AddRow("c2", 3)
	mock.ExpectQuery("SELECT m.conversation_id AS conversation_id").WillReturnRows(rows)

	total, err := repo.CountUnreadTotal(context.Background(), "u1", []string{"c1", "c2"})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestByConversations(t *testing.T) {
	gdb, mock := newMockRepoDB(t)
	repo := NewMessageRepo(gdb)

	rows := sqlmock.NewRows([]string{"id", "conversation_id", "sender_id", "content", "message_type", "media_url", "created_at"}).
		AddRow(int64(11), "c1", "u2", "hey", "text", nil, int64(1700000000000)).
		AddRow(int64(17), "c2", "u3", nil, "image", "https://cdn.example.com/p.jpg", int64(1700000001000))
	mock.ExpectQuery("FROM chat_messages m").WillReturnRows(rows)

	latest, err := repo.LatestByConversations(context.Background(), []string{"c1", "c2"})
	assert.NoError(t, err)
	require.Contains(t, latest, "c1")
	require.Contains(t, latest, "c2")

	assert.Equal(t, int64(11), latest["c1"].Id)
	assert.Equal(t, "u2", latest["c1"].SenderId)
	assert.Equal(t, "hey", *latest["c1"].Content)

	assert.Equal(t, "image", latest["c2"].MessageType)
	assert.Nil(t, latest["c2"].Content)

	assert.NoError(t, mock.ExpectationsWereMet())
}
