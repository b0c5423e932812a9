package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alumnet/reunion/internal/repository"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockConversationService builds a ConversationService over a
// sqlmock-backed gorm DB.
func newMockConversationService(t *testing.T) (*ConversationService, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	repos := &repository.Repositories{
		DB:           gdb,
		Conversation: repository.NewConversationRepo(gdb),
		Message:      repository.NewMessageRepo(gdb),
		Profile:      repository.NewProfileRepo(gdb),
		Presence:     repository.NewPresenceRepo(gdb, nil),
	}

	return NewConversationService(repos), mock
}

// Creating a direct conversation that already exists must return the
// existing one instead of inserting a duplicate. ExpectationsWereMet
// proves no insert was issued.
func TestCreateDirectReturnsExisting(t *testing.T) {
	svc, mock := newMockConversationService(t)
	ctx := context.Background()

	mock.ExpectQuery("FROM `profiles` WHERE user_id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "display_name", "avatar_url", "created_at", "updated_at"}).
			AddRow(int64(2), "u2", "Beth", nil, int64(0), int64(0)))

	mock.ExpectQuery("FROM `chat_conversations` WHERE direct_key = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "name", "direct_key", "created_by", "created_at", "updated_at"}).
			AddRow("conv-1", "direct", "", "di_u1:u2", "u1", int64(1000), int64(1000)))

	mock.ExpectQuery("FROM `chat_participants` WHERE conversation_id IN ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "conversation_id", "user_id", "joined_at", "last_read_at"}).
			AddRow(int64(1), "conv-1", "u1", int64(1000), nil).
			AddRow(int64(2), "conv-1", "u2", int64(1000), nil))

	mock.ExpectQuery("FROM `profiles` WHERE user_id IN ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "display_name", "avatar_url", "created_at", "updated_at"}).
			AddRow(int64(1), "u1", "Alice", nil, int64(0), int64(0)).
			AddRow(int64(2), "u2", "Beth", nil, int64(0), int64(0)))

	mock.ExpectQuery("FROM `user_presence` WHERE user_id IN ").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "is_online", "last_seen"}))

	mock.ExpectQuery("SELECT m.conversation_id AS conversation_id").
		WillReturnRows(sqlmock.NewRows([]string{"conversation_id", "cnt"}))

	mock.ExpectQuery("FROM chat_messages m").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	info, err := svc.CreateDirect(ctx, "u1", &CreateDirectRequest{PeerId: "u2"})
	assert.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, "conv-1", info.Id)
	assert.Equal(t, "Beth", info.Name)
	assert.Equal(t, int64(0), info.UnreadCount)
	assert.Len(t, info.Participants, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDirectWithSelf(t *testing.T) {
	svc, _ := newMockConversationService(t)

	_, err := svc.CreateDirect(context.Background(), "u1", &CreateDirectRequest{PeerId: "u1"})
	assert.Equal(t, errcode.ErrSelfConversation, err)
}

func TestMarkReadMovesWatermark(t *testing.T) {
	svc, mock := newMockConversationService(t)
	ctx := context.Background()

	mock.ExpectQuery("FROM `chat_conversations` WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "name", "direct_key", "created_by", "created_at", "updated_at"}).
			AddRow("conv-1", "direct", "", "di_u1:u2", "u1", int64(1000), int64(1000)))

	mock.ExpectQuery("FROM `chat_participants` WHERE conversation_id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "conversation_id", "user_id", "joined_at", "last_read_at"}).
			AddRow(int64(1), "conv-1", "u1", int64(1000), nil))

	mock.ExpectExec("UPDATE `chat_participants` SET").
		WithArgs(sqlmock.AnyArg(), "conv-1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.MarkRead(ctx, "u1", "conv-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadNotMember(t *testing.T) {
	svc, mock := newMockConversationService(t)
	ctx := context.Background()

	mock.ExpectQuery("FROM `chat_conversations` WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "name", "direct_key", "created_by", "created_at", "updated_at"}).
			AddRow("conv-1", "group", "Batch of 09", nil, "u9", int64(1000), int64(1000)))

	mock.ExpectQuery("FROM `chat_participants` WHERE conversation_id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.MarkRead(ctx, "outsider", "conv-1")
	assert.Equal(t, errcode.ErrNotParticipant, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
