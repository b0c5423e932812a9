package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByDirectKeyFound(t *testing.T) {
	gdb, mock := newMockRepoDB(t)
	repo := NewConversationRepo(gdb)

	rows := sqlmock.NewRows([]string{"id", "type", "name", "direct_key", "created_by", "created_at", "updated_at"}).
		AddRow("conv-1", "direct", "", "di_u1:u2", "u1", int64(1000), int64(1000))
	mock.ExpectQuery("FROM `chat_conversations` WHERE direct_key = ").WillReturnRows(rows)

	conv, err := repo.GetByDirectKey(context.Background(), "di_u1:u2")
	assert.NoError(t, err)
	require.NotNil(t, conv)
	assert.Equal(t, "conv-1", conv.Id)
	assert.Equal(t, "di_u1:u2", *conv.DirectKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByDirectKeyMissing(t *testing.T) {
	gdb, mock := newMockRepoDB(t)
	repo := NewConversationRepo(gdb)

	mock.ExpectQuery("FROM `chat_conversations` WHERE direct_key = ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	conv, err := repo.GetByDirectKey(context.Background(), "di_u1:u2")
	assert.NoError(t, err)
	assert.Nil(t, conv)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLastRead(t *testing.T) {
	gdb, mock := newMockRepoDB(t)
	repo := NewConversationRepo(gdb)

	mock.ExpectExec("UPDATE `chat_participants` SET").
		WithArgs(int64(123), "conv-1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateLastRead(context.Background(), "conv-1", "u1", 123)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
