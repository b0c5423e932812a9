package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestGallerySetStatusStampsReviewer(t *testing.T) {
	gdb, mock := newMockRepoDB(t)
	repo := NewGalleryRepo(gdb)

	// Map updates render in column order: reviewed_at, reviewed_by, status
	mock.ExpectExec("UPDATE `gallery` SET").
		WithArgs(int64(456), "admin-1", "approved", "g1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetStatus(context.Background(), "g1", "approved", "admin-1", 456)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
