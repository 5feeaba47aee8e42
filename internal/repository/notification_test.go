package repository_test

import (
	"testing"

	"github.com/ministryworks/dms-go/internal/domain/notification"
	"github.com/ministryworks/dms-go/internal/repository"
	"github.com/ministryworks/dms-go/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationReadFlow(t *testing.T) {
	repos := repository.New(testutils.SetupTestDB(t))

	rows := []notification.Notification{
		{UserID: 1, Kind: "document_created", Message: "New document uploaded: Budget Q1"},
		{UserID: 1, Kind: "comment_added", Message: "New comment on document 1"},
		{UserID: 2, Kind: "document_created", Message: "New document uploaded: Budget Q1"},
	}
	require.NoError(t, repos.Notification.CreateBatch(rows))

	mine, err := repos.Notification.ListByUser(1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	count, err := repos.Notification.CountUnread(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Marking another user's notification must not touch mine.
	require.NoError(t, repos.Notification.MarkRead(mine[0].NID, 2))
	count, err = repos.Notification.CountUnread(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repos.Notification.MarkRead(mine[0].NID, 1))
	count, err = repos.Notification.CountUnread(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repos.Notification.MarkAllRead(1))
	count, err = repos.Notification.CountUnread(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	other, err := repos.Notification.CountUnread(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}

func TestCreateBatchEmpty(t *testing.T) {
	repos := repository.New(testutils.SetupTestDB(t))
	require.NoError(t, repos.Notification.CreateBatch(nil))
}
