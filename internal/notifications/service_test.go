package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placementhub/placementhub/internal/domain"
)

// deliver pushes everything queued into the user's list.
func deliver(t *testing.T, repo *memoryRepo) {
	t.Helper()
	worker := NewWorker(DefaultWorkerConfig(), repo)
	worker.processBatch(context.Background(), 0)
}

func TestNotify_RejectsUnknownType(t *testing.T) {
	svc := NewService(newMemoryRepo())

	err := svc.Notify(context.Background(), "student1", "sms", "Title", "Message")

	assert.Error(t, err)
}

func TestMarkRead_UpdatesUnreadCount(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	require.NoError(t, svc.Notify(context.Background(), "student1", domain.NotificationTypeInfo, "First", ""))
	require.NoError(t, svc.Notify(context.Background(), "student1", domain.NotificationTypeInfo, "Second", ""))
	deliver(t, repo)

	count, err := svc.UnreadCount(context.Background(), "student1")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	list, err := svc.List(context.Background(), "student1", false, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.MarkRead(context.Background(), "student1", list[0].ID))

	count, err = svc.UnreadCount(context.Background(), "student1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMarkRead_OtherUsersNotificationIsNotFound(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	require.NoError(t, svc.Notify(context.Background(), "student1", domain.NotificationTypeInfo, "Private", ""))
	deliver(t, repo)

	list, err := svc.List(context.Background(), "student1", false, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	err = svc.MarkRead(context.Background(), "company1", list[0].ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestMarkAllRead(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Notify(context.Background(), "student1", domain.NotificationTypeInfo, "Title", ""))
	}
	require.NoError(t, svc.Notify(context.Background(), "company1", domain.NotificationTypeInfo, "Other user", ""))
	deliver(t, repo)

	require.NoError(t, svc.MarkAllRead(context.Background(), "student1"))

	count, err := svc.UnreadCount(context.Background(), "student1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Other users are untouched.
	count, err = svc.UnreadCount(context.Background(), "company1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestList_UnreadOnly(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	require.NoError(t, svc.Notify(context.Background(), "student1", domain.NotificationTypeInfo, "First", ""))
	require.NoError(t, svc.Notify(context.Background(), "student1", domain.NotificationTypeInfo, "Second", ""))
	deliver(t, repo)

	list, err := svc.List(context.Background(), "student1", false, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.MarkRead(context.Background(), "student1", list[0].ID))

	unread, err := svc.List(context.Background(), "student1", true, 0)
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}
