package services

import (
	"fmt"
	"testing"

	"github.com/Dosada05/gaming-portal/brackets"
	"github.com/Dosada05/gaming-portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationInboxIsBounded(t *testing.T) {
	svc := NewNotificationService(nil, discardLogger())
	for i := 0; i < inboxLimit+20; i++ {
		svc.Notify(7, 1, models.NotificationRegistered, fmt.Sprintf("msg %d", i))
	}

	inbox := svc.ListForUser(7)
	require.Len(t, inbox, inboxLimit)
	assert.Equal(t, fmt.Sprintf("msg %d", inboxLimit+19), inbox[0].Message)
	assert.Equal(t, "msg 20", inbox[len(inbox)-1].Message)
	assert.Empty(t, svc.ListForUser(8))
}

func TestAnnouncementsAreBroadcast(t *testing.T) {
	b := newRecordingBroadcaster()
	svc := NewNotificationService(b, discardLogger())

	svc.Notify(3, 5, models.NotificationRegistered, "private")
	assert.Zero(t, b.count(brackets.RoomEvents))

	svc.Announce(5, models.NotificationMatchesCreated, "matches ready")
	assert.Equal(t, 1, b.count(brackets.RoomEvents))
	assert.Equal(t, 1, b.count(brackets.EventRoom(5)))

	general := svc.ListGeneral()
	require.Len(t, general, 1)
	assert.Equal(t, models.NotificationMatchesCreated, general[0].Kind)
	assert.NotEqual(t, general[0].ID.String(), "00000000-0000-0000-0000-000000000000")
}
