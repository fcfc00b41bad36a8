package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/solarent/beacon/pkg/internal/database"
	"github.com/solarent/beacon/pkg/internal/models"
	"github.com/stretchr/testify/require"
)

// walkPages drains the channel's history from the top, returning every
// item seen and asserting the page chain terminates.
func walkPages(t *testing.T, user models.Account, channelId uint, take int, between func(page int)) []models.Message {
	t.Helper()

	var collected []models.Message
	cursor := ""
	for page := 0; ; page++ {
		result, err := ListMessage(&user, channelId, cursor, take)
		require.NoError(t, err)
		collected = append(collected, result.Items...)
		if result.IsDone {
			require.Empty(t, result.NextCursor)
			return collected
		}
		require.NotEmpty(t, result.NextCursor)
		cursor = result.NextCursor
		if between != nil {
			between(page)
		}
		require.Less(t, page, 100, "pagination did not terminate")
	}
}

func TestListMessageCompleteness(t *testing.T) {
	useTestSource(t)

	owner := makeAccount(t, "owner")
	workspace, err := NewWorkspace(owner, "Acme", "")
	require.NoError(t, err)
	channel, err := NewChannel(owner, workspace.ID, "random", false, "")
	require.NoError(t, err)

	const total = 23
	for i := 0; i < total; i++ {
		_, err := NewMessage(owner, channel.ID, fmt.Sprintf("message %d", i), nil, "")
		require.NoError(t, err)
	}

	// Concurrent sends between page fetches must not shift the walk.
	items := walkPages(t, owner, channel.ID, 5, func(page int) {
		_, err := NewMessage(owner, channel.ID, fmt.Sprintf("late arrival %d", page), nil, "")
		require.NoError(t, err)
	})

	seen := map[uint]bool{}
	for _, item := range items {
		require.False(t, seen[item.ID], "message %d duplicated across pages", item.ID)
		seen[item.ID] = true
	}
	// Late arrivals are newer than the cursor boundary, so the walk yields
	// exactly the messages that existed when it started.
	require.Len(t, items, total)

	for i := 1; i < len(items); i++ {
		prev, curr := items[i-1], items[i]
		descending := curr.CreatedAt.Before(prev.CreatedAt) ||
			(curr.CreatedAt.Equal(prev.CreatedAt) && curr.ID < prev.ID)
		require.True(t, descending, "items %d and %d out of order", i-1, i)
	}
}

func TestListMessageTimestampTies(t *testing.T) {
	useTestSource(t)

	owner := makeAccount(t, "owner")
	workspace, err := NewWorkspace(owner, "Acme", "")
	require.NoError(t, err)
	channel, err := NewChannel(owner, workspace.ID, "random", false, "")
	require.NoError(t, err)

	// Same creation instant for every row; only the id can break ties.
	when := time.Now().Truncate(time.Second)
	const total = 7
	for i := 0; i < total; i++ {
		require.NoError(t, database.C.Create(&models.Message{
			BaseModel:   models.BaseModel{CreatedAt: when},
			Uuid:        fmt.Sprintf("tie-%d", i),
			Content:     fmt.Sprintf("message %d", i),
			ChannelID:   channel.ID,
			WorkspaceID: workspace.ID,
			AuthorID:    owner.ID,
		}).Error)
	}

	items := walkPages(t, owner, channel.ID, 2, nil)
	require.Len(t, items, total)
	for i := 1; i < len(items); i++ {
		require.Less(t, items[i].ID, items[i-1].ID)
	}
}

func TestListMessageDeniedIsEmptyDonePage(t *testing.T) {
	useTestSource(t)

	owner := makeAccount(t, "owner")
	stranger := makeAccount(t, "stranger")
	workspace, err := NewWorkspace(owner, "Acme", "")
	require.NoError(t, err)
	channel, err := NewChannel(owner, workspace.ID, "random", false, "")
	require.NoError(t, err)
	_, err = NewMessage(owner, channel.ID, "hello", nil, "")
	require.NoError(t, err)

	// An outsider cannot tell a gated channel from an empty one.
	page, err := ListMessage(&stranger, channel.ID, "", 50)
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.True(t, page.IsDone)
	require.Empty(t, page.NextCursor)

	// Same for a caller with no identity at all.
	page, err = ListMessage(nil, channel.ID, "", 50)
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.True(t, page.IsDone)
}

func TestListMessageAttachesAuthors(t *testing.T) {
	useTestSource(t)

	owner := makeAccount(t, "owner")
	workspace, err := NewWorkspace(owner, "Acme", "")
	require.NoError(t, err)
	channel, err := NewChannel(owner, workspace.ID, "random", false, "")
	require.NoError(t, err)
	_, err = NewMessage(owner, channel.ID, "hello", nil, "")
	require.NoError(t, err)

	page, err := ListMessage(&owner, channel.ID, "", 50)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, owner.ID, page.Items[0].Author.ID)
	require.Equal(t, owner.Name, page.Items[0].Author.Name)
}

func TestListMessageBadCursor(t *testing.T) {
	useTestSource(t)

	owner := makeAccount(t, "owner")
	workspace, err := NewWorkspace(owner, "Acme", "")
	require.NoError(t, err)
	channel, err := NewChannel(owner, workspace.ID, "random", false, "")
	require.NoError(t, err)
	_, err = NewMessage(owner, channel.ID, "hello", nil, "")
	require.NoError(t, err)

	// Garbage cursors read as "start over", never as an error.
	page, err := ListMessage(&owner, channel.ID, "not!a!cursor", 50)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
}

func TestListMessageSkipsDeleted(t *testing.T) {
	useTestSource(t)

	owner := makeAccount(t, "owner")
	workspace, err := NewWorkspace(owner, "Acme", "")
	require.NoError(t, err)
	channel, err := NewChannel(owner, workspace.ID, "random", false, "")
	require.NoError(t, err)

	kept, err := NewMessage(owner, channel.ID, "kept", nil, "")
	require.NoError(t, err)
	doomed, err := NewMessage(owner, channel.ID, "doomed", nil, "")
	require.NoError(t, err)
	require.NoError(t, DeleteMessage(owner, doomed.ID))

	page, err := ListMessage(&owner, channel.ID, "", 50)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, kept.ID, page.Items[0].ID)
}
