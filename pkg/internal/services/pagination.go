package services

import (
	"encoding/base64"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/solarent/beacon/pkg/internal/database"
	"github.com/solarent/beacon/pkg/internal/models"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// messageCursor pins a page boundary to the (creation time, id) pair of
// the last item served. Timestamps alone cannot order the stream; two
// messages may share one at sub-resolution granularity, so the insertion
// id breaks ties. Keying on committed pairs instead of offsets keeps
// pages stable under concurrent inserts.
type messageCursor struct {
	Ts int64 `json:"t"`
	ID uint  `json:"i"`
}

type MessagePage struct {
	Items      []models.Message `json:"items"`
	IsDone     bool             `json:"is_done"`
	NextCursor string           `json:"next_cursor"`
}

func emptyMessagePage() MessagePage {
	return MessagePage{Items: []models.Message{}, IsDone: true}
}

func encodeMessageCursor(message models.Message) string {
	raw, _ := jsoniter.Marshal(messageCursor{
		Ts: message.CreatedAt.UnixNano(),
		ID: message.ID,
	})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// decodeMessageCursor treats anything unreadable as "start from the top"
// rather than an error; cursors are opaque hints, not commitments.
func decodeMessageCursor(encoded string) *messageCursor {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	var cursor messageCursor
	if err := jsoniter.Unmarshal(raw, &cursor); err != nil {
		return nil
	}
	return &cursor
}

// ListMessage serves one reverse-chronological page of a channel's
// history. The access gate and the page query run in one transaction so
// the page cannot disagree with its own gate. A denied caller gets an
// empty, done page; "no access" and "empty channel" are made
// indistinguishable on purpose.
func ListMessage(user *models.Account, channelId uint, cursor string, take int) (MessagePage, error) {
	if user == nil {
		return emptyMessagePage(), nil
	}
	if take <= 0 {
		take = defaultPageSize
	}
	if take > maxPageSize {
		take = maxPageSize
	}

	page := emptyMessagePage()
	err := database.C.Transaction(func(tx *gorm.DB) error {
		if _, verdict := CheckChannelAccess(tx, user.ID, channelId); !verdict.Allowed {
			return nil
		}

		query := tx.Where("channel_id = ?", channelId)
		if decoded := decodeMessageCursor(cursor); decoded != nil {
			boundary := time.Unix(0, decoded.Ts)
			query = query.Where(
				"created_at < ? OR (created_at = ? AND id < ?)",
				boundary, boundary, decoded.ID,
			)
		}

		// One probe row past the page decides whether history continues.
		var items []models.Message
		if err := query.
			Order("created_at DESC, id DESC").
			Limit(take + 1).
			Preload("Author").
			Find(&items).Error; err != nil {
			return err
		}

		if len(items) > take {
			items = items[:take]
			page.IsDone = false
			page.NextCursor = encodeMessageCursor(items[len(items)-1])
		}
		page.Items = items

		return nil
	})

	return page, err
}
