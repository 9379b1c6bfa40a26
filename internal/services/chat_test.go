package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
)

func TestChatPostMessageValidation(t *testing.T) {
	gormDB, mock := newMockDB(t)
	chat := NewChatService(gormDB, nil)

	_, err := chat.PostMessage(context.Background(), 1, 1, "text", "   ")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)

	_, err = chat.PostMessage(context.Background(), 1, 1, "carrier-pigeon", "hello")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatPostMessageAcceptsMultibyteContent(t *testing.T) {
	gormDB, mock := newMockDB(t)
	chat := NewChatService(gormDB, nil)

	mock.ExpectQuery("SELECT \\* FROM `chat_room_participants`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "user_id", "last_read_message_id"}).
			AddRow(1, 1, 1, 0))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `chat_messages`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("UPDATE `chat_room_participants`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// 2000 characters, 6000 bytes: the limit counts characters.
	content := strings.Repeat("勉", 2000)

	message, err := chat.PostMessage(context.Background(), 1, 1, "text", content)
	require.NoError(t, err)
	assert.Equal(t, content, message.Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatListRoomsOrdersByLatestActivity(t *testing.T) {
	gormDB, mock := newMockDB(t)
	chat := NewChatService(gormDB, nil)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `chat_room_participants`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

	// Rooms sort by their newest message, not by when the user joined.
	mock.ExpectQuery("SELECT \\* FROM `chat_room_participants` .*COALESCE\\(MAX\\(m\\.id\\), 0\\)").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "user_id", "last_read_message_id"}).
			AddRow(7, 2, 1, 3).
			AddRow(4, 1, 1, 9))

	mock.ExpectQuery("SELECT \\* FROM `chat_rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type"}).
			AddRow(2, "group").
			AddRow(1, "direct"))

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `chat_messages`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(5))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `chat_messages`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	summaries, total, err := chat.ListRooms(context.Background(), 1, pageOne())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, summaries, 2)
	assert.Equal(t, uint(2), summaries[0].Room.ID)
	assert.Equal(t, int64(5), summaries[0].UnreadCount)
	assert.Equal(t, uint(1), summaries[1].Room.ID)
	assert.Equal(t, int64(0), summaries[1].UnreadCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
