package application

import (
	"context"
	"testing"

	"github.com/ministryworks/dms-go/internal/domain/user"
	"github.com/ministryworks/dms-go/internal/repository"
	"github.com/ministryworks/dms-go/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingEmailSender struct {
	to      []string
	subject string
	body    string
}

func (s *capturingEmailSender) Send(_ context.Context, to []string, subject, body string) error {
	s.to = to
	s.subject = subject
	s.body = body
	return nil
}

type capturingPushSender struct {
	tokens []string
	title  string
	body   string
}

func (s *capturingPushSender) Send(_ context.Context, tokens []string, title, body string) error {
	s.tokens = tokens
	s.title = title
	s.body = body
	return nil
}

func TestDeliverFansOutToAllUsers(t *testing.T) {
	repos := repository.New(testutils.SetupTestDB(t))

	expo := "ExponentPushToken[abc]"
	require.NoError(t, repos.User.Create(&user.User{
		Email: "ada@works.gov", Password: "x", FirstName: "Ada", LastName: "Okafor",
		Role: "staff", ExpoPushToken: &expo, IsActive: true,
	}))
	require.NoError(t, repos.User.Create(&user.User{
		Email: "chi@works.gov", Password: "x", FirstName: "Chi", LastName: "Eze",
		Role: "admin", IsActive: true,
	}))

	email := &capturingEmailSender{}
	push := &capturingPushSender{}
	d := NewNotificationDispatcher(repos, email, push, nil)

	d.deliver(EventDocumentCreated, "New document uploaded: Budget Q1")

	assert.ElementsMatch(t, []string{"ada@works.gov", "chi@works.gov"}, email.to)
	assert.Equal(t, "New Document Notification", email.subject)
	assert.Equal(t, "New document uploaded: Budget Q1", email.body)

	assert.Equal(t, []string{expo}, push.tokens)
	assert.Equal(t, "New Document Alert", push.title)

	for _, uid := range []uint{1, 2} {
		rows, err := repos.Notification.ListByUser(uid)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "document_created", rows[0].Kind)
		assert.Equal(t, "New document uploaded: Budget Q1", rows[0].Message)
		assert.Nil(t, rows[0].ReadAt)
	}
}

func TestDeliverSurvivesSenderFailure(t *testing.T) {
	repos := repository.New(testutils.SetupTestDB(t))
	require.NoError(t, repos.User.Create(&user.User{
		Email: "ada@works.gov", Password: "x", FirstName: "Ada", LastName: "Okafor",
		Role: "staff", IsActive: true,
	}))

	// Nil senders mean no delivery channel; rows are still persisted.
	d := NewNotificationDispatcher(repos, nil, nil, nil)
	d.deliver(EventCommentAdded, "New comment on document 1")

	rows, err := repos.Notification.ListByUser(1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
