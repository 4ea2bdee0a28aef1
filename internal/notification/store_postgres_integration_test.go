//go:build integration

package notification_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"exptrack/internal/notification"
	"exptrack/internal/user"
	"exptrack/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *notification.PostgresStore
	users    *user.PostgresStore

	ownerID uuid.UUID
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = notification.NewPostgres(s.postgres.DB)
	s.users = user.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "notifications", "users")
	s.Require().NoError(err)

	s.ownerID = s.seedUser("casey@example.com")
}

func (s *PostgresStoreSuite) seedUser(email string) uuid.UUID {
	u := &user.User{
		ID:           uuid.New(),
		Name:         "Casey",
		Email:        email,
		PasswordHash: "x",
	}
	s.Require().NoError(s.users.Create(context.Background(), u))
	return u.ID
}

func messagesOf(notifications []notification.Notification) []string {
	messages := make([]string, len(notifications))
	for i, n := range notifications {
		messages[i] = n.Message
	}
	return messages
}

func (s *PostgresStoreSuite) TestInsertThenListUnsent() {
	ctx := context.Background()
	stranger := s.seedUser("stranger@example.com")

	s.Require().NoError(s.store.Insert(ctx, s.ownerID, "Budget Alert", "message one"))
	s.Require().NoError(s.store.Insert(ctx, s.ownerID, "Budget Alert", "message two"))
	s.Require().NoError(s.store.Insert(ctx, stranger, "Budget Alert", "not yours"))

	unsent, err := s.store.ListUnsent(ctx, s.ownerID)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"message one", "message two"}, messagesOf(unsent))
	for _, n := range unsent {
		s.Equal(s.ownerID, n.OwnerID)
		s.Equal("Budget Alert", n.Category)
		s.False(n.Sent)
		s.False(n.CreatedAt.IsZero())
	}
}

func (s *PostgresStoreSuite) TestMarkSentRemovesFromUnsent() {
	ctx := context.Background()

	s.Require().NoError(s.store.Insert(ctx, s.ownerID, "Budget Alert", "first"))
	s.Require().NoError(s.store.Insert(ctx, s.ownerID, "Budget Alert", "second"))
	s.Require().NoError(s.store.Insert(ctx, s.ownerID, "Budget Alert", "third"))

	unsent, err := s.store.ListUnsent(ctx, s.ownerID)
	s.Require().NoError(err)
	s.Require().Len(unsent, 3)

	s.Require().NoError(s.store.MarkSent(ctx, []uuid.UUID{unsent[0].ID, unsent[1].ID}))

	remaining, err := s.store.ListUnsent(ctx, s.ownerID)
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Equal(unsent[2].ID, remaining[0].ID)

	// Marking the rest drains the unsent set for good; rows stay in the table.
	s.Require().NoError(s.store.MarkSent(ctx, []uuid.UUID{remaining[0].ID}))
	drained, err := s.store.ListUnsent(ctx, s.ownerID)
	s.Require().NoError(err)
	s.Empty(drained)
}

func (s *PostgresStoreSuite) TestMarkSentWithNoIDsIsNoOp() {
	ctx := context.Background()
	s.Require().NoError(s.store.Insert(ctx, s.ownerID, "Budget Alert", "still here"))

	s.Require().NoError(s.store.MarkSent(ctx, nil))

	unsent, err := s.store.ListUnsent(ctx, s.ownerID)
	s.Require().NoError(err)
	s.Len(unsent, 1)
}
