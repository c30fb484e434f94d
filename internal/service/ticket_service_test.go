package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-service/internal/model"
)

func TestCreateTicket(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := createUser(t, env.db, model.UserRoleClient)

	t.Run("seeds the conversation with the description", func(t *testing.T) {
		ticket, err := env.tickets.Create(ctx, asPrincipal(client), CreateTicketInput{
			Subject:     "Driver is late",
			Description: "The truck was due an hour ago.",
		})
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusOpen, ticket.Status)
		assert.Equal(t, model.OrderPriorityNormal, ticket.Priority)
		require.NotNil(t, ticket.LastMessageAt)
		require.Len(t, ticket.Messages, 1)
		assert.Equal(t, "The truck was due an hour ago.", ticket.Messages[0].Body)
		assert.Equal(t, client.ID, ticket.Messages[0].AuthorID)
	})

	t.Run("subject and description are required", func(t *testing.T) {
		_, err := env.tickets.Create(ctx, asPrincipal(client), CreateTicketInput{Subject: "x"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("related order must belong to the client", func(t *testing.T) {
		other := createUser(t, env.db, model.UserRoleClient)
		vt := createVehicleType(t, env.db, "2500", "120")
		order := env.createOrder(t, other, vt)

		_, err := env.tickets.Create(ctx, asPrincipal(client), CreateTicketInput{
			Subject:        "Question",
			Description:    "About this order.",
			RelatedOrderID: &order.ID,
		})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestPostMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := createUser(t, env.db, model.UserRoleClient)
	operator := createUser(t, env.db, model.UserRoleOperator)

	open := func(t *testing.T) *model.SupportTicket {
		ticket, err := env.tickets.Create(ctx, asPrincipal(client), CreateTicketInput{
			Subject:     "Billing",
			Description: "I was charged twice.",
		})
		require.NoError(t, err)
		return ticket
	}

	t.Run("first operator reply claims the ticket", func(t *testing.T) {
		ticket := open(t)
		_, err := env.tickets.PostMessage(ctx, asPrincipal(operator), ticket.ID, "Looking into it.", false)
		require.NoError(t, err)

		updated, err := env.tickets.Get(ctx, asPrincipal(operator), ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusInProgress, updated.Status)
		require.NotNil(t, updated.AssignedToID)
		assert.Equal(t, operator.ID, *updated.AssignedToID)

		var count int64
		require.NoError(t, env.db.Model(&model.Notification{}).
			Where("user_id = ? AND type = ?", client.ID, model.NotificationSupport).
			Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("author replies do not advance the workflow", func(t *testing.T) {
		ticket := open(t)
		_, err := env.tickets.PostMessage(ctx, asPrincipal(client), ticket.ID, "Any update?", false)
		require.NoError(t, err)

		updated, err := env.tickets.Get(ctx, asPrincipal(client), ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusOpen, updated.Status)
		assert.Nil(t, updated.AssignedToID)
	})

	t.Run("internal notes are operator-only and hidden from the author", func(t *testing.T) {
		ticket := open(t)
		_, err := env.tickets.PostMessage(ctx, asPrincipal(client), ticket.ID, "secret", true)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		_, err = env.tickets.PostMessage(ctx, asPrincipal(operator), ticket.ID, "escalate to fleet", true)
		require.NoError(t, err)

		asAuthor, err := env.tickets.Get(ctx, asPrincipal(client), ticket.ID)
		require.NoError(t, err)
		for _, m := range asAuthor.Messages {
			assert.False(t, m.IsInternal)
		}
		assert.Len(t, asAuthor.Messages, 1)

		asOperator, err := env.tickets.Get(ctx, asPrincipal(operator), ticket.ID)
		require.NoError(t, err)
		assert.Len(t, asOperator.Messages, 2)
	})

	t.Run("strangers cannot post", func(t *testing.T) {
		ticket := open(t)
		stranger := createUser(t, env.db, model.UserRoleClient)
		_, err := env.tickets.PostMessage(ctx, asPrincipal(stranger), ticket.ID, "me too", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("empty body rejected", func(t *testing.T) {
		ticket := open(t)
		_, err := env.tickets.PostMessage(ctx, asPrincipal(client), ticket.ID, "", false)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestTicketStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := createUser(t, env.db, model.UserRoleClient)
	operator := createUser(t, env.db, model.UserRoleOperator)
	op := asPrincipal(operator)

	open := func(t *testing.T) *model.SupportTicket {
		ticket, err := env.tickets.Create(ctx, asPrincipal(client), CreateTicketInput{
			Subject:     "App crash",
			Description: "The app crashes on the order screen.",
		})
		require.NoError(t, err)
		return ticket
	}

	t.Run("resolving stamps closed_at, reopening clears it", func(t *testing.T) {
		ticket := open(t)
		resolved, err := env.tickets.UpdateStatus(ctx, op, ticket.ID, model.TicketStatusResolved)
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusResolved, resolved.Status)
		require.NotNil(t, resolved.ClosedAt)

		reopened, err := env.tickets.UpdateStatus(ctx, op, ticket.ID, model.TicketStatusOpen)
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusOpen, reopened.Status)
		assert.Nil(t, reopened.ClosedAt)
	})

	t.Run("closing notifies the author", func(t *testing.T) {
		ticket := open(t)
		before := countSupportNotifications(t, env, client.ID)

		_, err := env.tickets.UpdateStatus(ctx, op, ticket.ID, model.TicketStatusClosed)
		require.NoError(t, err)
		assert.Equal(t, before+1, countSupportNotifications(t, env, client.ID))
	})

	t.Run("operators only", func(t *testing.T) {
		ticket := open(t)
		_, err := env.tickets.UpdateStatus(ctx, asPrincipal(client), ticket.ID, model.TicketStatusResolved)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("closed tickets cannot be resolved", func(t *testing.T) {
		ticket := open(t)
		_, err := env.tickets.UpdateStatus(ctx, op, ticket.ID, model.TicketStatusClosed)
		require.NoError(t, err)
		_, err = env.tickets.UpdateStatus(ctx, op, ticket.ID, model.TicketStatusResolved)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestListTicketsScoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientA := createUser(t, env.db, model.UserRoleClient)
	clientB := createUser(t, env.db, model.UserRoleClient)
	operator := createUser(t, env.db, model.UserRoleOperator)

	for _, author := range []*model.User{clientA, clientA, clientB} {
		_, err := env.tickets.Create(ctx, asPrincipal(author), CreateTicketInput{
			Subject:     "Ticket",
			Description: "Details.",
		})
		require.NoError(t, err)
	}

	own, err := env.tickets.List(ctx, asPrincipal(clientA), nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	all, err := env.tickets.List(ctx, asPrincipal(operator), nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onlyOpen, err := env.tickets.List(ctx, asPrincipal(operator), []model.TicketStatus{model.TicketStatusOpen}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, onlyOpen, 3)
}

func countSupportNotifications(t *testing.T, env *testEnv, userID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(&model.Notification{}).
		Where("user_id = ? AND type = ?", userID, model.NotificationSupport).
		Count(&count).Error)
	return count
}
