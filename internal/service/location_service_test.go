package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-service/internal/broadcast"
	"dispatch-service/internal/model"
)

func TestUpdateLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("fans out to the truck group and every active order", func(t *testing.T) {
		env := newTestEnv(t)
		client := createUser(t, env.db, model.UserRoleClient)
		operator := createUser(t, env.db, model.UserRoleOperator)
		driver := createUser(t, env.db, model.UserRoleDriver)
		vt := createVehicleType(t, env.db, "2500", "120")
		truck := createTruck(t, env.db, &driver.ID, model.TruckStatusAvailable, *vt)

		first := env.createOrder(t, client, vt)
		second := env.createOrder(t, client, vt)
		_, err := env.orders.AssignTruck(ctx, asPrincipal(operator), first.ID, truck.ID)
		require.NoError(t, err)
		require.NoError(t, env.db.Model(&model.Order{}).
			Where("id = ?", second.ID).
			Update("tow_truck_id", truck.ID).Error)

		update, err := env.locations.UpdateLocation(ctx, asPrincipal(driver), 43.25, 76.92)
		require.NoError(t, err)
		assert.Equal(t, truck.ID, update.TruckID)
		assert.Nil(t, update.OrderID)

		assert.Equal(t, 1, env.publisher.countKind(broadcast.TopicTruck))
		assert.Equal(t, 2, env.publisher.countKind(broadcast.TopicOrder))

		orderIDs := map[string]bool{}
		for _, payload := range env.publisher.payloads {
			msg, ok := payload.(*LocationUpdate)
			require.True(t, ok)
			assert.Equal(t, 43.25, msg.Latitude)
			if msg.OrderID != nil {
				orderIDs[msg.OrderID.String()] = true
			}
		}
		assert.True(t, orderIDs[first.ID.String()])
		assert.True(t, orderIDs[second.ID.String()])

		var persisted model.TowTruck
		require.NoError(t, env.db.First(&persisted, "id = ?", truck.ID).Error)
		require.NotNil(t, persisted.CurrentLat)
		assert.Equal(t, 43.25, *persisted.CurrentLat)
		require.NotNil(t, persisted.CurrentLon)
		assert.Equal(t, 76.92, *persisted.CurrentLon)
		require.NotNil(t, persisted.LocationAt)
	})

	t.Run("finished orders drop out of the fan-out", func(t *testing.T) {
		env := newTestEnv(t)
		client := createUser(t, env.db, model.UserRoleClient)
		driver := createUser(t, env.db, model.UserRoleDriver)
		vt := createVehicleType(t, env.db, "2500", "120")
		truck := createTruck(t, env.db, &driver.ID, model.TruckStatusBusy, *vt)

		active := env.createOrder(t, client, vt)
		finished := env.createOrder(t, client, vt)
		require.NoError(t, env.db.Model(&model.Order{}).
			Where("id IN ?", []string{active.ID.String(), finished.ID.String()}).
			Update("tow_truck_id", truck.ID).Error)
		require.NoError(t, env.db.Model(&model.Order{}).
			Where("id = ?", finished.ID).
			Update("status", model.OrderStatusCompleted).Error)

		_, err := env.locations.UpdateLocation(ctx, asPrincipal(driver), 43.3, 76.9)
		require.NoError(t, err)

		assert.Equal(t, 1, env.publisher.countKind(broadcast.TopicTruck))
		assert.Equal(t, 1, env.publisher.countKind(broadcast.TopicOrder))
	})

	t.Run("drivers only", func(t *testing.T) {
		env := newTestEnv(t)
		client := createUser(t, env.db, model.UserRoleClient)
		_, err := env.locations.UpdateLocation(ctx, asPrincipal(client), 43.25, 76.92)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("coordinates out of range", func(t *testing.T) {
		env := newTestEnv(t)
		driver := createUser(t, env.db, model.UserRoleDriver)
		vt := createVehicleType(t, env.db, "2500", "120")
		createTruck(t, env.db, &driver.ID, model.TruckStatusAvailable, *vt)

		_, err := env.locations.UpdateLocation(ctx, asPrincipal(driver), 91, 76.92)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("driver without a truck", func(t *testing.T) {
		env := newTestEnv(t)
		driver := createUser(t, env.db, model.UserRoleDriver)
		_, err := env.locations.UpdateLocation(ctx, asPrincipal(driver), 43.25, 76.92)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAuthorizeOrderTopic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := createUser(t, env.db, model.UserRoleClient)
	operator := createUser(t, env.db, model.UserRoleOperator)
	driver := createUser(t, env.db, model.UserRoleDriver)
	vt := createVehicleType(t, env.db, "2500", "120")
	truck := createTruck(t, env.db, &driver.ID, model.TruckStatusAvailable, *vt)

	order := env.createOrder(t, client, vt)
	_, err := env.orders.AssignTruck(ctx, asPrincipal(operator), order.ID, truck.ID)
	require.NoError(t, err)

	t.Run("snapshot is nil before the first report", func(t *testing.T) {
		topic, snapshot, err := env.locations.AuthorizeOrderTopic(ctx, asPrincipal(client), order.ID)
		require.NoError(t, err)
		assert.Equal(t, broadcast.OrderTopic(order.ID), topic)
		assert.Nil(t, snapshot)
	})

	t.Run("client gets the latest snapshot", func(t *testing.T) {
		at := time.Now().UTC()
		require.NoError(t, env.db.Model(&model.TowTruck{}).
			Where("id = ?", truck.ID).
			Updates(map[string]any{
				"current_lat": 43.26,
				"current_lon": 76.93,
				"location_at": at,
			}).Error)

		topic, snapshot, err := env.locations.AuthorizeOrderTopic(ctx, asPrincipal(client), order.ID)
		require.NoError(t, err)
		assert.Equal(t, broadcast.OrderTopic(order.ID), topic)
		require.NotNil(t, snapshot)
		assert.Equal(t, truck.ID, snapshot.TruckID)
		require.NotNil(t, snapshot.OrderID)
		assert.Equal(t, order.ID, *snapshot.OrderID)
		assert.Equal(t, 43.26, snapshot.Latitude)
	})

	t.Run("assigned driver and operator are allowed", func(t *testing.T) {
		_, _, err := env.locations.AuthorizeOrderTopic(ctx, asPrincipal(driver), order.ID)
		assert.NoError(t, err)
		_, _, err = env.locations.AuthorizeOrderTopic(ctx, asPrincipal(operator), order.ID)
		assert.NoError(t, err)
	})

	t.Run("strangers fail closed", func(t *testing.T) {
		stranger := createUser(t, env.db, model.UserRoleClient)
		_, _, err := env.locations.AuthorizeOrderTopic(ctx, asPrincipal(stranger), order.ID)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		otherDriver := createUser(t, env.db, model.UserRoleDriver)
		_, _, err = env.locations.AuthorizeOrderTopic(ctx, asPrincipal(otherDriver), order.ID)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestAuthorizeTruckTopic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	operator := createUser(t, env.db, model.UserRoleOperator)
	driver := createUser(t, env.db, model.UserRoleDriver)
	vt := createVehicleType(t, env.db, "2500", "120")
	truck := createTruck(t, env.db, &driver.ID, model.TruckStatusAvailable, *vt)

	t.Run("truck driver and operator are allowed", func(t *testing.T) {
		topic, _, err := env.locations.AuthorizeTruckTopic(ctx, asPrincipal(driver), truck.ID)
		require.NoError(t, err)
		assert.Equal(t, broadcast.TruckTopic(truck.ID), topic)

		_, _, err = env.locations.AuthorizeTruckTopic(ctx, asPrincipal(operator), truck.ID)
		assert.NoError(t, err)
	})

	t.Run("clients and foreign drivers are not", func(t *testing.T) {
		client := createUser(t, env.db, model.UserRoleClient)
		_, _, err := env.locations.AuthorizeTruckTopic(ctx, asPrincipal(client), truck.ID)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		otherDriver := createUser(t, env.db, model.UserRoleDriver)
		_, _, err = env.locations.AuthorizeTruckTopic(ctx, asPrincipal(otherDriver), truck.ID)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}
