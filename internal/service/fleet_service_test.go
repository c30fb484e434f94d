package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-service/internal/model"
)

func TestRegisterVehicle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := createUser(t, env.db, model.UserRoleClient)

	t.Run("client registers a vehicle", func(t *testing.T) {
		vehicle, err := env.fleet.RegisterVehicle(ctx, asPrincipal(client), RegisterVehicleInput{
			Make:         "Toyota",
			Model:        "Camry",
			Year:         2019,
			Color:        "white",
			LicensePlate: "111ABC01",
		})
		require.NoError(t, err)
		assert.Equal(t, client.ID, vehicle.OwnerID)

		mine, err := env.fleet.ListMyVehicles(ctx, asPrincipal(client))
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "111ABC01", mine[0].LicensePlate)
	})

	t.Run("duplicate plate rejected", func(t *testing.T) {
		other := createUser(t, env.db, model.UserRoleClient)
		_, err := env.fleet.RegisterVehicle(ctx, asPrincipal(other), RegisterVehicleInput{
			Make:         "Kia",
			Model:        "Rio",
			Year:         2021,
			LicensePlate: "111ABC01",
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("clients only", func(t *testing.T) {
		driver := createUser(t, env.db, model.UserRoleDriver)
		_, err := env.fleet.RegisterVehicle(ctx, asPrincipal(driver), RegisterVehicleInput{
			Make:         "Lada",
			Model:        "Vesta",
			Year:         2020,
			LicensePlate: "222DEF02",
		})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("incomplete input rejected", func(t *testing.T) {
		_, err := env.fleet.RegisterVehicle(ctx, asPrincipal(client), RegisterVehicleInput{
			Make: "Toyota",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListAvailableTrucks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sedan := createVehicleType(t, env.db, "2500", "120")
	heavy := createVehicleType(t, env.db, "5000", "250")

	forSedans := createTruck(t, env.db, nil, model.TruckStatusAvailable, *sedan)
	createTruck(t, env.db, nil, model.TruckStatusAvailable, *heavy)
	createTruck(t, env.db, nil, model.TruckStatusBusy, *sedan)
	createTruck(t, env.db, nil, model.TruckStatusMaintenance, *sedan)

	all, err := env.fleet.ListAvailableTrucks(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	sedansOnly, err := env.fleet.ListAvailableTrucks(ctx, &sedan.ID)
	require.NoError(t, err)
	require.Len(t, sedansOnly, 1)
	assert.Equal(t, forSedans.ID, sedansOnly[0].ID)
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createUser(t, env.db, model.UserRoleClient)

	t.Run("returns the account", func(t *testing.T) {
		profile, err := env.users.Profile(ctx, asPrincipal(user))
		require.NoError(t, err)
		assert.Equal(t, user.Username, profile.Username)
	})

	t.Run("partial update touches only the given fields", func(t *testing.T) {
		firstName := "Aruzhan"
		email := "aruzhan@example.com"
		updated, err := env.users.UpdateProfile(ctx, asPrincipal(user), UpdateProfileInput{
			FirstName: &firstName,
			Email:     &email,
		})
		require.NoError(t, err)
		assert.Equal(t, "Aruzhan", updated.FirstName)
		assert.Equal(t, "aruzhan@example.com", updated.Email)
		assert.Equal(t, user.Username, updated.Username)
		assert.Equal(t, user.Phone, updated.Phone)
	})
}

func TestNotificationsReadFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := createUser(t, env.db, model.UserRoleClient)
	vt := createVehicleType(t, env.db, "2500", "120")
	env.createOrder(t, client, vt)

	me := asPrincipal(client)
	unread, err := env.notifications.List(ctx, me, true, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, model.NotificationOrderCreated, unread[0].Type)

	t.Run("only the recipient marks as read", func(t *testing.T) {
		stranger := createUser(t, env.db, model.UserRoleClient)
		err := env.notifications.MarkRead(ctx, asPrincipal(stranger), unread[0].ID)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("marking clears the unread list", func(t *testing.T) {
		require.NoError(t, env.notifications.MarkRead(ctx, me, unread[0].ID))

		remaining, err := env.notifications.List(ctx, me, true, 0)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		all, err := env.notifications.List(ctx, me, false, 0)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.True(t, all[0].IsRead)
	})
}
