package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dispatch-service/internal/broadcast"
	"dispatch-service/internal/model"
	"dispatch-service/internal/repository"
	"dispatch-service/internal/weather"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.VehicleType{},
		&model.ClientVehicle{},
		&model.TowTruck{},
		&model.Order{},
		&model.OrderStatusHistory{},
		&model.Payment{},
		&model.Rating{},
		&model.Notification{},
		&model.SupportTicket{},
		&model.SupportMessage{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, role model.UserRole) *model.User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	user := &model.User{
		Username: string(role) + "-" + suffix,
		Phone:    "+7" + suffix,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func asPrincipal(user *model.User) model.Principal {
	return model.Principal{UserID: user.ID, Role: user.Role, Phone: user.Phone}
}

func createVehicleType(t *testing.T, db *gorm.DB, basePrice, perKmRate string) *model.VehicleType {
	t.Helper()
	vt := &model.VehicleType{
		Name:      "type-" + uuid.NewString()[:8],
		MaxWeight: 2500,
		BasePrice: decimal.RequireFromString(basePrice),
		PerKmRate: decimal.RequireFromString(perKmRate),
	}
	require.NoError(t, db.Create(vt).Error)
	return vt
}

func createTruck(t *testing.T, db *gorm.DB, driverID *uuid.UUID, status model.TruckStatus, types ...model.VehicleType) *model.TowTruck {
	t.Helper()
	truck := &model.TowTruck{
		LicensePlate: "KZ" + uuid.NewString()[:6],
		Model:        "Isuzu NQR",
		Capacity:     3500,
		DriverID:     driverID,
		Status:       status,
		VehicleTypes: types,
	}
	require.NoError(t, db.Create(truck).Error)
	return truck
}

// stubWeather is a WeatherSource with a canned answer.
type stubWeather struct {
	obs *weather.Observation
	err error
}

func (s *stubWeather) Current(ctx context.Context, lat, lon float64) (*weather.Observation, error) {
	return s.obs, s.err
}

// recordingPublisher captures every publish for fan-out assertions.
type recordingPublisher struct {
	topics   []broadcast.Topic
	payloads []any
}

func (p *recordingPublisher) Publish(topic broadcast.Topic, payload any) {
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
}

func (p *recordingPublisher) countKind(kind broadcast.TopicKind) int {
	n := 0
	for _, topic := range p.topics {
		if topic.Kind == kind {
			n++
		}
	}
	return n
}

type testEnv struct {
	db            *gorm.DB
	orders        *OrderService
	fleet         *FleetService
	pricing       *PricingService
	locations     *LocationService
	tickets       *TicketService
	notifications *NotificationService
	users         *UserService
	publisher     *recordingPublisher
	weather       *stubWeather
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := zerolog.Nop()

	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	truckRepo := repository.NewTruckRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	ws := &stubWeather{obs: &weather.Observation{Provider: "test", Condition: "clear"}}
	publisher := &recordingPublisher{}

	notifications := NewNotificationService(notificationRepo, log)
	pricing := NewPricingService(vehicleRepo, ws, log)
	fleet := NewFleetService(vehicleRepo, truckRepo, log)
	orders := NewOrderService(orderRepo, truckRepo, vehicleRepo, notificationRepo, pricing, notifications, log)
	locations := NewLocationService(truckRepo, orderRepo, publisher, log)
	tickets := NewTicketService(ticketRepo, orderRepo, notifications, log)
	users := NewUserService(userRepo, log)

	return &testEnv{
		db:            db,
		orders:        orders,
		fleet:         fleet,
		pricing:       pricing,
		locations:     locations,
		tickets:       tickets,
		notifications: notifications,
		users:         users,
		publisher:     publisher,
		weather:       ws,
	}
}

func (e *testEnv) createOrder(t *testing.T, client *model.User, vt *model.VehicleType) *model.Order {
	t.Helper()
	order, err := e.orders.Create(context.Background(), asPrincipal(client), CreateOrderInput{
		VehicleTypeID:     vt.ID,
		PickupAddress:     "Abay Ave 10",
		PickupLatitude:    43.238949,
		PickupLongitude:   76.889709,
		DeliveryAddress:   "Dostyk Ave 91",
		DeliveryLatitude:  43.233711,
		DeliveryLongitude: 76.955314,
	})
	require.NoError(t, err)
	return order
}
