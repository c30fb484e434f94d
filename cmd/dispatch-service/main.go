package main

import (
	"fmt"
	"os"

	"dispatch-service/internal/auth"
	"dispatch-service/internal/broadcast"
	"dispatch-service/internal/config"
	"dispatch-service/internal/db"
	httphandler "dispatch-service/internal/http"
	"dispatch-service/internal/http/middleware"
	"dispatch-service/internal/logger"
	"dispatch-service/internal/repository"
	"dispatch-service/internal/service"
	"dispatch-service/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	userRepo := repository.NewUserRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	truckRepo := repository.NewTruckRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	ticketRepo := repository.NewTicketRepository(database)

	weatherClient := weather.NewClient(weather.Config{
		APIKey:      cfg.Weather.APIKey,
		PrimaryURL:  cfg.Weather.PrimaryURL,
		FallbackURL: cfg.Weather.FallbackURL,
		Timeout:     cfg.Weather.Timeout,
	}, log)

	hub := broadcast.NewHub()

	notificationService := service.NewNotificationService(notificationRepo, log)
	pricingService := service.NewPricingService(vehicleRepo, weatherClient, log)
	fleetService := service.NewFleetService(vehicleRepo, truckRepo, log)
	orderService := service.NewOrderService(orderRepo, truckRepo, vehicleRepo, notificationRepo, pricingService, notificationService, log)
	locationService := service.NewLocationService(truckRepo, orderRepo, hub, log)
	ticketService := service.NewTicketService(ticketRepo, orderRepo, notificationService, log)
	userService := service.NewUserService(userRepo, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(orderService, fleetService, pricingService, locationService, ticketService, notificationService, userService, log)
	wsHandler := httphandler.NewWSHandler(locationService, hub, log)
	router := httphandler.NewRouter(handler, wsHandler, middleware.Auth(tokenParser), cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting dispatch service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
