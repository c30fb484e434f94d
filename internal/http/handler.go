package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"dispatch-service/internal/geo"
	"dispatch-service/internal/http/middleware"
	"dispatch-service/internal/model"
	"dispatch-service/internal/service"
)

type Handler struct {
	orderService        *service.OrderService
	fleetService        *service.FleetService
	pricingService      *service.PricingService
	locationService     *service.LocationService
	ticketService       *service.TicketService
	notificationService *service.NotificationService
	userService         *service.UserService
	log                 zerolog.Logger
}

func NewHandler(
	orderService *service.OrderService,
	fleetService *service.FleetService,
	pricingService *service.PricingService,
	locationService *service.LocationService,
	ticketService *service.TicketService,
	notificationService *service.NotificationService,
	userService *service.UserService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		orderService:        orderService,
		fleetService:        fleetService,
		pricingService:      pricingService,
		locationService:     locationService,
		ticketService:       ticketService,
		notificationService: notificationService,
		userService:         userService,
		log:                 log,
	}
}

func (h *Handler) getProfile(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	user, err := h.userService.Profile(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(user))
}

func (h *Handler) updateProfile(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Email     *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), principal, service.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(user))
}

func (h *Handler) listVehicleTypes(c *gin.Context) {
	types, err := h.fleetService.ListVehicleTypes(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": types}))
}

func (h *Handler) registerVehicle(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		Make         string `json:"make" binding:"required"`
		Model        string `json:"model" binding:"required"`
		Year         int    `json:"year" binding:"required"`
		Color        string `json:"color"`
		LicensePlate string `json:"license_plate" binding:"required"`
		Notes        string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.fleetService.RegisterVehicle(c.Request.Context(), principal, service.RegisterVehicleInput{
		Make:         strings.TrimSpace(req.Make),
		Model:        strings.TrimSpace(req.Model),
		Year:         req.Year,
		Color:        strings.TrimSpace(req.Color),
		LicensePlate: strings.ToUpper(strings.TrimSpace(req.LicensePlate)),
		Notes:        req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(vehicle))
}

func (h *Handler) listMyVehicles(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	vehicles, err := h.fleetService.ListMyVehicles(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": vehicles}))
}

func (h *Handler) listAvailableTrucks(c *gin.Context) {
	var vehicleTypeID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("vehicle_type_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle_type_id"))
			return
		}
		vehicleTypeID = &id
	}

	trucks, err := h.fleetService.ListAvailableTrucks(c.Request.Context(), vehicleTypeID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": trucks}))
}

func (h *Handler) estimatePrice(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		VehicleTypeID     string   `json:"vehicle_type_id" binding:"required"`
		PickupLatitude    float64  `json:"pickup_latitude"`
		PickupLongitude   float64  `json:"pickup_longitude"`
		DeliveryLatitude  float64  `json:"delivery_latitude"`
		DeliveryLongitude float64  `json:"delivery_longitude"`
		DistanceKm        *float64 `json:"distance_km"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicleTypeID, err := uuid.Parse(strings.TrimSpace(req.VehicleTypeID))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle_type_id"))
		return
	}

	distanceKm := 0.0
	if req.DistanceKm != nil {
		distanceKm = *req.DistanceKm
	} else {
		distanceKm = geo.HaversineKm(
			req.PickupLatitude, req.PickupLongitude,
			req.DeliveryLatitude, req.DeliveryLongitude,
		)
	}

	estimate, err := h.pricingService.EstimatePrice(
		c.Request.Context(),
		vehicleTypeID,
		decimal.NewFromFloat(distanceKm),
		req.PickupLatitude, req.PickupLongitude,
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(estimate))
}

func (h *Handler) createOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		VehicleID         string     `json:"vehicle_id"`
		VehicleTypeID     string     `json:"vehicle_type_id" binding:"required"`
		PickupAddress     string     `json:"pickup_address" binding:"required"`
		PickupLatitude    float64    `json:"pickup_latitude"`
		PickupLongitude   float64    `json:"pickup_longitude"`
		DeliveryAddress   string     `json:"delivery_address" binding:"required"`
		DeliveryLatitude  float64    `json:"delivery_latitude"`
		DeliveryLongitude float64    `json:"delivery_longitude"`
		Description       string     `json:"description"`
		Priority          string     `json:"priority"`
		ScheduledTime     *time.Time `json:"scheduled_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicleTypeID, err := uuid.Parse(strings.TrimSpace(req.VehicleTypeID))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle_type_id"))
		return
	}

	input := service.CreateOrderInput{
		VehicleTypeID:     vehicleTypeID,
		PickupAddress:     strings.TrimSpace(req.PickupAddress),
		PickupLatitude:    req.PickupLatitude,
		PickupLongitude:   req.PickupLongitude,
		DeliveryAddress:   strings.TrimSpace(req.DeliveryAddress),
		DeliveryLatitude:  req.DeliveryLatitude,
		DeliveryLongitude: req.DeliveryLongitude,
		Description:       req.Description,
		Priority:          model.OrderPriority(strings.ToUpper(strings.TrimSpace(req.Priority))),
		ScheduledTime:     req.ScheduledTime,
	}
	if raw := strings.TrimSpace(req.VehicleID); raw != "" {
		vehicleID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle_id"))
			return
		}
		input.VehicleID = &vehicleID
	}

	order, err := h.orderService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(order))
}

func (h *Handler) listOrders(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var statuses []model.OrderStatus
	if statusParam := c.Query("status"); statusParam != "" {
		for _, val := range splitCSV(statusParam) {
			statuses = append(statuses, model.OrderStatus(strings.ToUpper(val)))
		}
	}
	limit := parseIntQuery(c, "limit")
	offset := parseIntQuery(c, "offset")

	orders, err := h.orderService.List(c.Request.Context(), principal, statuses, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": orders}))
}

func (h *Handler) getOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	var req struct {
		Status     string `json:"status" binding:"required"`
		Comment    string `json:"comment"`
		FinalPrice string `json:"final_price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	var finalPrice *decimal.Decimal
	if raw := strings.TrimSpace(req.FinalPrice); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid final_price"))
			return
		}
		finalPrice = &price
	}

	status := model.OrderStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	order, err := h.orderService.Transition(c.Request.Context(), principal, id, status, req.Comment, finalPrice)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) assignTruck(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	var req struct {
		TruckID string `json:"truck_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	truckID, err := uuid.Parse(strings.TrimSpace(req.TruckID))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid truck_id"))
		return
	}

	order, err := h.orderService.AssignTruck(c.Request.Context(), principal, orderID, truckID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) listOrderHistory(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	history, err := h.orderService.History(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": history}))
}

func (h *Handler) createPayment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	var req struct {
		Amount        string `json:"amount" binding:"required"`
		Method        string `json:"method" binding:"required"`
		Status        string `json:"status" binding:"required"`
		TransactionID string `json:"transaction_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid amount"))
		return
	}

	payment, err := h.orderService.CreatePayment(c.Request.Context(), principal, orderID, service.CreatePaymentInput{
		Amount:        amount,
		Method:        strings.ToUpper(strings.TrimSpace(req.Method)),
		Status:        strings.ToUpper(strings.TrimSpace(req.Status)),
		TransactionID: req.TransactionID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(payment))
}

func (h *Handler) listPayments(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	payments, err := h.orderService.Payments(c.Request.Context(), principal, orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": payments}))
}

func (h *Handler) submitRating(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	var req struct {
		DriverRating  int    `json:"driver_rating" binding:"required"`
		ServiceRating int    `json:"service_rating" binding:"required"`
		Comment       string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	rating, err := h.orderService.SubmitRating(c.Request.Context(), principal, orderID, req.DriverRating, req.ServiceRating, req.Comment)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(rating))
}

func (h *Handler) updateDriverLocation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	update, err := h.locationService.UpdateLocation(c.Request.Context(), principal, req.Latitude, req.Longitude)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(update))
}

func (h *Handler) listNotifications(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	unreadOnly := strings.EqualFold(c.Query("unread"), "true")
	limit := parseIntQuery(c, "limit")

	notifications, err := h.notificationService.List(c.Request.Context(), principal, unreadOnly, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": notifications}))
}

func (h *Handler) markNotificationRead(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid notification id"))
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "read"}))
}

func (h *Handler) createTicket(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		Subject        string `json:"subject" binding:"required"`
		Description    string `json:"description" binding:"required"`
		Priority       string `json:"priority"`
		RelatedOrderID string `json:"related_order_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.CreateTicketInput{
		Subject:     strings.TrimSpace(req.Subject),
		Description: req.Description,
		Priority:    model.OrderPriority(strings.ToUpper(strings.TrimSpace(req.Priority))),
	}
	if raw := strings.TrimSpace(req.RelatedOrderID); raw != "" {
		orderID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid related_order_id"))
			return
		}
		input.RelatedOrderID = &orderID
	}

	ticket, err := h.ticketService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(ticket))
}

func (h *Handler) listTickets(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var statuses []model.TicketStatus
	if statusParam := c.Query("status"); statusParam != "" {
		for _, val := range splitCSV(statusParam) {
			statuses = append(statuses, model.TicketStatus(strings.ToUpper(val)))
		}
	}
	limit := parseIntQuery(c, "limit")
	offset := parseIntQuery(c, "offset")

	tickets, err := h.ticketService.List(c.Request.Context(), principal, statuses, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": tickets}))
}

func (h *Handler) getTicket(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid ticket id"))
		return
	}

	ticket, err := h.ticketService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(ticket))
}

func (h *Handler) postTicketMessage(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid ticket id"))
		return
	}

	var req struct {
		Body       string `json:"body" binding:"required"`
		IsInternal bool   `json:"is_internal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	message, err := h.ticketService.PostMessage(c.Request.Context(), principal, id, req.Body, req.IsInternal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(message))
}

func (h *Handler) updateTicketStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid ticket id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	status := model.TicketStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	ticket, err := h.ticketService.UpdateStatus(c.Request.Context(), principal, id, status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(ticket))
}

func (h *Handler) dashboardStats(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	stats, err := h.orderService.Dashboard(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(stats))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch err {
	case service.ErrPermissionDenied:
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case service.ErrInvalidInput:
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case service.ErrConflict:
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case service.ErrInvalidStatus:
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseIntQuery(c *gin.Context, name string) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
