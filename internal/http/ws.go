package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"dispatch-service/internal/broadcast"
	"dispatch-service/internal/http/middleware"
	"dispatch-service/internal/service"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

type WSHandler struct {
	locationService *service.LocationService
	hub             *broadcast.Hub
	upgrader        websocket.Upgrader
	log             zerolog.Logger
}

func NewWSHandler(locationService *service.LocationService, hub *broadcast.Hub, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		locationService: locationService,
		hub:             hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// subscribeOrder streams location updates for one order. Authorization runs
// before the upgrade so a rejected client gets a plain HTTP status.
func (h *WSHandler) subscribeOrder(c *gin.Context) {
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

	topic, snapshot, err := h.locationService.AuthorizeOrderTopic(c.Request.Context(), principal, orderID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.serve(c, topic, snapshot)
}

func (h *WSHandler) subscribeTruck(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	truckID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid truck id"))
		return
	}

	topic, snapshot, err := h.locationService.AuthorizeTruckTopic(c.Request.Context(), principal, truckID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.serve(c, topic, snapshot)
}

func (h *WSHandler) serve(c *gin.Context, topic broadcast.Topic, snapshot *service.LocationUpdate) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	sub := broadcast.NewSubscriber()
	h.hub.Subscribe(topic, sub)

	done := make(chan struct{})

	// Reader only consumes control frames; any client message or error ends
	// the session.
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		h.hub.Unsubscribe(topic, sub)
		_ = conn.Close()
	}()

	if snapshot != nil {
		payload, err := json.Marshal(snapshot)
		if err == nil {
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sub.Send:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *WSHandler) handleAuthError(c *gin.Context, err error) {
	switch err {
	case service.ErrPermissionDenied:
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("websocket auth error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}
