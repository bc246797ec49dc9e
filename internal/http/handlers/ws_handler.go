package handlers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/adpilot/backend/internal/auth"
	"github.com/adpilot/backend/internal/config"
	"github.com/adpilot/backend/internal/events"
	"github.com/adpilot/backend/internal/search"
	"github.com/adpilot/backend/internal/services"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WSHub pushes wizard and sync events to connected clients and serves the
// debounced location search for search-as-you-type.
type WSHub struct {
	cfg             *config.Config
	subscriber      events.Subscriber
	locationService *services.LocationService
	log             *zap.Logger
	mu              sync.RWMutex
	connections     map[uuid.UUID][]*wsClient
}

type wsClient struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	debouncer *search.Debouncer
}

func (c *wsClient) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func NewWSHub(cfg *config.Config, subscriber events.Subscriber, locationService *services.LocationService, log *zap.Logger) *WSHub {
	return &WSHub{
		cfg:             cfg,
		subscriber:      subscriber,
		locationService: locationService,
		log:             log,
		connections:     make(map[uuid.UUID][]*wsClient),
	}
}

func (h *WSHub) Start(ctx context.Context) {
	handler := func(event events.Event) { h.dispatch(event) }
	_ = h.subscriber.Subscribe(ctx, events.StreamWizard, handler)
	_ = h.subscriber.Subscribe(ctx, events.StreamSync, handler)
}

// dispatch routes an event to its user's connections, or to everyone when
// the event carries no user.
func (h *WSHub) dispatch(event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if event.UserID != "" {
		userID, err := uuid.Parse(event.UserID)
		if err != nil {
			return
		}
		for _, client := range h.connections[userID] {
			_ = client.write(data)
		}
		return
	}

	for _, clients := range h.connections {
		for _, client := range clients {
			_ = client.write(data)
		}
	}
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// Client-to-server message. Only location search is accepted; everything the
// server pushes flows the other way.
type wsInbound struct {
	Type  string `json:"type"`
	Query string `json:"query,omitempty"`
}

type wsSearchResult struct {
	Type    string `json:"type"`
	Query   string `json:"query"`
	Results any    `json:"results"`
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing token"}`))
		conn.Close()
		return
	}

	claims, err := auth.ParseJWT(h.cfg.JWTSecret, tokenStr)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		conn.Close()
		return
	}

	userID := claims.UserID
	client := &wsClient{
		conn:      conn,
		debouncer: search.NewDebouncer(time.Duration(h.cfg.SearchDebounceMS) * time.Millisecond),
	}

	h.mu.Lock()
	h.connections[userID] = append(h.connections[userID], client)
	h.mu.Unlock()

	defer func() {
		client.debouncer.Stop()
		h.mu.Lock()
		clients := h.connections[userID]
		for i, cl := range clients {
			if cl == client {
				h.connections[userID] = append(clients[:i], clients[i+1:]...)
				break
			}
		}
		if len(h.connections[userID]) == 0 {
			delete(h.connections, userID)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var inbound wsInbound
		if err := json.Unmarshal(msg, &inbound); err != nil {
			continue
		}
		if inbound.Type != "location_search" {
			continue
		}

		query := inbound.Query
		// Each keystroke reschedules; superseded searches drop their results
		// so a slow response never clobbers a newer query's.
		client.debouncer.Schedule(func(stale func() bool) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			results, err := h.locationService.Search(ctx, query)
			if err != nil {
				h.log.Debug("ws location search failed", zap.String("query", query), zap.Error(err))
				return
			}
			if stale() {
				return
			}

			data, err := json.Marshal(wsSearchResult{
				Type:    "location_results",
				Query:   query,
				Results: results,
			})
			if err != nil {
				return
			}
			_ = client.write(data)
		})
	}
}
