package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/thereayou/teamchat/internal/presence"
)

// StatusStore выставляет долговременный флаг online в базе
type StatusStore interface {
	SetUserOnline(id uuid.UUID, online bool) error
}

type Client struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Conn     *websocket.Conn
	Send     chan []byte
	Channels map[uuid.UUID]bool
	Hub      *Hub
	mu       sync.RWMutex
}

type Hub struct {
	clients map[uuid.UUID]*Client

	// Подписки на каналы: channelID -> clientID -> client.
	// Членство в канале здесь не проверяется — подписка по id доступна
	// любому аутентифицированному соединению
	channels map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	presence presence.Store
	users    StatusStore

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(store presence.Store, users StatusStore) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		channels:   make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		presence:   store,
		users:      users,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
	h.clients = make(map[uuid.UUID]*Client)
	h.channels = make(map[uuid.UUID]map[uuid.UUID]*Client)
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	first, err := h.presence.Add(h.ctx, client.UserID, client.ID)
	if err != nil {
		log.Printf("presence add failed for user %s: %v", client.UserID, err)
	}

	log.Printf("client connected: %s (user %s)", client.ID, client.UserID)

	// user-online уходит только на первое соединение пользователя
	if first {
		if err := h.users.SetUserOnline(client.UserID, true); err != nil {
			log.Printf("failed to mark user %s online: %v", client.UserID, err)
		}
		h.notifyPresence(EventUserOnline, client.UserID)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	for channelID := range client.Channels {
		h.removeFromChannelUnsafe(client, channelID)
	}

	delete(h.clients, client.ID)
	close(client.Send)

	last, err := h.presence.Remove(h.ctx, client.UserID, client.ID)
	if err != nil {
		log.Printf("presence remove failed for user %s: %v", client.UserID, err)
	}

	log.Printf("client disconnected: %s (user %s)", client.ID, client.UserID)

	// user-offline — только когда закрылось последнее соединение пользователя
	if last {
		if err := h.users.SetUserOnline(client.UserID, false); err != nil {
			log.Printf("failed to mark user %s offline: %v", client.UserID, err)
		}
		h.notifyPresence(EventUserOffline, client.UserID)
	}
}

// JoinChannel подписывает соединение на рассылку канала
func (h *Hub) JoinChannel(client *Client, channelID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.channels[channelID]; !ok {
		h.channels[channelID] = make(map[uuid.UUID]*Client)
	}

	h.channels[channelID][client.ID] = client
	client.mu.Lock()
	client.Channels[channelID] = true
	client.mu.Unlock()
}

func (h *Hub) LeaveChannel(client *Client, channelID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromChannelUnsafe(client, channelID)
}

func (h *Hub) removeFromChannelUnsafe(client *Client, channelID uuid.UUID) {
	subs, ok := h.channels[channelID]
	if !ok {
		return
	}

	delete(subs, client.ID)
	client.mu.Lock()
	delete(client.Channels, channelID)
	client.mu.Unlock()

	if len(subs) == 0 {
		delete(h.channels, channelID)
	}
}

// SendToChannel доставляет событие всем подписчикам канала, включая отправителя.
// Доставка at-most-once: переполненная очередь клиента означает потерю события
func (h *Hub) SendToChannel(channelID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.channels[channelID] {
		select {
		case client.Send <- message:
		default:
			log.Printf("client %s send queue full, dropping event", client.ID)
		}
	}
}

func (h *Hub) notifyPresence(event string, userID uuid.UUID) {
	data, err := MarshalEvent(event, PresencePayload{UserID: userID})
	if err != nil {
		return
	}

	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// OnlineUsers возвращает пользователей с хотя бы одним живым соединением
func (h *Hub) OnlineUsers() []uuid.UUID {
	users, err := h.presence.Online(h.ctx)
	if err != nil {
		log.Printf("presence query failed: %v", err)
		return nil
	}
	return users
}
