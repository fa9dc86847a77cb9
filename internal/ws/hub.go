package ws

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/specialist-hub/internal/logger"
)

// Hub держит активные websocket подключения, сгруппированные по
// пользователям. Один пользователь может держать несколько подключений
// (несколько вкладок или устройств).
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run обслуживает регистрацию и отключение клиентов до вызова Stop.
func (h *Hub) Run() {
	log := logger.WithComponent("ws")

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]struct{})
			}
			h.clients[client.userID][client] = struct{}{}
			h.mu.Unlock()
			log.WithField("user_id", client.userID).Debug("клиент подключился")

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.userID]; ok {
				if _, exists := conns[client]; exists {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}
			h.mu.Unlock()
			log.WithField("user_id", client.userID).Debug("клиент отключился")

		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.clients {
				for client := range conns {
					close(client.send)
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]struct{})
			h.mu.Unlock()
			return
		}
	}
}

// Stop закрывает все подключения и останавливает цикл Run.
func (h *Hub) Stop() {
	close(h.done)
}

// SendToUser доставляет сообщение во все подключения пользователя.
// Медленный клиент с переполненным буфером пропускает сообщение.
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- message:
		default:
			logger.WithComponent("ws").
				WithField("user_id", userID).
				Warn("буфер клиента переполнен, сообщение пропущено")
		}
	}
}

// IsOnline сообщает, есть ли у пользователя живое подключение.
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}
