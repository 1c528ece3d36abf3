package feed

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"travelagency/internal/domain"
)

// Hub fans newly accepted enquiries out to connected admin dashboards.
// One connection per admin; a reconnect replaces the previous socket.
type Hub struct {
	connections map[int64]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

type enquiryEvent struct {
	Type    string          `json:"type"`
	Enquiry *domain.Enquiry `json:"enquiry"`
	SentAt  time.Time       `json:"sent_at"`
}

func (h *Hub) Register(adminID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[adminID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[adminID] = conn
}

func (h *Hub) Unregister(adminID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[adminID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, adminID)
	}
}

// PublishEnquiry broadcasts an accepted enquiry to every connected admin.
// Dead connections are dropped on write failure.
func (h *Hub) PublishEnquiry(e *domain.Enquiry) {
	event := enquiryEvent{
		Type:    "enquiry.accepted",
		Enquiry: e,
		SentAt:  time.Now(),
	}

	h.mutex.RLock()
	ids := make([]int64, 0, len(h.connections))
	for id := range h.connections {
		ids = append(ids, id)
	}
	h.mutex.RUnlock()

	for _, id := range ids {
		h.mutex.RLock()
		conn, exists := h.connections[id]
		h.mutex.RUnlock()
		if !exists || conn == nil {
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			h.Unregister(id)
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for adminID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, adminID)
	}
}
