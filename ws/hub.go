package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
)

// EventPublisher, service katmanının event yayınlamak için kullandığı interface.
// Service'ler Hub'ın concrete struct'ına değil bu interface'e bağımlıdır;
// testlerde kayıt tutan sahte bir publisher kullanılabilir.
type EventPublisher interface {
	BroadcastToAll(event Event)
}

// Hub, tüm okuyucu bağlantılarını yönetir.
//
// register/unregister channel'ları Run() goroutine'inde işlenir;
// clients map'i ayrıca RWMutex ile korunur çünkü BroadcastToAll
// service goroutine'lerinden doğrudan çağrılır.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	seq atomic.Int64
}

// NewHub, yeni bir Hub oluşturur. main.go'da `go hub.Run()` ile başlatılır.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run, Hub'ın event loop'u. Shutdown çağrılana kadar bloklar.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	log.Printf("[ws] reader connected (total: %d)", len(h.clients))
}

// removeClient, client'ı çıkarır ve send channel'ını kapatır.
// Client zaten çıkarılmışsa hiçbir şey yapmaz: close iki kez çağrılmaz.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		log.Printf("[ws] reader disconnected (remaining: %d)", len(h.clients))
	}
}

// requestUnregister, Hub durmuşsa bloklamadan döner.
func (h *Hub) requestUnregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// BroadcastToAll, tüm bağlı okuyuculara event gönderir.
// Buffer'ı dolu client'lar (yavaş bağlantı) düşürülür.
func (h *Hub) BroadcastToAll(event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal broadcast event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			go h.requestUnregister(client)
		}
	}
}

// ClientCount, bağlı okuyucu sayısı.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown, tüm bağlantıları kapatır ve Run'ı sonlandırır.
func (h *Hub) Shutdown() {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		for client := range h.clients {
			close(client.send)
		}
		h.clients = make(map[*Client]bool)
		h.mu.Unlock()

		close(h.done)
		log.Println("[ws] hub shut down, all connections closed")
	})
}
