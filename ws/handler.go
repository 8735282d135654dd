package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler, GET /ws isteklerini WebSocket'e yükseltir.
// Token gerekmez: yayınlanan event'ler zaten public olan içeriktir.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler, constructor. allowedOrigins boşsa tüm origin'ler kabul edilir.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  512,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed[origin] || sameHost(r, origin)
			},
		},
	}
}

// HandleConnection, bağlantıyı yükseltir, client'ı Hub'a kaydeder ve
// ReadPump bitene kadar bloklar.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.WritePump()
	client.ReadPump()
}

// sameHost, sayfanın kendi origin'inden gelen bağlantıları kabul eder.
func sameHost(r *http.Request, origin string) bool {
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

