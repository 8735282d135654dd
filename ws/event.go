// Package ws, blog okuyucularına gerçek zamanlı içerik bildirimleri gönderir.
//
// Mimari:
//   - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
//   - Client: Her WebSocket bağlantısını temsil eder
//   - Event: Sunucudan okuyucuya giden mesaj formatı
//
// Akış: admin yazı ekler/düzenler/siler veya okuyucu yorum yapar →
// service dosyaya yazar → Hub.BroadcastToAll → açık sayfalar listeyi yeniler.
//
// Bağlantılar anonimdir ve salt okunurdur; client'tan sadece heartbeat kabul edilir.
package ws

// Event, WebSocket üzerinden iletilen mesaj.
//
// Seq, her outbound event'e verilen artan sayaçtır: frontend kaçırdığı
// event'i fark edip listeyi baştan çekebilir.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server
const (
	OpHeartbeat = "heartbeat"
)

// Server → Client
const (
	OpHeartbeatAck  = "heartbeat_ack"
	OpPostCreate    = "post_create"
	OpPostUpdate    = "post_update"
	OpPostDelete    = "post_delete"
	OpCommentCreate = "comment_create"
)

// PostDeleteData, post_delete payload'ı.
type PostDeleteData struct {
	ID int `json:"id"`
}

// CommentCreateData, comment_create payload'ı.
type CommentCreateData struct {
	Slug    string `json:"slug"`
	Comment string `json:"comment"`
}
