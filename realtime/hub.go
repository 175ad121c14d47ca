package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"psikolog.link/configs/configslog"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event yönetici oturumlarına anlık olarak iletilen bildirimi temsil eder.
type Event struct {
	Type      string      `json:"type"` // appointment, call_request, message, comment
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Client bağlı bir yönetici oturumunu temsil eder.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// Hub açık yönetici WebSocket bağlantılarını yönetir ve bildirimleri yayınlar.
// Kalıcılık yoktur; kopan bağlantının yeniden kurulması istemcinin işidir.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub yeni bir Hub örneği oluşturur.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

var (
	defaultHub *Hub
	defaultMu  sync.RWMutex
)

// SetDefault uygulama genelinde kullanılacak hub'ı ayarlar (main'de çağrılır).
func SetDefault(h *Hub) {
	defaultMu.Lock()
	defaultHub = h
	defaultMu.Unlock()
}

// Publish varsayılan hub üzerinden olay yayınlar. Hub kurulmamışsa sessizce
// atlanır; bildirimler best-effort'tur.
func Publish(eventType string, data interface{}) {
	defaultMu.RLock()
	h := defaultHub
	defaultMu.RUnlock()
	if h != nil {
		h.Broadcast(eventType, data)
	}
}

// Register yeni bir bağlantıyı hub'a ekler ve client kaydını döndürür.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	client := &Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
	configslog.SLog.Debugf("Realtime client bağlandı: %s (toplam %d)", client.ID, h.ClientCount())
	return client
}

// Unregister bağlantıyı hub'dan çıkarır ve gönderim kanalını kapatır.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(client.Send)
	}
	h.mu.Unlock()
	configslog.SLog.Debugf("Realtime client ayrıldı: %s", client.ID)
}

// Broadcast olayı tüm bağlı clientlara iletir. Kanalı dolu olan client
// engellenmeden atlanır; yavaş bir yönetici sekmesi yayını durdurmamalı.
func (h *Hub) Broadcast(eventType string, data interface{}) {
	event := Event{Type: eventType, Data: data, Timestamp: time.Now().UTC()}
	payload, err := json.Marshal(event)
	if err != nil {
		configslog.Log.Error("Realtime event serileştirilemedi", zap.String("type", eventType), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

// ClientCount bağlı client sayısını döndürür.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// WritePump client'ın gönderim kanalını websocket bağlantısına boşaltır.
// Handler'daki websocket goroutine'i içinden çağrılır; kanal kapanınca döner.
func (c *Client) WritePump() {
	for payload := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
