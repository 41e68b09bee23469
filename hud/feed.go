package hud

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
)

const (
	feedSendBuffer = 32
	feedWriteWait  = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Envelope is one message on the spectator feed.
type Envelope struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	At      time.Time       `json:"at"`
	Payload json.RawMessage `json:"payload"`
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Feed is a Notifier that streams HUD updates to websocket spectators.
// New connections first receive a snapshot of the current state.
type Feed struct {
	state *State

	mu      sync.Mutex
	clients map[*feedClient]struct{}
	closed  bool
}

func NewFeed() *Feed {
	return &Feed{state: NewState(), clients: make(map[*feedClient]struct{})}
}

func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feed: upgrade: %v", err)
		return
	}
	c := &feedClient{conn: conn, send: make(chan []byte, feedSendBuffer)}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		conn.Close()
		return
	}
	if msg, err := encode("snapshot", f.state.Snapshot()); err == nil {
		c.send <- msg
	}
	f.clients[c] = struct{}{}
	f.mu.Unlock()

	go f.writeLoop(c)
	go f.readLoop(c)
}

func (f *Feed) writeLoop(c *feedClient) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			f.drop(c)
			return
		}
	}
}

// readLoop discards inbound frames and notices disconnects.
func (f *Feed) readLoop(c *feedClient) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			f.drop(c)
			return
		}
	}
}

func (f *Feed) drop(c *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[c]; !ok {
		return
	}
	delete(f.clients, c)
	close(c.send)
}

// Clients reports the number of connected spectators.
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Close disconnects every spectator.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for c := range f.clients {
		delete(f.clients, c)
		close(c.send)
	}
}

func encode(kind string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{ID: ulid.Make().String(), Type: kind, At: time.Now().UTC(), Payload: raw})
}

func (f *Feed) broadcast(kind string, payload any) {
	msg, err := encode(kind, payload)
	if err != nil {
		log.Printf("feed: encode %s: %v", kind, err)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		select {
		case c.send <- msg:
		default:
			// slow spectator, skip this update
		}
	}
}

func (f *Feed) HealthChanged(current, max int) {
	f.state.HealthChanged(current, max)
	f.broadcast("health", map[string]int{"current": current, "max": max})
}

func (f *Feed) EnergyChanged(current, max float64) {
	f.state.EnergyChanged(current, max)
	f.broadcast("energy", map[string]float64{"current": current, "max": max})
}

func (f *Feed) LivesChanged(current int) {
	f.state.LivesChanged(current)
	f.broadcast("lives", map[string]int{"current": current})
}

func (f *Feed) ScoreChanged(score, high int) {
	f.state.ScoreChanged(score, high)
	f.broadcast("score", map[string]int{"score": score, "high_score": high})
}

func (f *Feed) BossHealthChanged(fraction float64, visible bool) {
	f.state.BossHealthChanged(fraction, visible)
	f.broadcast("boss_health", struct {
		Fraction float64 `json:"fraction"`
		Visible  bool    `json:"visible"`
	}{fraction, visible})
}

func (f *Feed) WaveStarted(stage, wave int, name string) {
	f.state.WaveStarted(stage, wave, name)
	f.broadcast("wave", struct {
		Stage int    `json:"stage"`
		Wave  int    `json:"wave"`
		Name  string `json:"name"`
	}{stage, wave, name})
}

func (f *Feed) Message(text string) {
	f.state.Message(text)
	f.broadcast("message", map[string]string{"text": text})
}

func (f *Feed) Victory(score int) {
	f.state.Victory(score)
	f.broadcast("victory", map[string]int{"score": score})
}

func (f *Feed) GameOver(score int) {
	f.state.GameOver(score)
	f.broadcast("game_over", map[string]int{"score": score})
}
