package server

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/keypoints"
)

// clientBuffer is how many feature messages a slow client may fall behind
// before new ones are dropped.
const clientBuffer = 4

// FeaturesMessage is the JSON message sent to feature stream clients.
type FeaturesMessage struct {
	Timestamp int64             `json:"timestamp"`
	Present   detector.Presence `json:"present"`
	Features  []float64         `json:"features"`
}

type client struct {
	send chan []byte
}

// Hub fans out the capture loop's latest frame and feature vector to preview
// clients. Publish never blocks on a client.
type Hub struct {
	logger *zap.SugaredLogger

	viewers atomic.Int32

	mu      sync.RWMutex
	jpeg    []byte
	seq     uint64
	clients map[*client]struct{}

	dropped atomic.Uint64
}

// NewHub creates an empty Hub. A nil logger disables logging.
func NewHub(logger *zap.SugaredLogger) *Hub {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// Publish records one processed frame. The frame is JPEG-encoded only while
// stream viewers are connected, and the vector is marshalled only while
// feature clients are connected.
func (h *Hub) Publish(frame gocv.Mat, res detector.Result, vec *keypoints.Vector) {
	if h.viewers.Load() > 0 && !frame.Empty() {
		h.publishFrame(frame)
	}

	h.mu.RLock()
	n := len(h.clients)
	h.mu.RUnlock()
	if n == 0 || vec == nil {
		return
	}

	msg, err := json.Marshal(FeaturesMessage{
		Timestamp: time.Now().UnixMilli(),
		Present:   res.Presence(),
		Features:  vec.Slice(),
	})
	if err != nil {
		h.logger.Warnw("marshal features", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.dropped.Add(1)
		}
	}
}

func (h *Hub) publishFrame(frame gocv.Mat) {
	buf, err := gocv.IMEncode(".jpg", frame)
	if err != nil {
		h.logger.Warnw("encode preview frame", "error", err)
		return
	}
	data := append([]byte(nil), buf.GetBytes()...)
	buf.Close()

	h.mu.Lock()
	h.jpeg = data
	h.seq++
	h.mu.Unlock()
}

// Latest returns the most recent JPEG frame and its sequence number.
// The sequence is zero until a frame has been published.
func (h *Hub) Latest() ([]byte, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.jpeg, h.seq
}

// Clients returns the number of connected feature clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Viewers returns the number of connected stream viewers.
func (h *Hub) Viewers() int {
	return int(h.viewers.Load())
}

// Dropped returns how many feature messages were dropped for slow clients.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) addViewer() {
	h.viewers.Add(1)
}

func (h *Hub) removeViewer() {
	h.viewers.Add(-1)
}

func (h *Hub) register() *client {
	c := &client{send: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

// unregister removes c and closes its channel. Publish holds the read lock
// while sending, so the close cannot race a send.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}
