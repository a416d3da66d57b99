package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mathbridge/mathbridge-backend/internal/delivery/http/middlewares"
	"github.com/mathbridge/mathbridge-backend/internal/dispatcher"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/metrics"
	notificationuc "github.com/mathbridge/mathbridge-backend/internal/usecase/notification"
)

const keepAliveInterval = 25 * time.Second

type NotificationHandler struct {
	notificationUc notificationuc.NotificationUsecase
	registry       *dispatcher.Registry
	metrics        *metrics.PaymentMetrics
	instanceID     string
}

func NewNotificationHandler(
	notificationUc notificationuc.NotificationUsecase,
	registry *dispatcher.Registry,
	paymentMetrics *metrics.PaymentMetrics,
	instanceID string,
) *NotificationHandler {
	return &NotificationHandler{
		notificationUc: notificationUc,
		registry:       registry,
		metrics:        paymentMetrics,
		instanceID:     instanceID,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, total, err := h.notificationUc.GetUserNotifications(middlewares.Subject(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, gin.H{
			"id":         n.ID,
			"title":      n.Title,
			"message":    n.Message,
			"type":       string(n.Type),
			"status":     string(n.Status),
			"created_at": n.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"notifications": out, "total": total})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notificationUc.MarkRead(c.Param("id"), middlewares.Subject(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// Stream is the SSE endpoint. It registers one channel for the user in the
// local registry and writes `data: <json>\n\n` frames until the client goes
// away or a newer connection for the same user displaces this one.
func (h *NotificationHandler) Stream(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	userID := middlewares.Subject(c)
	ch := newSSEChannel(c.Writer, flusher)
	h.registry.RegisterConnection(userID, ch)
	h.metrics.StreamConnectionsGauge.WithLabelValues(h.instanceID).Set(float64(h.registry.ConnectionCount()))

	defer func() {
		h.registry.UnregisterConnection(userID, ch)
		h.metrics.StreamConnectionsGauge.WithLabelValues(h.instanceID).Set(float64(h.registry.ConnectionCount()))
	}()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-ch.done:
			return
		case <-ticker.C:
			// comment frame, ignored by EventSource clients
			if err := ch.writeRaw(": keep-alive\n\n"); err != nil {
				return
			}
		}
	}
}

// sseChannel adapts one SSE response to the stream registry. The mutex
// serializes delivery writes against keep-alive frames.
type sseChannel struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	done    chan struct{}
	closed  bool
}

func newSSEChannel(w http.ResponseWriter, flusher http.Flusher) *sseChannel {
	return &sseChannel{w: w, flusher: flusher, done: make(chan struct{})}
}

func (ch *sseChannel) Send(data []byte) error {
	return ch.writeRaw(fmt.Sprintf("data: %s\n\n", data))
}

func (ch *sseChannel) writeRaw(frame string) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.closed {
		return fmt.Errorf("stream channel closed")
	}
	if _, err := fmt.Fprint(ch.w, frame); err != nil {
		return err
	}
	ch.flusher.Flush()
	return nil
}

func (ch *sseChannel) Close() error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if !ch.closed {
		ch.closed = true
		close(ch.done)
	}
	return nil
}
