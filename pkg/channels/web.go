package channels

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dumalabs/duma/pkg/bus"
	"github.com/dumalabs/duma/pkg/config"
	"github.com/dumalabs/duma/pkg/logger"
)

// HandleFunc resolves one inbound message synchronously and returns the
// reply text, so the web API can answer in the HTTP response.
type HandleFunc func(ctx context.Context, msg bus.InboundMessage) string

// History is the snapshot served by GET /api/history.
type History struct {
	Messages []string       `json:"messages"`
	Members  []string       `json:"members"`
	Usage    map[string]int `json:"usage_counters"`
}

type HistoryFunc func() History

// WebChannel exposes the assistant over HTTP: a send endpoint that
// emulates an inbound chat message, and a history endpoint for the
// class chat. It cannot push, so reminder notifications addressed to it
// fail delivery and are discarded.
type WebChannel struct {
	*BaseChannel

	host    string
	port    int
	handle  HandleFunc
	history HistoryFunc
	srv     *http.Server
}

func NewWebChannel(cfg config.WebConfig, gw config.GatewayConfig, b *bus.MessageBus, hooks WebHooks) *WebChannel {
	return &WebChannel{
		BaseChannel: NewBaseChannel("web", b, cfg.AllowFrom),
		host:        gw.Host,
		port:        gw.Port,
		handle:      hooks.Handle,
		history:     hooks.History,
	}
}

type sendRequest struct {
	From string `json:"from" binding:"required"`
	Name string `json:"name"`
	Body string `json:"body" binding:"required"`
}

func (c *WebChannel) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(g *gin.Context) {
		g.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/history", func(g *gin.Context) {
		g.JSON(http.StatusOK, c.history())
	})

	r.POST("/api/send", func(g *gin.Context) {
		var req sendRequest
		if err := g.ShouldBindJSON(&req); err != nil {
			g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !c.IsAllowed(req.From) {
			g.JSON(http.StatusForbidden, gin.H{"error": "sender not allowed"})
			return
		}

		reply := c.handle(g.Request.Context(), bus.InboundMessage{
			Channel:    c.Name(),
			SenderID:   req.From,
			SenderName: req.Name,
			ChatID:     req.From,
			Content:    req.Body,
		})
		g.JSON(http.StatusOK, gin.H{"reply": reply})
	})

	return r
}

func (c *WebChannel) Start(_ context.Context) error {
	c.srv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", c.host, c.port),
		Handler:           c.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := c.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorCF("channels", "Web server error", map[string]any{"error": err.Error()})
		}
	}()

	c.SetRunning(true)
	return nil
}

func (c *WebChannel) Stop(ctx context.Context) error {
	c.SetRunning(false)
	if c.srv == nil {
		return nil
	}
	return c.srv.Shutdown(ctx)
}

// Send always fails: the web API is request/response only.
func (c *WebChannel) Send(_ context.Context, _ bus.OutboundMessage) error {
	return errors.New("web channel cannot push messages")
}
