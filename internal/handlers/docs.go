package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rs/zerolog"
)

// DocsHandler serves the OpenAPI document, rendered once on first request.
type DocsHandler struct {
	render func(ctx context.Context) ([]byte, error)
	log    zerolog.Logger

	once sync.Once
	body []byte
	err  error
}

func NewDocsHandler(render func(ctx context.Context) ([]byte, error), log zerolog.Logger) *DocsHandler {
	return &DocsHandler{render: render, log: log}
}

func (h *DocsHandler) OpenAPI(c *drift.Context) {
	h.once.Do(func() {
		h.body, h.err = h.render(context.Background())
	})
	if h.err != nil {
		h.log.Error().Err(h.err).Msg("failed to render OpenAPI document")
		internalError(c, "api description unavailable")
		return
	}

	c.Response.Header().Set("Content-Type", "application/json")
	c.Response.WriteHeader(http.StatusOK)
	_, _ = c.Response.Write(h.body)
	c.Abort()
}
