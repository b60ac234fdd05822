package handlers

import (
	"net/http"

	"github.com/boldenardo/astrotarot-hub-sub001/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// internalError writes a 500 with only msg in the body. The cause belongs in the log.
func internalError(c *drift.Context, msg string) {
	_ = c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msg})
}
