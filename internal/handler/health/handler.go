package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.HealthCheck)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	httputil.RespondWithMessage(c, http.StatusOK, "API is running", gin.H{
		"status":    "up",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
