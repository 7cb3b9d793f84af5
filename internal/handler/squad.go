package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/fantasy-cricket-service/internal/service"
	"github.com/maxviazov/fantasy-cricket-service/pkg/response"
)

type SquadHandler struct {
	svc service.SquadService
}

func NewSquadHandler(svc service.SquadService) *SquadHandler { return &SquadHandler{svc: svc} }

func (h *SquadHandler) Register(r *gin.RouterGroup) {
	r.Group("/squads").POST("/quote", h.quote)
}

type quoteSquadRequest struct {
	PlayerIDs []int64 `json:"player_ids"`
}

func (h *SquadHandler) quote(c *gin.Context) {
	var req quoteSquadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, invalidBody("must be {\"player_ids\": [int, ...]}"))
		return
	}
	q, err := h.svc.QuoteSquad(c.Request.Context(), req.PlayerIDs)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, q)
}
