package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/fantasy-cricket-service/internal/service"
	"github.com/maxviazov/fantasy-cricket-service/pkg/response"
)

type TournamentHandler struct {
	svc service.TournamentService
}

func NewTournamentHandler(svc service.TournamentService) *TournamentHandler {
	return &TournamentHandler{svc: svc}
}

func (h *TournamentHandler) Register(r *gin.RouterGroup) {
	r.Group("/tournament").GET("/summary", h.summary)
}

func (h *TournamentHandler) summary(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()
	s, err := h.svc.GetSummary(ctx)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, s)
}
