package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/fantasy-cricket-service/internal/service"
)

// Register mounts probes, docs and the versioned API. ready backs the readiness probe
// and usually aggregates the database and cache.
func Register(r *gin.Engine, ready Pinger, playerSvc service.PlayerService, tournamentSvc service.TournamentService, squadSvc service.SquadService) {
	h := NewHealthHandler(ready)

	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)
	RegisterDocs(r)

	v1 := r.Group(APIV1Prefix)
	{
		health := v1.Group("/health")
		health.GET("/live", h.Liveness)
		health.GET("/ready", h.Readiness)

		NewPlayerHandler(playerSvc).Register(v1)
		NewTournamentHandler(tournamentSvc).Register(v1)
		NewSquadHandler(squadSvc).Register(v1)
	}
}
