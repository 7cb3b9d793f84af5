package handler

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/fantasy-cricket-service/internal/repository"
	"github.com/maxviazov/fantasy-cricket-service/internal/service"
	"github.com/maxviazov/fantasy-cricket-service/pkg/response"
	"github.com/rs/zerolog/log"
)

const (
	serviceTimeout = 5 * time.Second
	// importTimeout covers large CSV files going through one batch insert.
	importTimeout = 30 * time.Second
	// maxImportBytes caps request bodies on the bulk endpoints.
	maxImportBytes = 10 << 20
)

type PlayerHandler struct {
	svc service.PlayerService
}

func NewPlayerHandler(svc service.PlayerService) *PlayerHandler { return &PlayerHandler{svc: svc} }

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/players")
	{
		g.POST("", h.create)
		g.POST("/import", h.importCSV)
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
		g.PATCH("/:id", h.update)
		// PUT is accepted for older admin clients; both merge onto the stored record.
		g.PUT("/:id", h.update)
		g.DELETE("/:id", h.delete)
	}
}

func invalidBody(msg string) error {
	return service.NewInvalidInputError([]service.FieldError{{Field: "body", Message: msg}})
}

func invalidID() error {
	return service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer"}})
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		return 0, invalidID()
	}
	return id, nil
}

// decodeBody reads a JSON value keeping numbers as json.Number, so large counters survive intact.
func decodeBody(c *gin.Context) (any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, invalidBody("must be valid JSON")
	}
	return v, nil
}

// create accepts a single player object or an array of them.
// An array is handled as a bulk import: valid rows are stored, invalid rows are reported.
func (h *PlayerHandler) create(c *gin.Context) {
	body, err := decodeBody(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	switch v := body.(type) {
	case map[string]any:
		player, err := h.svc.CreatePlayer(c.Request.Context(), v)
		if err != nil {
			response.WriteError(c, err)
			return
		}
		response.WriteData(c, http.StatusCreated, player)
	case []any:
		rows := make([]map[string]any, len(v))
		for i, item := range v {
			// non-object items become empty rows and are reported as invalid
			if m, ok := item.(map[string]any); ok {
				rows[i] = m
			} else {
				rows[i] = map[string]any{}
			}
		}
		h.writeImport(c, rows, "json")
	default:
		response.WriteError(c, invalidBody("must be a player object or an array of players"))
	}
}

// importCSV reads a spreadsheet export: the header row names the fields, e.g. "Total Runs".
// The file comes from multipart field "file" or as a raw text/csv body.
func (h *PlayerHandler) importCSV(c *gin.Context) {
	var src io.Reader
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if mediaType == "multipart/form-data" {
		fh, err := c.FormFile("file")
		if err != nil {
			response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "file", Message: "is required"}}))
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.WriteError(c, err)
			return
		}
		defer f.Close()
		src = f
	} else {
		src = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)
	}

	rows, err := parseCSV(src)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	h.writeImport(c, rows, "csv")
}

func (h *PlayerHandler) writeImport(c *gin.Context, rows []map[string]any, source string) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(c.Request.Context(), importTimeout)
	defer cancel()

	report, err := h.svc.ImportPlayers(ctx, rows)

	logger := log.With().
		Str("path", c.Request.URL.Path).
		Str("source", source).
		Int("rows", len(rows)).
		Dur("duration", time.Since(start)).
		Logger()

	if err != nil {
		status, _ := response.MapError(err)
		logger.Error().Err(err).Int("status", status).Msg("player import failed")
		response.WriteError(c, err)
		return
	}

	status := http.StatusCreated
	if report.CreatedCount == 0 {
		status = http.StatusOK
	}
	logger.Info().Int("status", status).Int("created", report.CreatedCount).Int("invalid", report.InvalidCount).Msg("players imported")
	response.WriteData(c, status, report)
}

// parseCSV maps every data row onto the header names. Short rows leave trailing fields absent.
func parseCSV(r io.Reader) ([]map[string]any, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, service.NewInvalidInputError([]service.FieldError{{Field: "file", Message: "must contain a header row"}})
		}
		return nil, invalidBody("must be valid CSV: " + err.Error())
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var rows []map[string]any
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, invalidBody("must be valid CSV: " + err.Error())
		}
		if isBlankRecord(rec) {
			continue
		}
		row := make(map[string]any, len(header))
		for i, v := range rec {
			if i < len(header) && header[i] != "" {
				row[header[i]] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (h *PlayerHandler) list(c *gin.Context) {
	// Atoi errors are ignored intentionally, as 0 is a valid default for limit/offset, handled by the service layer.
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	q := service.PlayerQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	}
	res, err := h.svc.ListPlayers(c.Request.Context(), q, repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *PlayerHandler) getByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	player, err := h.svc.GetPlayer(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, player)
}

func (h *PlayerHandler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	body, err := decodeBody(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	patch, ok := body.(map[string]any)
	if !ok {
		response.WriteError(c, invalidBody("must be a JSON object"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()
	player, err := h.svc.UpdatePlayer(ctx, id, patch)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, player)
}

func (h *PlayerHandler) delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.svc.DeletePlayer(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
