package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	chargedomain "github.com/quetzalpay/cobros/internal/charge/domain"
)

// clienteID accepts both forms an id circulates in: the quoted string the API
// itself emits and a plain JSON number.
type clienteID int64

func (v *clienteID) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*v = 0
		return nil
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return err
	}
	*v = clienteID(parsed)
	return nil
}

type createCobroRequest struct {
	ClienteID         clienteID `json:"clienteId"`
	Monto             float64   `json:"monto"`
	Moneda            string    `json:"moneda"`
	ReferenciaExterna string    `json:"referenciaExterna"`
}

type procesarLoteRequest struct {
	CobrosIDs []any `json:"cobrosIds"`
}

func (s *Server) RegistrarCobro(c *gin.Context) {
	var req createCobroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.cobroSvc.Register(c.Request.Context(), chargedomain.CreateCobroRequest{
		ClienteID:         int64(req.ClienteID),
		Monto:             req.Monto,
		Moneda:            req.Moneda,
		ReferenciaExterna: req.ReferenciaExterna,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ProcesarCobro(c *gin.Context) {
	resp, err := s.cobroSvc.Process(c.Request.Context(), chargedomain.ProcessCobroRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if resp.AlreadyProcessed {
		c.JSON(http.StatusOK, gin.H{
			"message": "Cobro ya procesado",
			"cobro":   resp.Cobro,
		})
		return
	}

	c.JSON(http.StatusOK, resp.Cobro)
}

func (s *Server) ProcesarLote(c *gin.Context) {
	// Decoded with UseNumber so numeric ids beyond float64's exact-integer
	// range survive intact; invalid entries are still skipped downstream.
	var req procesarLoteRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		AbortWithError(c, chargedomain.ErrInvalidLote)
		return
	}

	resp, err := s.cobroSvc.ProcessLote(c.Request.Context(), chargedomain.ProcessLoteRequest{
		CobrosIDs: req.CobrosIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListCobrosByCliente(c *gin.Context) {
	var query struct {
		Estado string `form:"estado"`
		Desde  string `form:"desde"`
		Hasta  string `form:"hasta"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	desde, err := parseOptionalTime(query.Desde, false)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	hasta, err := parseOptionalTime(query.Hasta, true)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	cobros, err := s.cobroSvc.ListByCliente(c.Request.Context(), chargedomain.ListCobrosRequest{
		ClienteID: strings.TrimSpace(c.Param("id")),
		Estado:    query.Estado,
		Desde:     desde,
		Hasta:     hasta,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cobros)
}
