package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	chargedomain "github.com/quetzalpay/cobros/internal/charge/domain"
	clientdomain "github.com/quetzalpay/cobros/internal/client/domain"
	"gorm.io/gorm"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

// errorResponse is the wire contract for every failure: a single message string.
type errorResponse struct {
	Error string `json:"error"`
}

// ErrorHandlingMiddleware converts errors collected on the context into the
// JSON error contract. Handlers only call AbortWithError.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: message})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, clientdomain.ErrInvalidNombre),
		errors.Is(err, clientdomain.ErrInvalidDPI):
		return http.StatusBadRequest, "Nombre y DPI son obligatorios"
	case errors.Is(err, clientdomain.ErrDPIExists):
		return http.StatusBadRequest, "DPI ya existe"
	case errors.Is(err, clientdomain.ErrInvalidID):
		return http.StatusBadRequest, "ID de cliente inválido"
	case errors.Is(err, chargedomain.ErrInvalidClienteID),
		errors.Is(err, chargedomain.ErrInvalidMoneda):
		return http.StatusBadRequest, "clienteId, monto y moneda son obligatorios"
	case errors.Is(err, chargedomain.ErrInvalidMonto):
		return http.StatusBadRequest, "El monto debe ser mayor a 0"
	case errors.Is(err, chargedomain.ErrInvalidLote):
		return http.StatusBadRequest, "Debe enviar una lista válida de cobrosIds"
	case errors.Is(err, chargedomain.ErrInvalidEstado):
		return http.StatusBadRequest, "Estado inválido"
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "Solicitud inválida"
	case errors.Is(err, clientdomain.ErrNotFound):
		return http.StatusNotFound, "Cliente no existe"
	case errors.Is(err, chargedomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "Cobro no existe"
	default:
		return http.StatusInternalServerError, "Error interno del servidor"
	}
}
