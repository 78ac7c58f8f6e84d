package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/quetzalpay/cobros/internal/client/domain"
)

type createClienteRequest struct {
	Nombre   string `json:"nombre"`
	DPI      string `json:"dpi"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "API running"})
}

func (s *Server) CreateCliente(c *gin.Context) {
	var req createClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.clienteSvc.Create(c.Request.Context(), clientdomain.CreateClienteRequest{
		Nombre:   req.Nombre,
		DPI:      req.DPI,
		Email:    req.Email,
		Telefono: req.Telefono,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
