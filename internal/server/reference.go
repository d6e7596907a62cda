package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	statedomain "github.com/servibill/servibill/internal/state/domain"
)

type updateStateRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

func (s *Server) ListStates(c *gin.Context) {
	resp, err := s.stateSvc.List(c.Request.Context(), statedomain.ListStateRequest{
		Kind: statedomain.Kind(strings.TrimSpace(c.Query("tipo"))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// UpdateStateLabels renames a lifecycle state. Only the display fields
// change; the symbolic code the engine keys on is immutable.
func (s *Server) UpdateStateLabels(c *gin.Context) {
	var req updateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.stateSvc.UpdateLabels(c.Request.Context(), statedomain.UpdateStateRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Nombre:      strings.TrimSpace(req.Nombre),
		Descripcion: strings.TrimSpace(req.Descripcion),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
