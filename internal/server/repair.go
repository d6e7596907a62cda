package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	repairdomain "github.com/servibill/servibill/internal/repair/domain"
)

type repairRequest struct {
	Fecha         time.Time `json:"fecha"`
	NumReparacion string    `json:"num_reparacion"`
	NumPedido     string    `json:"num_pedido"`
	LocationID    string    `json:"localizacion"`
	WorkItemIDs   []string  `json:"trabajos"`
	Comentarios   string    `json:"comentarios"`
}

func (s *Server) CreateRepair(c *gin.Context) {
	var req repairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.repairSvc.Create(c.Request.Context(), repairdomain.CreateRepairRequest{
		Fecha:         req.Fecha,
		NumReparacion: strings.TrimSpace(req.NumReparacion),
		NumPedido:     strings.TrimSpace(req.NumPedido),
		LocationID:    strings.TrimSpace(req.LocationID),
		WorkItemIDs:   req.WorkItemIDs,
		Comentarios:   strings.TrimSpace(req.Comentarios),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRepairs(c *gin.Context) {
	resp, err := s.repairSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ListGroupedRepairs serves the grouped work view. With asignables=1 the
// groups are filtered to what the document named by tipo and documento
// could still take.
func (s *Server) ListGroupedRepairs(c *gin.Context) {
	var query struct {
		Asignables bool   `form:"asignables"`
		Tipo       string `form:"tipo"`
		Documento  string `form:"documento"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.repairSvc.ListGrouped(c.Request.Context(), repairdomain.ListGroupedRequest{
		Asignables: query.Asignables,
		Tipo:       strings.TrimSpace(query.Tipo),
		DocumentID: strings.TrimSpace(query.Documento),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRepairByID(c *gin.Context) {
	resp, err := s.repairSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateRepair(c *gin.Context) {
	var req repairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.repairSvc.Update(c.Request.Context(), repairdomain.UpdateRepairRequest{
		ID:            strings.TrimSpace(c.Param("id")),
		Fecha:         req.Fecha,
		NumReparacion: strings.TrimSpace(req.NumReparacion),
		NumPedido:     strings.TrimSpace(req.NumPedido),
		LocationID:    strings.TrimSpace(req.LocationID),
		WorkItemIDs:   req.WorkItemIDs,
		Comentarios:   strings.TrimSpace(req.Comentarios),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteRepair(c *gin.Context) {
	if err := s.repairSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
