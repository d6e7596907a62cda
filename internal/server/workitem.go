package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	workitemdomain "github.com/servibill/servibill/internal/workitem/domain"
)

type workItemRequest struct {
	Nombre   string          `json:"nombre"`
	Precio   decimal.Decimal `json:"precio"`
	Especial bool            `json:"especial"`
}

type clientPriceRequest struct {
	ClientID string          `json:"cliente"`
	Precio   decimal.Decimal `json:"precio"`
}

func (s *Server) CreateWorkItem(c *gin.Context) {
	var req workItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.workItemSvc.Create(c.Request.Context(), workitemdomain.CreateWorkItemRequest{
		Nombre:   strings.TrimSpace(req.Nombre),
		Precio:   req.Precio,
		Especial: req.Especial,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListWorkItems(c *gin.Context) {
	resp, err := s.workItemSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetWorkItemByID(c *gin.Context) {
	resp, err := s.workItemSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateWorkItem(c *gin.Context) {
	var req workItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.workItemSvc.Update(c.Request.Context(), workitemdomain.UpdateWorkItemRequest{
		ID:       strings.TrimSpace(c.Param("id")),
		Nombre:   strings.TrimSpace(req.Nombre),
		Precio:   req.Precio,
		Especial: req.Especial,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteWorkItem(c *gin.Context) {
	if err := s.workItemSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) SetClientPrice(c *gin.Context) {
	var req clientPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.workItemSvc.SetClientPrice(c.Request.Context(), workitemdomain.SetClientPriceRequest{
		WorkItemID: strings.TrimSpace(c.Param("id")),
		ClientID:   strings.TrimSpace(req.ClientID),
		Precio:     req.Precio,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListClientPrices(c *gin.Context) {
	resp, err := s.workItemSvc.ListClientPrices(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteClientPrice(c *gin.Context) {
	err := s.workItemSvc.DeleteClientPrice(c.Request.Context(),
		strings.TrimSpace(c.Param("id")),
		strings.TrimSpace(c.Param("clientId")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
