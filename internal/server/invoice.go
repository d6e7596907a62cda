package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	billingdomain "github.com/servibill/servibill/internal/billing/domain"
	statedomain "github.com/servibill/servibill/internal/state/domain"
)

type createDocumentRequest struct {
	ClientID string    `json:"cliente"`
	Fecha    time.Time `json:"fecha"`
}

type assignRepairsRequest struct {
	RepairIDs []string `json:"reparaciones"`
}

type advanceRequest struct {
	Code string `json:"estado"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billingSvc.CreateInvoice(c.Request.Context(), billingdomain.CreateDocumentRequest{
		ClientID: strings.TrimSpace(req.ClientID),
		Fecha:    req.Fecha,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	resp, err := s.billingSvc.ListInvoices(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.billingSvc.GetInvoice(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AssignInvoiceRepairs(c *gin.Context) {
	s.assignRepairs(c, statedomain.KindFactura, s.billingSvc.AssignRepairs)
}

func (s *Server) UnassignInvoiceRepairs(c *gin.Context) {
	s.assignRepairs(c, statedomain.KindFactura, s.billingSvc.UnassignRepairs)
}

func (s *Server) AdvanceInvoice(c *gin.Context) {
	s.advanceDocument(c, statedomain.KindFactura)
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	s.deleteDocument(c, statedomain.KindFactura)
}

func (s *Server) assignRepairs(c *gin.Context, kind statedomain.Kind, op func(context.Context, billingdomain.AssignRepairsRequest) error) {
	var req assignRepairsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := op(c.Request.Context(), billingdomain.AssignRepairsRequest{
		Kind:       kind,
		DocumentID: strings.TrimSpace(c.Param("id")),
		RepairIDs:  req.RepairIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.getDocument(c, kind)
}

func (s *Server) advanceDocument(c *gin.Context, kind statedomain.Kind) {
	var req advanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.billingSvc.Advance(c.Request.Context(), billingdomain.AdvanceRequest{
		Kind:       kind,
		DocumentID: strings.TrimSpace(c.Param("id")),
		Code:       statedomain.Code(strings.TrimSpace(req.Code)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.getDocument(c, kind)
}

func (s *Server) deleteDocument(c *gin.Context, kind statedomain.Kind) {
	if err := s.billingSvc.Delete(c.Request.Context(), kind, strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) getDocument(c *gin.Context, kind statedomain.Kind) {
	id := strings.TrimSpace(c.Param("id"))
	if kind == statedomain.KindFactura {
		resp, err := s.billingSvc.GetInvoice(c.Request.Context(), id)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": resp})
		return
	}

	resp, err := s.billingSvc.GetProforma(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
