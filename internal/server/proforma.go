package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	billingdomain "github.com/servibill/servibill/internal/billing/domain"
	statedomain "github.com/servibill/servibill/internal/state/domain"
)

type convertProformaRequest struct {
	NumPedido string `json:"num_pedido"`
}

func (s *Server) CreateProforma(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billingSvc.CreateProforma(c.Request.Context(), billingdomain.CreateDocumentRequest{
		ClientID: strings.TrimSpace(req.ClientID),
		Fecha:    req.Fecha,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProformas(c *gin.Context) {
	resp, err := s.billingSvc.ListProformas(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProformaByID(c *gin.Context) {
	resp, err := s.billingSvc.GetProforma(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AssignProformaRepairs(c *gin.Context) {
	s.assignRepairs(c, statedomain.KindProforma, s.billingSvc.AssignRepairs)
}

func (s *Server) UnassignProformaRepairs(c *gin.Context) {
	s.assignRepairs(c, statedomain.KindProforma, s.billingSvc.UnassignRepairs)
}

func (s *Server) AdvanceProforma(c *gin.Context) {
	s.advanceDocument(c, statedomain.KindProforma)
}

func (s *Server) DeleteProforma(c *gin.Context) {
	s.deleteDocument(c, statedomain.KindProforma)
}

// ConvertProforma turns an accepted proforma into a fresh invoice in one
// atomic step and returns the new invoice.
func (s *Server) ConvertProforma(c *gin.Context) {
	var req convertProformaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billingSvc.ConvertProformaToInvoice(c.Request.Context(), billingdomain.ConvertRequest{
		ProformaID: strings.TrimSpace(c.Param("id")),
		NumPedido:  strings.TrimSpace(req.NumPedido),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
