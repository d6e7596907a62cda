package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	locationdomain "github.com/servibill/servibill/internal/location/domain"
)

type locationRequest struct {
	Calle    string `json:"calle"`
	Numero   string `json:"numero"`
	Ciudad   string `json:"ciudad"`
	Escalera string `json:"escalera"`
	Ascensor bool   `json:"ascensor"`
}

func (s *Server) CreateLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.locationSvc.Create(c.Request.Context(), locationdomain.CreateLocationRequest{
		Calle:    strings.TrimSpace(req.Calle),
		Numero:   strings.TrimSpace(req.Numero),
		Ciudad:   strings.TrimSpace(req.Ciudad),
		Escalera: strings.TrimSpace(req.Escalera),
		Ascensor: req.Ascensor,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLocations(c *gin.Context) {
	resp, err := s.locationSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetLocationByID(c *gin.Context) {
	resp, err := s.locationSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.locationSvc.Update(c.Request.Context(), locationdomain.UpdateLocationRequest{
		ID:       strings.TrimSpace(c.Param("id")),
		Calle:    strings.TrimSpace(req.Calle),
		Numero:   strings.TrimSpace(req.Numero),
		Ciudad:   strings.TrimSpace(req.Ciudad),
		Escalera: strings.TrimSpace(req.Escalera),
		Ascensor: req.Ascensor,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteLocation(c *gin.Context) {
	if err := s.locationSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
