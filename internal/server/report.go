package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) QuarterlyReport(c *gin.Context) {
	year, err := parseYear(c.Query("year"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.reportSvc.Quarterly(c.Request.Context(), year)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AnnualReport(c *gin.Context) {
	year, err := parseYear(c.Query("year"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.reportSvc.Annual(c.Request.Context(), year)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseYear(raw string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || year <= 0 {
		return 0, newValidationError("year", "invalid_year", "invalid year")
	}
	return year, nil
}
