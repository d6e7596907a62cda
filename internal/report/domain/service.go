package domain

import (
	"context"
	"errors"
)

type QuarterlyResponse struct {
	Year     int             `json:"anio"`
	Quarters []QuarterReport `json:"trimestres"`
}

type Service interface {
	Quarterly(ctx context.Context, year int) (QuarterlyResponse, error)
	Annual(ctx context.Context, year int) (AnnualReport, error)
}

var ErrInvalidYear = errors.New("invalid_year")
