package http

import (
	"github.com/mintid/mintid/internal/config"
	"github.com/mintid/mintid/internal/identity"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/metrics"
	"github.com/mintid/mintid/internal/service"
)

type Handler struct {
	services  *service.Services
	operators *identity.Operators
	metrics   *metrics.Metrics

	loginRatePerMinute int

	logger *logger.Logger
}

func NewHandler(services *service.Services, operators *identity.Operators, m *metrics.Metrics, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:           services,
		operators:          operators,
		metrics:            m,
		loginRatePerMinute: cfg.LoginRatePerMinute,
		logger:             logger,
	}
}
