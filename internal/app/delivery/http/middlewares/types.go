package middlewares

import (
	"availability-service/internal/app/config"
	"availability-service/internal/app/services/shared/jwtmanager"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log             *zap.Logger
	JWTManager      *jwtmanager.JWTManager
	MutationLimiter *MutationLimiter
	InternalConfig  *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, jwtManager *jwtmanager.JWTManager, internalConfig *config.InternalConfig) (*Middlewares, error) {
	mutationLimiter, err := NewMutationLimiter(
		internalConfig.App.MaxMutationsPerMinute,
		internalConfig.App.MutationBurst,
		internalConfig.App.MutationLimiterSize,
	)
	if err != nil {
		return nil, err
	}
	return &Middlewares{
		Log:             logger,
		JWTManager:      jwtManager,
		MutationLimiter: mutationLimiter,
		InternalConfig:  internalConfig,
	}, nil
}
