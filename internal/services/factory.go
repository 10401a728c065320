package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	MovieService      MovieService
	CastMemberService MovieService

	store repositories.Store
}

// NewServiceContainer creates both movie services on a shared store
func NewServiceContainer(store repositories.Store, tables config.TablesConfig, logger *logrus.Logger) (*ServiceContainer, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}

	return &ServiceContainer{
		MovieService:      NewMovieService(store, tables, logger),
		CastMemberService: NewCastMemberService(store, tables, logger),
		store:             store,
	}, nil
}

// Close releases the underlying store
func (sc *ServiceContainer) Close() error {
	if sc.store == nil {
		return nil
	}
	return sc.store.Close()
}
