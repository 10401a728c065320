package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/models"
	"movie-catalog-api/internal/repositories"
)

// movieService implements the MovieService interface
type movieService struct {
	store       repositories.Store
	moviesTable string
	castQuery   CastQueryBuilder
	logger      *logrus.Logger
}

// NewMovieService creates the service behind the movie endpoint, which
// reads cast from a separate cast table
func NewMovieService(store repositories.Store, tables config.TablesConfig, logger *logrus.Logger) MovieService {
	return newMovieService(store, tables.Movies, MovieCastQuery(tables.MovieCast), logger)
}

// NewCastMemberService creates the service behind the cast member endpoint,
// which reads filtered cast members from the movies table
func NewCastMemberService(store repositories.Store, tables config.TablesConfig, logger *logrus.Logger) MovieService {
	return newMovieService(store, tables.Movies, CastMemberQuery(tables.Movies, tables.RoleIndex), logger)
}

func newMovieService(store repositories.Store, moviesTable string, castQuery CastQueryBuilder, logger *logrus.Logger) *movieService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &movieService{
		store:       store,
		moviesTable: moviesTable,
		castQuery:   castQuery,
		logger:      logger,
	}
}

// GetMovie implements MovieService.GetMovie
func (s *movieService) GetMovie(ctx context.Context, req *models.MovieRequest) (*models.MovieDetails, error) {
	if req == nil {
		return nil, fmt.Errorf("movie request cannot be nil")
	}

	movie, err := s.store.GetByKey(ctx, s.moviesTable, repositories.Key{Attribute: AttrID, Value: req.MovieID})
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	details := models.NewMovieDetails(movie)
	if !req.IncludeCast {
		return details, nil
	}

	q := s.castQuery(req.MovieID, req.Filter)
	s.logger.WithFields(logrus.Fields{
		"movie_id": req.MovieID,
		"table":    q.Table,
		"index":    q.Index,
		"filter":   req.Filter.Kind.String(),
	}).Debug("Querying cast")

	cast, err := s.store.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query cast: %w", err)
	}

	return details.WithCast(cast), nil
}
