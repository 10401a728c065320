package services

import (
	"context"
	"errors"

	"movie-catalog-api/internal/models"
)

// ErrMovieNotFound is returned when no movie exists for a valid id
var ErrMovieNotFound = errors.New("movie not found")

// MovieService looks up a movie and, on request, its cast
type MovieService interface {
	// GetMovie fetches the movie for req.MovieID. The cast query only runs
	// when req.IncludeCast is set and the movie exists.
	GetMovie(ctx context.Context, req *models.MovieRequest) (*models.MovieDetails, error)
}
