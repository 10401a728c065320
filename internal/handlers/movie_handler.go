package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"movie-catalog-api/internal/models"
	"movie-catalog-api/internal/services"
	"movie-catalog-api/pkg/lambda"
)

// ServiceResolver returns the service that serves a parsed request. It is
// only called once the movie id is known to be present.
type ServiceResolver func(ctx context.Context) (services.MovieService, error)

// MovieHandler handles movie lookup requests
type MovieHandler struct {
	resolve     ServiceResolver
	withFilters bool
	logger      *logrus.Logger
}

// NewMovieHandler creates the handler for movie lookups with cast read from
// the cast table
func NewMovieHandler(movieService services.MovieService, logger *logrus.Logger) *MovieHandler {
	return newMovieHandler(staticService(movieService), false, logger)
}

// NewCastMemberHandler creates the handler for movie lookups with cast
// members filtered by role or actor name
func NewCastMemberHandler(movieService services.MovieService, logger *logrus.Logger) *MovieHandler {
	return newMovieHandler(staticService(movieService), true, logger)
}

// NewLazyMovieHandler is NewMovieHandler with the service built on first use
func NewLazyMovieHandler(resolve ServiceResolver, logger *logrus.Logger) *MovieHandler {
	return newMovieHandler(resolve, false, logger)
}

// NewLazyCastMemberHandler is NewCastMemberHandler with the service built on
// first use
func NewLazyCastMemberHandler(resolve ServiceResolver, logger *logrus.Logger) *MovieHandler {
	return newMovieHandler(resolve, true, logger)
}

func newMovieHandler(resolve ServiceResolver, withFilters bool, logger *logrus.Logger) *MovieHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &MovieHandler{
		resolve:     resolve,
		withFilters: withFilters,
		logger:      logger,
	}
}

func staticService(movieService services.MovieService) ServiceResolver {
	return func(context.Context) (services.MovieService, error) {
		return movieService, nil
	}
}

// HandleGet implements the lookup for the Lambda runtime. It always returns a
// response; failures are reported in the envelope.
func (h *MovieHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	entry := h.logger.WithField("request_id", req.RequestID)
	return h.lookup(ctx, entry, req.PathParams, req.QueryParams), nil
}

// @Summary Get a movie
// @Description Get a movie by id, with its cast from the cast table when cast=true
// @Tags movies
// @Produce json
// @Param movieId path int true "Movie ID"
// @Param cast query string false "Include cast" Enums(true)
// @Success 200 {object} DataResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/{movieId} [get]
func (h *MovieHandler) GetMovie(c *gin.Context) {
	h.serveGin(c)
}

// @Summary Get a movie with cast members
// @Description Get a movie by id, with cast members filtered by role or actor name prefix when cast=true
// @Tags movies
// @Produce json
// @Param movieId path int true "Movie ID"
// @Param cast query string false "Include cast members" Enums(true)
// @Param roleName query string false "Role name prefix, takes precedence over actorName"
// @Param actorName query string false "Actor name prefix"
// @Success 200 {object} DataResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/{movieId}/cast-members [get]
func (h *MovieHandler) GetCastMembers(c *gin.Context) {
	h.serveGin(c)
}

func (h *MovieHandler) serveGin(c *gin.Context) {
	pathParams := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		pathParams[p.Key] = p.Value
	}

	queryParams := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			queryParams[key] = values[0]
		}
	}

	entry := h.logger.WithField("request_id", c.GetString("request_id"))
	resp := h.lookup(c.Request.Context(), entry, pathParams, queryParams)
	c.Data(resp.StatusCode, lambda.ContentTypeJSON, resp.Body)
}

// lookup runs parse, fetch and format for one request
func (h *MovieHandler) lookup(ctx context.Context, entry *logrus.Entry, pathParams, queryParams map[string]string) *lambda.Response {
	req, err := models.ParseMovieRequest(pathParams, queryParams, h.withFilters)
	if err != nil {
		entry.WithField("movie_id", pathParams[models.ParamMovieID]).Info("Missing movie id")
		return jsonResponse(http.StatusNotFound, MessageResponse{Message: MessageMissingMovieID})
	}

	entry = entry.WithFields(logrus.Fields{
		"movie_id": req.MovieID,
		"cast":     req.IncludeCast,
	})

	movieService, err := h.resolve(ctx)
	if err != nil {
		entry.WithError(err).Error("Movie service unavailable")
		return jsonResponse(http.StatusInternalServerError, newErrorResponse(err))
	}

	details, err := movieService.GetMovie(ctx, req)
	if err != nil {
		if errors.Is(err, services.ErrMovieNotFound) {
			entry.Info("Movie not found")
			return jsonResponse(http.StatusNotFound, MessageResponse{Message: MessageInvalidMovieID})
		}
		entry.WithError(err).Error("Movie lookup failed")
		return jsonResponse(http.StatusInternalServerError, newErrorResponse(err))
	}

	entry.Debug("Movie found")
	return jsonResponse(http.StatusOK, DataResponse{Data: details.Document()})
}
