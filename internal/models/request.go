package models

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Request parameter names
const (
	ParamMovieID   = "movieId"
	ParamCast      = "cast"
	ParamRoleName  = "roleName"
	ParamActorName = "actorName"
)

// ErrMissingMovieID is returned when movieId is absent or not a positive integer
var ErrMissingMovieID = errors.New("missing movie id")

var validate = validator.New()

// MovieRequest is a parsed movie lookup
type MovieRequest struct {
	MovieID     int `validate:"gt=0"`
	IncludeCast bool
	Filter      CastFilter
}

// ParseMovieRequest extracts a MovieRequest from path and query parameters.
// Cast filters are only read when withFilters is set.
func ParseMovieRequest(pathParams, queryParams map[string]string, withFilters bool) (*MovieRequest, error) {
	raw, ok := pathParams[ParamMovieID]
	if !ok {
		return nil, ErrMissingMovieID
	}

	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, ErrMissingMovieID
	}

	req := &MovieRequest{
		MovieID:     id,
		IncludeCast: queryParams[ParamCast] == "true",
	}
	if withFilters {
		req.Filter = NewCastFilter(queryParams[ParamRoleName], queryParams[ParamActorName])
	}

	// Zero and negative ids are reported the same way as an absent id
	if err := validate.Struct(req); err != nil {
		return nil, ErrMissingMovieID
	}

	return req, nil
}
