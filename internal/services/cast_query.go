package services

import (
	"movie-catalog-api/internal/models"
	"movie-catalog-api/internal/repositories"
)

// Item attribute names
const (
	AttrID        = "id"
	AttrMovieID   = "movieId"
	AttrRoleName  = "roleName"
	AttrActorName = "actorName"
)

// CastQueryBuilder maps a movie id and filter to a fixed query shape
type CastQueryBuilder func(movieID int, filter models.CastFilter) *repositories.Query

// MovieCastQuery queries a dedicated cast table by movie id. Filters are
// not supported on this table and are ignored.
func MovieCastQuery(castTable string) CastQueryBuilder {
	return func(movieID int, _ models.CastFilter) *repositories.Query {
		return &repositories.Query{
			Table: castTable,
			Key:   repositories.Key{Attribute: AttrMovieID, Value: movieID},
		}
	}
}

// CastMemberQuery queries cast members stored alongside movies. A role
// filter goes through the role index; an actor filter uses the base table.
func CastMemberQuery(table, roleIndex string) CastQueryBuilder {
	return func(movieID int, filter models.CastFilter) *repositories.Query {
		q := &repositories.Query{
			Table: table,
			Key:   repositories.Key{Attribute: AttrMovieID, Value: movieID},
		}

		switch filter.Kind {
		case models.RoleFilter:
			q.Index = roleIndex
			q.Condition = &repositories.PrefixCondition{Attribute: AttrRoleName, Prefix: filter.Prefix}
		case models.ActorFilter:
			q.Condition = &repositories.PrefixCondition{Attribute: AttrActorName, Prefix: filter.Prefix}
		}

		return q
	}
}
