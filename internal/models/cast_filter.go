package models

import "fmt"

// CastFilterKind selects how cast members are narrowed down
type CastFilterKind int

const (
	// NoFilter returns every cast member of the movie
	NoFilter CastFilterKind = iota
	// RoleFilter matches cast members whose roleName starts with a prefix
	RoleFilter
	// ActorFilter matches cast members whose actorName starts with a prefix
	ActorFilter
)

// String implements fmt.Stringer
func (k CastFilterKind) String() string {
	switch k {
	case NoFilter:
		return "none"
	case RoleFilter:
		return "role"
	case ActorFilter:
		return "actor"
	default:
		return fmt.Sprintf("CastFilterKind(%d)", int(k))
	}
}

// CastFilter is a prefix filter over cast members
type CastFilter struct {
	Kind   CastFilterKind
	Prefix string
}

// NewCastFilter picks the filter for the given query values. The role
// filter wins over the actor filter; empty values count as absent.
func NewCastFilter(roleName, actorName string) CastFilter {
	switch {
	case roleName != "":
		return CastFilter{Kind: RoleFilter, Prefix: roleName}
	case actorName != "":
		return CastFilter{Kind: ActorFilter, Prefix: actorName}
	default:
		return CastFilter{Kind: NoFilter}
	}
}
