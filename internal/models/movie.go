package models

// Record is a stored item with opaque attributes
type Record map[string]interface{}

// CastField is the attribute under which related cast items are embedded
const CastField = "cast"

// MovieDetails combines a movie record with its optionally requested cast.
// The fetched record is never modified; Document builds a new value.
type MovieDetails struct {
	Movie Record
	Cast  []Record

	castIncluded bool
}

// NewMovieDetails wraps a movie record without cast
func NewMovieDetails(movie Record) *MovieDetails {
	return &MovieDetails{Movie: movie}
}

// WithCast returns a copy of the details with the cast attached. A nil
// slice is normalised to an empty one so the field is always present.
func (d *MovieDetails) WithCast(cast []Record) *MovieDetails {
	if cast == nil {
		cast = []Record{}
	}
	return &MovieDetails{
		Movie:        d.Movie,
		Cast:         cast,
		castIncluded: true,
	}
}

// CastIncluded reports whether a cast query was performed
func (d *MovieDetails) CastIncluded() bool {
	return d.castIncluded
}

// Document returns the response representation of the movie
func (d *MovieDetails) Document() Record {
	doc := make(Record, len(d.Movie)+1)
	for k, v := range d.Movie {
		doc[k] = v
	}
	if d.castIncluded {
		doc[CastField] = d.Cast
	}
	return doc
}
