package model

// Genre represents a row in the `genres` table.  It maps a small
// integer ID to a display name.  Gigs reference this table via the
// GenreID field.  Genre IDs start at 1; zero is never a valid genre
// and is used by forms to mean "nothing selected".
//
// Fields:
//  ID   – numeric identifier of the genre.
//  Name – unique genre name (e.g. Rock, Jazz).
type Genre struct {
	ID   uint8  `json:"id"`   // genres.id
	Name string `json:"name"` // genres.name
}
