package request

// FilmRequest is the full desired state of a film for create and update.
// A nil Genres or Likes keeps the persisted association as it is on update;
// an empty list clears it.
type FilmRequest struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name" validate:"required,notblank,max=255"`
	Description string       `json:"description" validate:"max=200"`
	ReleaseDate string       `json:"releaseDate" validate:"required,datetime=2006-01-02,releasedate"`
	Duration    int          `json:"duration" validate:"gt=0"`
	Mpa         *RefRequest  `json:"mpa" validate:"required"`
	Genres      []RefRequest `json:"genres,omitempty" validate:"omitempty,dive"`
	Likes       []int64      `json:"likes,omitempty" validate:"omitempty,dive,gt=0"`
}

// RefRequest points at a reference table row by id.
type RefRequest struct {
	ID int `json:"id" validate:"gt=0"`
}

// GenreIDs returns nil when the request carried no genre list.
func (r *FilmRequest) GenreIDs() []int {
	if r.Genres == nil {
		return nil
	}
	ids := make([]int, 0, len(r.Genres))
	for _, g := range r.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}
