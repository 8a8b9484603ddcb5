package entity

// Mpa is a Motion Picture Association rating.
type Mpa struct {
	ID   int    `db:"mpa_id"`
	Name string `db:"name"`
}
