package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
)

type genreRepository struct{ v *view }

func (r genreRepository) FindByID(_ context.Context, id int) (*entity.Genre, error) {
	var (
		genre entity.Genre
		ok    bool
	)
	r.v.read(func(t *tables) { genre, ok = t.genres[id] })
	if !ok {
		return nil, fmt.Errorf("genre %d: %w", id, repository.ErrNotFound)
	}
	return &genre, nil
}

func (r genreRepository) FindAll(_ context.Context) ([]*entity.Genre, error) {
	var genres []*entity.Genre
	r.v.read(func(t *tables) {
		for _, id := range slices.Sorted(maps.Keys(t.genres)) {
			genre := t.genres[id]
			genres = append(genres, &genre)
		}
	})
	return genres, nil
}

type mpaRepository struct{ v *view }

func (r mpaRepository) FindByID(_ context.Context, id int) (*entity.Mpa, error) {
	var (
		rating entity.Mpa
		ok     bool
	)
	r.v.read(func(t *tables) { rating, ok = t.mpa[id] })
	if !ok {
		return nil, fmt.Errorf("mpa %d: %w", id, repository.ErrNotFound)
	}
	return &rating, nil
}

func (r mpaRepository) FindAll(_ context.Context) ([]*entity.Mpa, error) {
	var ratings []*entity.Mpa
	r.v.read(func(t *tables) {
		for _, id := range slices.Sorted(maps.Keys(t.mpa)) {
			rating := t.mpa[id]
			ratings = append(ratings, &rating)
		}
	})
	return ratings, nil
}
