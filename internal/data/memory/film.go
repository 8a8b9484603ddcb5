package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
)

type filmRepository struct{ v *view }

func (r filmRepository) Create(_ context.Context, film *entity.Film) error {
	return r.v.write(func(t *tables) error {
		t.nextFilmID++
		film.ID = t.nextFilmID
		t.films[film.ID] = *film
		return nil
	})
}

func (r filmRepository) FindByID(_ context.Context, id int64) (*entity.Film, error) {
	var (
		film entity.Film
		ok   bool
	)
	r.v.read(func(t *tables) { film, ok = t.films[id] })
	if !ok {
		return nil, fmt.Errorf("film %d: %w", id, repository.ErrNotFound)
	}
	return &film, nil
}

func (r filmRepository) FindAll(_ context.Context) ([]*entity.Film, error) {
	var films []*entity.Film
	r.v.read(func(t *tables) {
		for _, id := range slices.Sorted(maps.Keys(t.films)) {
			film := t.films[id]
			films = append(films, &film)
		}
	})
	return films, nil
}

func (r filmRepository) Update(_ context.Context, film *entity.Film) error {
	return r.v.write(func(t *tables) error {
		if _, ok := t.films[film.ID]; !ok {
			return fmt.Errorf("film %d: %w", film.ID, repository.ErrNotFound)
		}
		t.films[film.ID] = *film
		return nil
	})
}

type filmGenreRepository struct{ v *view }

func (r filmGenreRepository) FindByFilmID(_ context.Context, filmID int64) ([]int, error) {
	var ids []int
	r.v.read(func(t *tables) { ids = slices.Collect(maps.Keys(t.filmGenres[filmID])) })
	return ids, nil
}

func (r filmGenreRepository) FindAll(_ context.Context) ([]entity.FilmGenre, error) {
	var pairs []entity.FilmGenre
	r.v.read(func(t *tables) {
		for filmID, genres := range t.filmGenres {
			for genreID := range genres {
				pairs = append(pairs, entity.FilmGenre{FilmID: filmID, GenreID: genreID})
			}
		}
	})
	return pairs, nil
}

func (r filmGenreRepository) CreateBatch(_ context.Context, filmID int64, genreIDs []int) error {
	return r.v.write(func(t *tables) error {
		if _, ok := t.films[filmID]; !ok {
			return fmt.Errorf("film %d: %w", filmID, repository.ErrNotFound)
		}
		set := t.filmGenres[filmID]
		if set == nil {
			set = map[int]struct{}{}
			t.filmGenres[filmID] = set
		}
		for _, id := range genreIDs {
			if _, ok := t.genres[id]; !ok {
				return fmt.Errorf("genre %d: %w", id, repository.ErrNotFound)
			}
			if _, dup := set[id]; dup {
				return fmt.Errorf("film_genre (%d, %d) already exists", filmID, id)
			}
		}
		for _, id := range genreIDs {
			set[id] = struct{}{}
		}
		return nil
	})
}

func (r filmGenreRepository) DeleteBatch(_ context.Context, filmID int64, genreIDs []int) error {
	return r.v.write(func(t *tables) error {
		for _, id := range genreIDs {
			delete(t.filmGenres[filmID], id)
		}
		return nil
	})
}

type likeRepository struct{ v *view }

func (r likeRepository) FindByFilmID(_ context.Context, filmID int64) ([]int64, error) {
	var ids []int64
	r.v.read(func(t *tables) { ids = slices.Collect(maps.Keys(t.likes[filmID])) })
	return ids, nil
}

func (r likeRepository) FindAll(_ context.Context) ([]entity.Like, error) {
	var likes []entity.Like
	r.v.read(func(t *tables) {
		for filmID, users := range t.likes {
			for userID := range users {
				likes = append(likes, entity.Like{FilmID: filmID, UserID: userID})
			}
		}
	})
	return likes, nil
}

func (r likeRepository) CreateBatch(_ context.Context, filmID int64, userIDs []int64) error {
	return r.v.write(func(t *tables) error {
		if _, ok := t.films[filmID]; !ok {
			return fmt.Errorf("film %d: %w", filmID, repository.ErrNotFound)
		}
		set := t.likes[filmID]
		if set == nil {
			set = map[int64]struct{}{}
			t.likes[filmID] = set
		}
		for _, id := range userIDs {
			if _, ok := t.users[id]; !ok {
				return fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
			}
			if _, dup := set[id]; dup {
				return fmt.Errorf("like (%d, %d) already exists", filmID, id)
			}
		}
		for _, id := range userIDs {
			set[id] = struct{}{}
		}
		return nil
	})
}

func (r likeRepository) DeleteBatch(_ context.Context, filmID int64, userIDs []int64) error {
	return r.v.write(func(t *tables) error {
		for _, id := range userIDs {
			delete(t.likes[filmID], id)
		}
		return nil
	})
}
