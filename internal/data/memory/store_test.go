package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"

	"go.uber.org/zap"
)

func newFilm(name string) *entity.Film {
	return &entity.Film{
		Name:        name,
		Description: "description",
		ReleaseDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		MpaID:       1,
	}
}

func TestStore_AssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore(zap.NewNop()).Repository()

	for want := int64(1); want <= 3; want++ {
		film := newFilm("film")
		if err := repo.Film.Create(ctx, film); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if film.ID != want {
			t.Errorf("film id = %d, want %d", film.ID, want)
		}
	}

	user := &entity.User{Email: "a@b.c", Login: "a"}
	if err := repo.User.Create(ctx, user); err != nil {
		t.Fatalf("Create user: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("user id = %d, want 1 (sequences are per table)", user.ID)
	}
}

func TestStore_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore(zap.NewNop()).Repository()

	if _, err := repo.Film.FindByID(ctx, 42); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("FindByID error = %v, want ErrNotFound", err)
	}

	missing := newFilm("ghost")
	missing.ID = 42
	if err := repo.Film.Update(ctx, missing); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update error = %v, want ErrNotFound", err)
	}
	if _, err := repo.Genre.FindByID(ctx, 99); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Genre.FindByID error = %v, want ErrNotFound", err)
	}
	if _, err := repo.Mpa.FindByID(ctx, 99); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Mpa.FindByID error = %v, want ErrNotFound", err)
	}
}

func TestStore_ReferenceSeed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore(zap.NewNop()).Repository()

	genres, _ := repo.Genre.FindAll(ctx)
	if len(genres) != 6 || genres[0].ID != 1 || genres[0].Name != "Комедия" {
		t.Errorf("unexpected genre seed: %+v", genres)
	}

	ratings, _ := repo.Mpa.FindAll(ctx)
	if len(ratings) != 5 || ratings[2].Name != "PG-13" {
		t.Errorf("unexpected mpa seed: %+v", ratings)
	}
}

func TestStore_WithinTxRollsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore(zap.NewNop()).Repository()

	film := newFilm("kept")
	if err := repo.Film.Create(ctx, film); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.FilmGenre.CreateBatch(ctx, film.ID, []int{1}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	boom := errors.New("boom")
	err := repo.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.FilmGenre.DeleteBatch(ctx, film.ID, []int{1}); err != nil {
			return err
		}
		if err := tx.FilmGenre.CreateBatch(ctx, film.ID, []int{2, 3}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTx error = %v, want boom", err)
	}

	genres, _ := repo.FilmGenre.FindByFilmID(ctx, film.ID)
	if len(genres) != 1 || genres[0] != 1 {
		t.Errorf("genres after rollback = %v, want [1]", genres)
	}
}

func TestStore_WithinTxCommits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore(zap.NewNop()).Repository()

	var id int64
	err := repo.WithinTx(ctx, func(tx *repository.Repository) error {
		film := newFilm("committed")
		if err := tx.Film.Create(ctx, film); err != nil {
			return err
		}
		id = film.ID
		return tx.FilmGenre.CreateBatch(ctx, film.ID, []int{4})
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	if _, err := repo.Film.FindByID(ctx, id); err != nil {
		t.Errorf("film not committed: %v", err)
	}
	genres, _ := repo.FilmGenre.FindByFilmID(ctx, id)
	if len(genres) != 1 || genres[0] != 4 {
		t.Errorf("genres = %v, want [4]", genres)
	}
}

func TestStore_CreateBatchRejectsUnknownReferences(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore(zap.NewNop()).Repository()

	film := newFilm("refs")
	_ = repo.Film.Create(ctx, film)

	if err := repo.FilmGenre.CreateBatch(ctx, film.ID, []int{1, 77}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown genre error = %v, want ErrNotFound", err)
	}
	if genres, _ := repo.FilmGenre.FindByFilmID(ctx, film.ID); len(genres) != 0 {
		t.Errorf("partial genre write: %v", genres)
	}
	if err := repo.Like.CreateBatch(ctx, film.ID, []int64{5}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown user error = %v, want ErrNotFound", err)
	}
}

func TestStore_ConcurrentReadsAndWrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore(zap.NewNop()).Repository()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = repo.WithinTx(ctx, func(tx *repository.Repository) error {
				return tx.Film.Create(ctx, newFilm("concurrent"))
			})
		}()
		go func() {
			defer wg.Done()
			_, _ = repo.Film.FindAll(ctx)
		}()
	}
	wg.Wait()

	films, _ := repo.Film.FindAll(ctx)
	if len(films) != 20 {
		t.Errorf("film count = %d, want 20", len(films))
	}
}
