// Package memory is a process-local implementation of the repository contracts.
//
// A single RWMutex guards all tables. Repositories handed out by
// Store.Repository lock per call; repositories passed to a WithinTx callback
// run under the store's write lock, and the tables are restored from a
// snapshot when the callback fails.
package memory

import (
	"context"
	"maps"
	"sync"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"

	"go.uber.org/zap"
)

type locker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type nopLocker struct{}

func (nopLocker) Lock()    {}
func (nopLocker) Unlock()  {}
func (nopLocker) RLock()   {}
func (nopLocker) RUnlock() {}

type tables struct {
	nextFilmID  int64
	nextUserID  int64
	films       map[int64]entity.Film
	users       map[int64]entity.User
	filmGenres  map[int64]map[int]struct{}
	likes       map[int64]map[int64]struct{}
	friendships map[int64]map[int64]bool
	genres      map[int]entity.Genre
	mpa         map[int]entity.Mpa
}

func newTables() *tables {
	t := &tables{
		films:       map[int64]entity.Film{},
		users:       map[int64]entity.User{},
		filmGenres:  map[int64]map[int]struct{}{},
		likes:       map[int64]map[int64]struct{}{},
		friendships: map[int64]map[int64]bool{},
		genres:      map[int]entity.Genre{},
		mpa:         map[int]entity.Mpa{},
	}

	for i, name := range []string{"Комедия", "Драма", "Мультфильм", "Триллер", "Документальный", "Боевик"} {
		t.genres[i+1] = entity.Genre{ID: i + 1, Name: name}
	}
	for i, name := range []string{"G", "PG", "PG-13", "R", "NC-17"} {
		t.mpa[i+1] = entity.Mpa{ID: i + 1, Name: name}
	}

	return t
}

func (t *tables) clone() *tables {
	c := *t
	c.films = maps.Clone(t.films)
	c.users = maps.Clone(t.users)
	c.filmGenres = cloneNested(t.filmGenres)
	c.likes = cloneNested(t.likes)
	c.friendships = cloneNested(t.friendships)
	return &c
}

func cloneNested[K, K2 comparable, V any](m map[K]map[K2]V) map[K]map[K2]V {
	out := make(map[K]map[K2]V, len(m))
	for k, inner := range m {
		out[k] = maps.Clone(inner)
	}
	return out
}

type Store struct {
	mu   sync.RWMutex
	data *tables
	log  *zap.Logger
}

// NewStore returns an empty store seeded with the genre and MPA reference tables.
func NewStore(log *zap.Logger) *Store {
	return &Store{
		data: newTables(),
		log:  log.With(zap.String("repository", "memory")),
	}
}

// Repository returns repositories whose every call takes the store lock.
func (s *Store) Repository() *repository.Repository {
	repo := s.bind(&s.mu)
	repo.Tx = s
	return repo
}

// WithinTx implements repository.Transactor.
func (s *Store) WithinTx(ctx context.Context, fn func(repo *repository.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(s.bind(nopLocker{})); err != nil {
		s.data = snapshot
		s.log.Debug("Transaction rolled back", zap.Error(err))
		return err
	}

	return nil
}

func (s *Store) bind(l locker) *repository.Repository {
	v := &view{store: s, lock: l}
	return &repository.Repository{
		Film:       filmRepository{v},
		FilmGenre:  filmGenreRepository{v},
		Like:       likeRepository{v},
		User:       userRepository{v},
		Friendship: friendshipRepository{v},
		Genre:      genreRepository{v},
		Mpa:        mpaRepository{v},
	}
}

// view resolves store.data on every call so a rollback swap is visible to all repositories.
type view struct {
	store *Store
	lock  locker
}

func (v *view) read(fn func(t *tables)) {
	v.lock.RLock()
	defer v.lock.RUnlock()
	fn(v.store.data)
}

func (v *view) write(fn func(t *tables) error) error {
	v.lock.Lock()
	defer v.lock.Unlock()
	return fn(v.store.data)
}
