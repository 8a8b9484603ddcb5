package usecase

import (
	"context"
	"fmt"
	"testing"

	"filmorate/internal/data/memory"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/request"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type fixture struct {
	svc  *Service
	repo *repository.Repository
}

func newFixture(t *testing.T, policy string) *fixture {
	t.Helper()

	repo := memory.NewStore(zap.NewNop()).Repository()
	cfg := &utils.Config{Domain: utils.DomainConfig{FriendshipPolicy: policy, TopFilmsDefault: 10}}
	svc, err := NewService(repo, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return &fixture{svc: svc, repo: repo}
}

func filmRequest(name string, genres ...int) *request.FilmRequest {
	req := &request.FilmRequest{
		Name:        name,
		Description: "A film about " + name,
		ReleaseDate: "1999-03-31",
		Duration:    136,
		Mpa:         &request.RefRequest{ID: 4},
	}
	if genres != nil {
		req.Genres = []request.RefRequest{}
		for _, id := range genres {
			req.Genres = append(req.Genres, request.RefRequest{ID: id})
		}
	}
	return req
}

func userRequest(login string) *request.UserRequest {
	return &request.UserRequest{
		Email:    login + "@example.com",
		Login:    login,
		Birthday: "1990-05-17",
	}
}

func (f *fixture) createFilm(t *testing.T, req *request.FilmRequest) int64 {
	t.Helper()
	film, err := f.svc.Film.CreateFilm(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateFilm(%s): %v", req.Name, err)
	}
	return film.ID
}

func (f *fixture) createUsers(t *testing.T, n int) []int64 {
	t.Helper()
	ids := make([]int64, n)
	for i := range n {
		user, err := f.svc.User.CreateUser(context.Background(), userRequest(fmt.Sprintf("user%d", i+1)))
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		ids[i] = user.ID
	}
	return ids
}
