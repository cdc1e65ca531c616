package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maxviazov/storefront-views/internal/model"
	"github.com/maxviazov/storefront-views/internal/repository"
)

type userService struct {
	repo repository.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo repository.UserRepository, logger zerolog.Logger) UserService {
	l := logger.With().Str("module", "service").Str("component", "user").Logger()
	return &userService{repo: repo, log: l}
}

func (s *userService) GetUsers(ctx context.Context, page repository.Page) (repository.PageResult[model.User], error) {
	p := normalizePage(page)
	res, err := s.repo.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("page", p.Number).Int("limit", p.Limit).Msg("list users failed")
		return repository.PageResult[model.User]{}, err
	}
	return res, nil
}
