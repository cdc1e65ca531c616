package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/storefront-views/internal/model"
	"github.com/maxviazov/storefront-views/internal/repository"
)

type cartService struct {
	repo repository.CartRepository
	log  zerolog.Logger
}

func NewCartService(repo repository.CartRepository, logger zerolog.Logger) CartService {
	l := logger.With().Str("module", "service").Str("component", "cart").Logger()
	return &cartService{repo: repo, log: l}
}

func (s *cartService) GetCartByID(ctx context.Context, id string) (model.Cart, error) {
	if !isValidID(id) {
		return model.Cart{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be a valid cart id"}})
	}
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if err != repository.ErrNotFound {
			s.log.Error().Err(err).Str("cart_id", id).Msg("get cart failed")
		}
		return model.Cart{}, err
	}
	return c, nil
}
