package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/storefront-views/internal/model"
	"github.com/maxviazov/storefront-views/internal/repository"
)

type productService struct {
	repo repository.ProductRepository
	log  zerolog.Logger
}

func NewProductService(repo repository.ProductRepository, logger zerolog.Logger) ProductService {
	l := logger.With().Str("module", "service").Str("component", "product").Logger()
	return &productService{repo: repo, log: l}
}

func (s *productService) GetProducts(ctx context.Context, filter repository.ProductFilter) (repository.PageResult[model.Product], error) {
	start := time.Now()
	f := repository.ProductFilter{
		Page:        normalizePage(filter.Page),
		Category:    strings.TrimSpace(filter.Category),
		Status:      normalizeStatus(filter.Status),
		Title:       strings.TrimSpace(filter.Title),
		SortByPrice: normalizeSort(filter.SortByPrice),
	}

	var ferrs []FieldError
	if !isValidStatus(f.Status) {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be true or false"})
	}
	if !isValidSort(f.SortByPrice) {
		ferrs = append(ferrs, FieldError{Field: "sortByPrice", Message: "must be asc or desc"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Str("status_raw", filter.Status).Str("sort_raw", filter.SortByPrice).Msg("product filter validation failed")
		return repository.PageResult[model.Product]{}, err
	}

	res, err := s.repo.List(ctx, f)
	if err != nil {
		s.log.Error().Err(err).Int("page", f.Page.Number).Int("limit", f.Page.Limit).Str("category", f.Category).Msg("list products failed")
		return repository.PageResult[model.Product]{}, err
	}
	s.log.Debug().Dur("took", time.Since(start)).Int("items", len(res.Items)).Int("total", res.Total).Msg("products listed")
	return res, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (model.Product, error) {
	if !isValidID(id) {
		return model.Product{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be a valid product id"}})
	}
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if err != repository.ErrNotFound {
			s.log.Error().Err(err).Str("product_id", id).Msg("get product failed")
		}
		return model.Product{}, err
	}
	return p, nil
}
