// README: Store directory service; admin CRUD plus a redis-cached active list.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tavola/internal/geo"
)

var ErrBadRequest = errors.New("bad store request")

const (
	activeCacheKey = "stores:active"
	activeCacheTTL = 60 * time.Second
)

type Service struct {
	repo  *Repo
	cache *redis.Client
}

func NewService(repo *Repo, cache *redis.Client) *Service {
	return &Service{repo: repo, cache: cache}
}

type UpsertCommand struct {
	ID             string
	Name           string
	Address        string
	Position       geo.Point
	RadiusKm       float64
	CoverageCities []string
	DeliveryFee    float64
	ServiceFee     float64
	MinimumOrder   float64
	TaxRatePercent float64
	IsActive       bool
}

func (c UpsertCommand) validate() error {
	if c.Name == "" || c.RadiusKm <= 0 {
		return ErrBadRequest
	}
	if err := c.Position.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *Service) Create(ctx context.Context, cmd UpsertCommand) (*Store, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	st := &Store{
		ID:             uuid.NewString(),
		Name:           cmd.Name,
		Address:        cmd.Address,
		Position:       cmd.Position,
		RadiusKm:       cmd.RadiusKm,
		CoverageCities: cmd.CoverageCities,
		DeliveryFee:    cmd.DeliveryFee,
		ServiceFee:     cmd.ServiceFee,
		MinimumOrder:   cmd.MinimumOrder,
		TaxRatePercent: cmd.TaxRatePercent,
		IsActive:       cmd.IsActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return st, nil
}

func (s *Service) Update(ctx context.Context, cmd UpsertCommand) (*Store, error) {
	if cmd.ID == "" {
		return nil, ErrBadRequest
	}
	if err := cmd.validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.Get(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	existing.Name = cmd.Name
	existing.Address = cmd.Address
	existing.Position = cmd.Position
	existing.RadiusKm = cmd.RadiusKm
	existing.CoverageCities = cmd.CoverageCities
	existing.DeliveryFee = cmd.DeliveryFee
	existing.ServiceFee = cmd.ServiceFee
	existing.MinimumOrder = cmd.MinimumOrder
	existing.TaxRatePercent = cmd.TaxRatePercent
	existing.IsActive = cmd.IsActive
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return existing, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Store, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Store, error) {
	return s.repo.List(ctx, false)
}

// ListActive returns the stores that participate in eligibility resolution,
// served from a short-TTL cache. A cache failure falls through to the database;
// the directory read never fails because redis is down.
func (s *Service) ListActive(ctx context.Context) ([]Store, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, activeCacheKey).Result(); err == nil && cached != "" {
			var stores []Store
			if err := json.Unmarshal([]byte(cached), &stores); err == nil {
				return stores, nil
			}
		}
	}

	stores, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stores); err == nil {
			s.cache.Set(ctx, activeCacheKey, raw, activeCacheTTL)
		}
	}
	return stores, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Del(ctx, activeCacheKey)
	}
}
