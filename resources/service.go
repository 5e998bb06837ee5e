package resources

import (
	"context"

	"github.com/arcenciel/creche-api/store"

	"github.com/pkg/errors"
)

// Service wraps one FileStore and takes care of identifier assignment. A
// create payload without an id receives a fresh uuid; an explicit id passes
// through verbatim, even when it collides with an existing record (permissive
// on purpose, callers may dictate identifiers).
type Service struct {
	Store interface {
		Init(ctx context.Context) error
		GetAll() []store.Record
		FindById(id string) (store.Record, error)
		Add(ctx context.Context, item store.Record) (store.Record, error)
		Update(ctx context.Context, id string, partial store.Record) (store.Record, error)
		Remove(ctx context.Context, id string) error
	}
	StringGenerator interface {
		GenerateUuid() string
	}
}

func (s *Service) Init(ctx context.Context) error {
	if err := s.Store.Init(ctx); err != nil {
		return errors.Wrap(err, "failed to init store")
	}
	return nil
}

func (s *Service) GetAll(ctx context.Context) []store.Record {
	return s.Store.GetAll()
}

func (s *Service) GetById(ctx context.Context, id string) (store.Record, error) {
	return s.Store.FindById(id)
}

func (s *Service) Create(ctx context.Context, payload store.Record) (store.Record, error) {
	if payload.Id() == "" {
		payload["id"] = s.StringGenerator.GenerateUuid()
	}
	return s.Store.Add(ctx, payload)
}

func (s *Service) Update(ctx context.Context, id string, payload store.Record) (store.Record, error) {
	return s.Store.Update(ctx, id, payload)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.Store.Remove(ctx, id)
}
