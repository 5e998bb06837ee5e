package resources

import (
	"context"
	"path/filepath"

	"github.com/arcenciel/creche-api/shared"
	"github.com/arcenciel/creche-api/store"

	"golang.org/x/sync/errgroup"
)

const (
	StaffFile      = "staff.json"
	ChildrenFile   = "children.json"
	ActivitiesFile = "activities.json"
	InventoryFile  = "inventory.json"
)

// Registry is the composition root of the four resource services. It is built
// once at startup and handed by reference to the routing layer, there is no
// package-level shared state.
type Registry struct {
	Staff      *Service
	Children   *Service
	Activities *Service
	Inventory  *Service
}

func NewRegistry(config *shared.AppConfig, logger *shared.Logger, generator interface{ GenerateUuid() string }) *Registry {
	newService := func(filename string) *Service {
		return &Service{
			Store:           store.NewFileStore(filepath.Join(config.DataPath, filename), logger),
			StringGenerator: generator,
		}
	}

	return &Registry{
		Staff:      newService(StaffFile),
		Children:   newService(ChildrenFile),
		Activities: newService(ActivitiesFile),
		Inventory:  newService(InventoryFile),
	}
}

// InitStores loads all four stores concurrently before the transport layer
// starts accepting connections. Any failure aborts startup as a whole.
func (r *Registry) InitStores(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, svc := range []*Service{r.Staff, r.Children, r.Activities, r.Inventory} {
		svc := svc
		g.Go(func() error {
			return svc.Init(ctx)
		})
	}
	return g.Wait()
}
