package usecase_test

import (
	"context"
	"sort"
	"strings"

	"github.com/logitrack/logitrack-api/internal/application/audit"
	"github.com/logitrack/logitrack-api/internal/domain/entity"
	"github.com/logitrack/logitrack-api/internal/domain/repository"
	"github.com/logitrack/logitrack-api/pkg/textutil"
)

// fakeProductRepo catálogo en memoria, indexado por ID.
type fakeProductRepo struct {
	products map[string]entity.Product
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo(seed ...entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]entity.Product)}
	for _, p := range seed {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Search(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var matched []*entity.Product
	for _, p := range r.products {
		p := p
		if filter.Category != "" && !strings.Contains(textutil.Fold(p.Category), filter.Category) {
			continue
		}
		if filter.Name != "" && !strings.Contains(textutil.Fold(p.Name), filter.Name) {
			continue
		}
		matched = append(matched, &p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	total := len(matched)
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *fakeProductRepo) ListStockBelow(_ context.Context, threshold int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		p := p
		if p.Stock < threshold {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, nil
}

// fakeWarehouseRepo bodegas en memoria.
type fakeWarehouseRepo struct {
	warehouses map[string]entity.Warehouse
}

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func newFakeWarehouseRepo(seed ...entity.Warehouse) *fakeWarehouseRepo {
	r := &fakeWarehouseRepo{warehouses: make(map[string]entity.Warehouse)}
	for _, w := range seed {
		r.warehouses[w.ID] = w
	}
	return r
}

func (r *fakeWarehouseRepo) Create(_ context.Context, warehouse *entity.Warehouse) error {
	r.warehouses[warehouse.ID] = *warehouse
	return nil
}

func (r *fakeWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if w, ok := r.warehouses[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) GetByName(_ context.Context, name string) (*entity.Warehouse, error) {
	for _, w := range r.warehouses {
		if w.Name == name {
			return &w, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) Update(_ context.Context, warehouse *entity.Warehouse) error {
	r.warehouses[warehouse.ID] = *warehouse
	return nil
}

func (r *fakeWarehouseRepo) Delete(_ context.Context, id string) error {
	delete(r.warehouses, id)
	return nil
}

func (r *fakeWarehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) {
	out := make([]*entity.Warehouse, 0, len(r.warehouses))
	for _, w := range r.warehouses {
		w := w
		out = append(out, &w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// recordingRecorder captura los eventos de auditoría emitidos.
type recordingRecorder struct {
	events []audit.Event
}

var _ audit.Recorder = (*recordingRecorder)(nil)

func (r *recordingRecorder) Record(_ context.Context, ev audit.Event) {
	r.events = append(r.events, ev)
}
