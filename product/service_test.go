package product

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	apperrors "github.com/skillsenselab/storeapi/errors"
	"github.com/skillsenselab/storeapi/logger"
	"github.com/skillsenselab/storeapi/store"
)

type fakeCatalog struct {
	byID map[string]*store.Product
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{byID: make(map[string]*store.Product)}
}

func (f *fakeCatalog) Insert(_ context.Context, product *store.Product) error {
	product.ID = uuid.New()
	f.byID[product.ID.String()] = product
	return nil
}

func (f *fakeCatalog) FindByID(_ context.Context, id string) (*store.Product, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeCatalog) Update(_ context.Context, id, name string, price float64) (*store.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	p.Name = name
	p.Price = price
	return p, nil
}

func (f *fakeCatalog) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCatalog) List(_ context.Context) ([]store.Product, error) {
	var out []store.Product
	for _, p := range f.byID {
		out = append(out, *p)
	}
	return out, nil
}

func newTestService() *Service {
	log := logger.New(&logger.Config{Level: "error", Format: "json"}, "test")
	return NewService(newFakeCatalog(), log)
}

func TestProductLifecycle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "widget", 9.99)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" || created.Name != "widget" || created.Price != 9.99 {
		t.Errorf("Create() = %+v", created)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "widget" {
		t.Errorf("Get() name = %q, want widget", got.Name)
	}

	updated, err := svc.Update(ctx, created.ID, "gadget", 19.99)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "gadget" || updated.Price != 19.99 {
		t.Errorf("Update() = %+v", updated)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("List() len = %d, want 1", len(list))
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestProductNotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	id := uuid.NewString()

	for name, err := range map[string]error{
		"Get":    mustErr(svc.Get(ctx, id)),
		"Update": mustErr(svc.Update(ctx, id, "x", 1)),
		"Delete": svc.Delete(ctx, id),
	} {
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			t.Errorf("%s: error %v is not an AppError", name, err)
			continue
		}
		if appErr.HTTPStatus != http.StatusNotFound {
			t.Errorf("%s: status = %d, want %d", name, appErr.HTTPStatus, http.StatusNotFound)
		}
	}
}

func mustErr(_ *Product, err error) error { return err }
