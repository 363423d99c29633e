package memory

import (
	"github.com/google/uuid"

	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.ComboRepository    = (*ComboRepo)(nil)
)

// UserRepo repositorio de usuarios en memoria.
type UserRepo struct {
	s *Store
}

// Users retorna el repositorio de usuarios del almacén.
func (s *Store) Users() *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Exists(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.users[id]
	return ok, nil
}

// SupplierRepo consulta de proveedores en memoria.
type SupplierRepo struct {
	s *Store
}

// Suppliers retorna el repositorio de proveedores del almacén.
func (s *Store) Suppliers() *SupplierRepo {
	return &SupplierRepo{s: s}
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sup
	return &cp, nil
}

// CustomerRepo consulta de clientes en memoria.
type CustomerRepo struct {
	s *Store
}

// Customers retorna el repositorio de clientes del almacén.
func (s *Store) Customers() *CustomerRepo {
	return &CustomerRepo{s: s}
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// ComboRepo consulta de combos en memoria.
type ComboRepo struct {
	s *Store
}

// Combos retorna el repositorio de combos del almacén.
func (s *Store) Combos() *ComboRepo {
	return &ComboRepo{s: s}
}

func (r *ComboRepo) GetByID(id string) (*entity.Combo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.combos[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Ingredientes = append([]entity.ComboIngrediente(nil), c.Ingredientes...)
	return &cp, nil
}
