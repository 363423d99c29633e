// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Se usa en pruebas de casos de uso y en modo desarrollo sin BD.
// Un mutex único serializa todas las operaciones; las transacciones toman un
// snapshot del estado y lo restauran si la función falla, de modo que las
// garantías de atomicidad y serialización por producto se conservan.
package memory

import (
	"sync"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex

	products      map[string]*entity.Product
	movements     []*entity.InventoryMovement
	purchases     map[string]*entity.Purchase
	purchaseItems map[string][]*entity.PurchaseItem // por compra_id
	sales         map[string]*entity.Sale
	saleItems     map[string][]*entity.SaleItem // por venta_id
	users         map[string]*entity.User
	suppliers     map[string]*entity.Supplier
	customers     map[string]*entity.Customer
	combos        map[string]*entity.Combo
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:      make(map[string]*entity.Product),
		purchases:     make(map[string]*entity.Purchase),
		purchaseItems: make(map[string][]*entity.PurchaseItem),
		sales:         make(map[string]*entity.Sale),
		saleItems:     make(map[string][]*entity.SaleItem),
		users:         make(map[string]*entity.User),
		suppliers:     make(map[string]*entity.Supplier),
		customers:     make(map[string]*entity.Customer),
		combos:        make(map[string]*entity.Combo),
	}
}

// SeedSupplier registra un proveedor (solo para pruebas y datos de desarrollo).
func (s *Store) SeedSupplier(sup *entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sup
	s.suppliers[sup.ID] = &cp
}

// SeedCustomer registra un cliente.
func (s *Store) SeedCustomer(c *entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.customers[c.ID] = &cp
}

// SeedCombo registra un combo.
func (s *Store) SeedCombo(c *entity.Combo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	cp.Ingredientes = append([]entity.ComboIngrediente(nil), c.Ingredientes...)
	s.combos[c.ID] = &cp
}

// snapshot copia profunda del estado mutable por transacciones.
type snapshot struct {
	products      map[string]*entity.Product
	movements     []*entity.InventoryMovement
	purchases     map[string]*entity.Purchase
	purchaseItems map[string][]*entity.PurchaseItem
	sales         map[string]*entity.Sale
	saleItems     map[string][]*entity.SaleItem
}

// takeSnapshot se llama con el mutex tomado.
func (s *Store) takeSnapshot() snapshot {
	snap := snapshot{
		products:      make(map[string]*entity.Product, len(s.products)),
		movements:     make([]*entity.InventoryMovement, len(s.movements)),
		purchases:     make(map[string]*entity.Purchase, len(s.purchases)),
		purchaseItems: make(map[string][]*entity.PurchaseItem, len(s.purchaseItems)),
		sales:         make(map[string]*entity.Sale, len(s.sales)),
		saleItems:     make(map[string][]*entity.SaleItem, len(s.saleItems)),
	}
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for i, m := range s.movements {
		cp := *m
		snap.movements[i] = &cp
	}
	for id, p := range s.purchases {
		cp := *p
		snap.purchases[id] = &cp
	}
	for id, items := range s.purchaseItems {
		cloned := make([]*entity.PurchaseItem, len(items))
		for i, it := range items {
			cp := *it
			cloned[i] = &cp
		}
		snap.purchaseItems[id] = cloned
	}
	for id, v := range s.sales {
		cp := *v
		snap.sales[id] = &cp
	}
	for id, items := range s.saleItems {
		cloned := make([]*entity.SaleItem, len(items))
		for i, it := range items {
			cp := *it
			cloned[i] = &cp
		}
		snap.saleItems[id] = cloned
	}
	return snap
}

// restore se llama con el mutex tomado.
func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.movements = snap.movements
	s.purchases = snap.purchases
	s.purchaseItems = snap.purchaseItems
	s.sales = snap.sales
	s.saleItems = snap.saleItems
}
