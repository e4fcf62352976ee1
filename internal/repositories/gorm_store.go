package repositories

import (
	"pasar/internal/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the GORM-backed Store used in production.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store on top of an open GORM handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository       { return &GormUserRepository{db: s.db} }
func (s *GormStore) Products() ProductRepository { return &GormProductRepository{db: s.db} }
func (s *GormStore) Carts() CartRepository       { return &GormCartRepository{db: s.db} }
func (s *GormStore) Orders() OrderRepository     { return &GormOrderRepository{db: s.db} }
func (s *GormStore) Sellers() SellerRepository   { return &GormSellerRepository{db: s.db} }

// WithinTx runs fn inside a database transaction. fn receives a Store bound
// to the transaction; returning an error rolls everything back.
func (s *GormStore) WithinTx(fn func(Store) error) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
	if err == nil {
		return nil
	}
	if _, ok := err.(*apperr.Error); ok {
		return err
	}
	return apperr.Wrap(apperr.Storage, err, "transaction failed")
}

// forUpdate adds a FOR UPDATE row lock where the backend supports it.
// SQLite rejects the clause and serializes writers on its own, so it is
// skipped there.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
