package repositories

// Store aggregates the per-entity repositories behind one handle so that a
// unit of work can span all of them.
//
// WithinTx runs fn against a transaction-scoped Store. All repository calls
// made through that Store either fully apply (fn returns nil) or fully roll
// back (fn returns an error). Implementations must serialize conflicting
// transactions so that concurrent stock decrements and balance debits cannot
// lose updates.
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	Sellers() SellerRepository

	WithinTx(fn func(Store) error) error
}
