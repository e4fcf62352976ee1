package repositories

import (
	"sort"
	"sync"
	"time"

	"pasar/internal/apperr"
	"pasar/internal/models"
)

// memoryData is the backing state of a MemoryStore. Cloning it gives a
// transaction its staging copy.
type memoryData struct {
	users     map[uint]models.User
	products  map[uint]models.Product
	carts     map[uint]models.CartEntry
	orders    map[uint]models.Order
	profiles  map[uint]models.SellerProfile
	approvals map[uint]models.SellerApproval

	userSeq     uint
	productSeq  uint
	cartSeq     uint
	orderSeq    uint
	approvalSeq uint
}

func newMemoryData() *memoryData {
	return &memoryData{
		users:     make(map[uint]models.User),
		products:  make(map[uint]models.Product),
		carts:     make(map[uint]models.CartEntry),
		orders:    make(map[uint]models.Order),
		profiles:  make(map[uint]models.SellerProfile),
		approvals: make(map[uint]models.SellerApproval),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (d *memoryData) clone() *memoryData {
	c := *d
	c.users = cloneMap(d.users)
	c.products = cloneMap(d.products)
	c.carts = cloneMap(d.carts)
	c.orders = cloneMap(d.orders)
	c.profiles = cloneMap(d.profiles)
	c.approvals = cloneMap(d.approvals)
	return &c
}

// MemoryStore is an in-memory implementation of Store. Transactions stage
// their writes on a clone of the data and swap it in on success, so a failed
// transaction leaves no trace. A store-wide mutex held for the whole
// transaction serializes conflicting units of work.
//
// The fault-injection fields let tests force mid-transaction failures.
type MemoryStore struct {
	mu   *sync.Mutex
	data *memoryData
	inTx bool

	CreateOrderErr    error
	IncrementStockErr error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{mu: &sync.Mutex{}, data: newMemoryData()}
}

func (s *MemoryStore) Users() UserRepository       { return &memUserRepository{s} }
func (s *MemoryStore) Products() ProductRepository { return &memProductRepository{s} }
func (s *MemoryStore) Carts() CartRepository       { return &memCartRepository{s} }
func (s *MemoryStore) Orders() OrderRepository     { return &memOrderRepository{s} }
func (s *MemoryStore) Sellers() SellerRepository   { return &memSellerRepository{s} }

// WithinTx runs fn against a staged copy of the store. The copy replaces the
// live data only when fn returns nil.
func (s *MemoryStore) WithinTx(fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &MemoryStore{
		mu:                s.mu,
		data:              s.data.clone(),
		inTx:              true,
		CreateOrderErr:    s.CreateOrderErr,
		IncrementStockErr: s.IncrementStockErr,
	}
	if err := fn(staged); err != nil {
		return err
	}
	s.data = staged.data
	return nil
}

// lock acquires the store mutex and returns the unlock. Inside a
// transaction the mutex is already held, so both sides are no-ops.
func (s *MemoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type memUserRepository struct{ s *MemoryStore }

func (r *memUserRepository) Create(user *models.User) error {
	defer r.s.lock()()
	d := r.s.data
	for _, u := range d.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperr.New(apperr.Conflict, "user already exists")
		}
	}
	d.userSeq++
	user.ID = d.userSeq
	user.CreatedAt = time.Now()
	d.users[user.ID] = *user
	return nil
}

func (r *memUserRepository) GetByID(id uint) (*models.User, error) {
	defer r.s.lock()()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "user with ID %d not found", id)
	}
	return &u, nil
}

func (r *memUserRepository) GetByUsername(username string) (*models.User, error) {
	defer r.s.lock()()
	for _, u := range r.s.data.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "user with username %s not found", username)
}

func (r *memUserRepository) GetByEmail(email string) (*models.User, error) {
	defer r.s.lock()()
	for _, u := range r.s.data.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "user with email %s not found", email)
}

func (r *memUserRepository) GetByIDForUpdate(id uint) (*models.User, error) {
	// The transaction already holds the store mutex, which is as strong a
	// lock as this store has.
	return r.GetByID(id)
}

func (r *memUserRepository) ListByRoles(roles ...string) ([]models.User, error) {
	defer r.s.lock()()
	want := make(map[string]bool, len(roles))
	for _, role := range roles {
		want[role] = true
	}
	var out []models.User
	for _, u := range r.s.data.users {
		if want[u.Role] {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUserRepository) AdjustBalance(id uint, delta float64) error {
	defer r.s.lock()()
	d := r.s.data
	u, ok := d.users[id]
	if !ok {
		return apperr.New(apperr.NotFound, "user with ID %d not found", id)
	}
	if u.Balance+delta < 0 {
		return apperr.New(apperr.Conflict, "insufficient balance")
	}
	u.Balance += delta
	d.users[id] = u
	return nil
}

func (r *memUserRepository) SetBalance(id uint, balance float64) error {
	defer r.s.lock()()
	d := r.s.data
	u, ok := d.users[id]
	if !ok {
		return apperr.New(apperr.NotFound, "user with ID %d not found", id)
	}
	u.Balance = balance
	d.users[id] = u
	return nil
}

func (r *memUserRepository) Approve(id uint) error {
	defer r.s.lock()()
	d := r.s.data
	u, ok := d.users[id]
	if !ok || u.Role != models.RoleSeller {
		return apperr.New(apperr.NotFound, "seller with ID %d not found", id)
	}
	u.Approved = true
	d.users[id] = u
	return nil
}

type memProductRepository struct{ s *MemoryStore }

func (r *memProductRepository) Create(product *models.Product) error {
	defer r.s.lock()()
	d := r.s.data
	d.productSeq++
	product.ID = d.productSeq
	product.CreatedAt = time.Now()
	d.products[product.ID] = *product
	return nil
}

func (r *memProductRepository) GetAll() ([]models.Product, error) {
	defer r.s.lock()()
	out := make([]models.Product, 0, len(r.s.data.products))
	for _, p := range r.s.data.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProductRepository) GetByID(id uint) (*models.Product, error) {
	defer r.s.lock()()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "product with ID %d not found", id)
	}
	return &p, nil
}

func (r *memProductRepository) GetByIDsForUpdate(ids []uint) ([]models.Product, error) {
	defer r.s.lock()()
	var out []models.Product
	for _, id := range ids {
		if p, ok := r.s.data.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepository) Update(product *models.Product) error {
	defer r.s.lock()()
	d := r.s.data
	if _, ok := d.products[product.ID]; !ok {
		return apperr.New(apperr.NotFound, "product with ID %d not found for update", product.ID)
	}
	d.products[product.ID] = *product
	return nil
}

func (r *memProductRepository) DecrementStock(id uint, amount int) error {
	defer r.s.lock()()
	d := r.s.data
	p, ok := d.products[id]
	if !ok || p.Quantity < amount {
		return apperr.New(apperr.Conflict, "insufficient stock for product: %d", id)
	}
	p.Quantity -= amount
	d.products[id] = p
	return nil
}

func (r *memProductRepository) IncrementStock(id uint, amount int) error {
	if err := r.s.IncrementStockErr; err != nil {
		return apperr.Wrap(apperr.Storage, err, "failed to increment stock for product %d", id)
	}
	defer r.s.lock()()
	d := r.s.data
	p, ok := d.products[id]
	if !ok {
		return apperr.New(apperr.NotFound, "product with ID %d not found", id)
	}
	p.Quantity += amount
	d.products[id] = p
	return nil
}

type memCartRepository struct{ s *MemoryStore }

func (r *memCartRepository) Create(entry *models.CartEntry) error {
	defer r.s.lock()()
	d := r.s.data
	d.cartSeq++
	entry.ID = d.cartSeq
	d.carts[entry.ID] = *entry
	return nil
}

func (r *memCartRepository) GetEntry(id uint) (*models.CartEntry, error) {
	defer r.s.lock()()
	e, ok := r.s.data.carts[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "cart entry with ID %d not found", id)
	}
	return &e, nil
}

func (r *memCartRepository) GetByBuyer(buyerID uint) ([]models.CartItem, error) {
	defer r.s.lock()()
	d := r.s.data
	var out []models.CartItem
	for _, e := range d.carts {
		if e.BuyerID != buyerID {
			continue
		}
		p := d.products[e.ProductID]
		out = append(out, models.CartItem{
			ID:          e.ID,
			ProductID:   e.ProductID,
			Quantity:    e.Quantity,
			Description: p.Description,
			Price:       p.Price,
			Image:       p.Image,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memCartRepository) Delete(id uint) error {
	defer r.s.lock()()
	delete(r.s.data.carts, id)
	return nil
}

func (r *memCartRepository) ClearByBuyer(buyerID uint) error {
	defer r.s.lock()()
	for id, e := range r.s.data.carts {
		if e.BuyerID == buyerID {
			delete(r.s.data.carts, id)
		}
	}
	return nil
}

type memOrderRepository struct{ s *MemoryStore }

func (r *memOrderRepository) Create(order *models.Order) error {
	if err := r.s.CreateOrderErr; err != nil {
		return apperr.Wrap(apperr.Storage, err, "failed to create order")
	}
	defer r.s.lock()()
	d := r.s.data
	d.orderSeq++
	order.ID = d.orderSeq
	order.CreatedAt = time.Now()
	d.orders[order.ID] = *order
	return nil
}

func (r *memOrderRepository) GetByID(id uint) (*models.Order, error) {
	defer r.s.lock()()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "order with ID %d not found", id)
	}
	return &o, nil
}

func (r *memOrderRepository) list(match func(models.Order) bool) []models.OrderView {
	d := r.s.data
	var out []models.OrderView
	for _, o := range d.orders {
		if !match(o) {
			continue
		}
		p := d.products[o.ProductID]
		out = append(out, models.OrderView{Order: o, Description: p.Description, Image: p.Image})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memOrderRepository) ListByBuyer(buyerID uint) ([]models.OrderView, error) {
	defer r.s.lock()()
	return r.list(func(o models.Order) bool { return o.BuyerID == buyerID }), nil
}

func (r *memOrderRepository) ListBySeller(sellerID uint) ([]models.OrderView, error) {
	defer r.s.lock()()
	return r.list(func(o models.Order) bool { return o.SellerID == sellerID }), nil
}

func (r *memOrderRepository) UpdateStatus(id uint, payment models.PaymentStatus, delivery models.DeliveryStatus) error {
	defer r.s.lock()()
	d := r.s.data
	o, ok := d.orders[id]
	if !ok {
		return apperr.New(apperr.NotFound, "order with ID %d not found", id)
	}
	o.PaymentStatus = payment
	o.DeliveryStatus = delivery
	d.orders[id] = o
	return nil
}

type memSellerRepository struct{ s *MemoryStore }

func (r *memSellerRepository) CreateProfile(profile *models.SellerProfile) error {
	defer r.s.lock()()
	d := r.s.data
	if _, exists := d.profiles[profile.UserID]; exists {
		return apperr.New(apperr.Conflict, "seller profile already submitted")
	}
	profile.CreatedAt = time.Now()
	d.profiles[profile.UserID] = *profile
	return nil
}

func (r *memSellerRepository) GetProfile(userID uint) (*models.SellerProfile, error) {
	defer r.s.lock()()
	p, ok := r.s.data.profiles[userID]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "seller profile for user %d not found", userID)
	}
	return &p, nil
}

func (r *memSellerRepository) ListPending() ([]models.PendingSeller, error) {
	defer r.s.lock()()
	d := r.s.data
	var out []models.PendingSeller
	for _, u := range d.users {
		if u.Role != models.RoleSeller || u.Approved {
			continue
		}
		p, ok := d.profiles[u.ID]
		if !ok {
			continue
		}
		out = append(out, models.PendingSeller{
			ID:            u.ID,
			Name:          u.Name,
			Email:         u.Email,
			MSMENumber:    p.MSMENumber,
			Address:       p.Address,
			AadhaarNumber: p.AadhaarNumber,
			AccountNumber: p.AccountNumber,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memSellerRepository) RecordApproval(approval *models.SellerApproval) error {
	defer r.s.lock()()
	d := r.s.data
	d.approvalSeq++
	approval.ID = d.approvalSeq
	approval.ApprovedAt = time.Now()
	d.approvals[approval.ID] = *approval
	return nil
}

func (r *memSellerRepository) ListApprovals() ([]models.ApprovalRecord, error) {
	defer r.s.lock()()
	d := r.s.data
	var out []models.ApprovalRecord
	for _, a := range d.approvals {
		out = append(out, models.ApprovalRecord{
			ID:          a.ID,
			UserID:      a.UserID,
			AdminID:     a.AdminID,
			ApprovedAt:  a.ApprovedAt,
			SellerName:  d.users[a.UserID].Name,
			SellerEmail: d.users[a.UserID].Email,
			AdminName:   d.users[a.AdminID].Name,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ApprovedAt.After(out[j].ApprovedAt) })
	return out, nil
}
