package store

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Sentinel errors for user-input validation failures. Command handlers map
// these to printed notices; the menu loop always continues.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientStock   = errors.New("not enough stock available")
	ErrQuantityNotPositive = errors.New("quantity must be positive")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrAccountNotFound     = errors.New("username not found")
	ErrInvalidCoupon       = errors.New("invalid coupon code")
)

// DefaultLowStockThreshold is the stock level at or below which a product is
// flagged as low.
const DefaultLowStockThreshold = 5

// Options configures a Store.
type Options struct {
	// DataDir is where the three CSV tables live.
	DataDir string
	// LowStockThreshold overrides DefaultLowStockThreshold when positive.
	LowStockThreshold int
	// Coupons maps coupon codes (upper-case) to discount fractions. Nil
	// means the built-in defaults (SAVE10, SAVE20).
	Coupons map[string]float64
}

// Store owns the in-memory product, customer and sales tables and their CSV
// persistence. Tables are loaded once at Open and rewritten in full after
// every mutating operation. The Store is single-writer by construction:
// there is no file locking, and concurrent processes sharing a data
// directory will race.
type Store struct {
	dir       string
	threshold int
	coupons   map[string]decimal.Decimal

	products  map[int]*Product
	customers map[string]*Account
	sales     []Sale
}

// Open materializes the three tables from the data directory. A missing
// products file seeds the default catalog; missing customers/sales files
// mean empty tables. Any malformed row fails the whole load.
func Open(opts Options) (*Store, error) {
	s := &Store{
		dir:       opts.DataDir,
		threshold: opts.LowStockThreshold,
		coupons:   make(map[string]decimal.Decimal),
	}
	if s.dir == "" {
		s.dir = "."
	}
	if s.threshold <= 0 {
		s.threshold = DefaultLowStockThreshold
	}

	couponSrc := opts.Coupons
	if couponSrc == nil {
		couponSrc = map[string]float64{"SAVE10": 0.10, "SAVE20": 0.20}
	}
	for code, frac := range couponSrc {
		s.coupons[strings.ToUpper(code)] = decimal.NewFromFloat(frac)
	}

	if err := s.loadProducts(); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if err := s.loadCustomers(); err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	if err := s.loadSales(); err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	logger.Info().
		Int("products", len(s.products)).
		Int("customers", len(s.customers)).
		Int("sales", len(s.sales)).
		Msg("store opened")
	return s, nil
}

// LowStockThreshold reports the configured low-stock level.
func (s *Store) LowStockThreshold() int { return s.threshold }

// Products returns the catalog ordered by product ID.
func (s *Store) Products() []Product {
	out := make([]Product, 0, len(s.products))
	for _, p := range s.sortedProducts() {
		out = append(out, *p)
	}
	return out
}

// Product looks up a single catalog entry by ID.
func (s *Store) Product(id int) (Product, error) {
	p, ok := s.products[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return *p, nil
}

// LowStock reports whether a product's stock is at or below the threshold.
func (s *Store) LowStock(p Product) bool {
	return p.Stock <= s.threshold
}

// Register creates a new account. The role is derived from the username:
// "admin" (case-insensitive) becomes an admin, everyone else a customer.
// A taken username is rejected with no mutation.
func (s *Store) Register(username, name string) (Account, error) {
	if _, exists := s.customers[username]; exists {
		return Account{}, ErrUsernameTaken
	}

	role := RoleCustomer
	if strings.EqualFold(username, "admin") {
		role = RoleAdmin
	}

	account := &Account{Username: username, Name: name, Role: role}
	s.customers[username] = account
	if err := s.saveCustomers(); err != nil {
		return Account{}, err
	}

	logger.Info().Str("username", username).Str("role", string(role)).Msg("account registered")
	return *account, nil
}

// Login is a pure lookup; there is no credential check.
func (s *Store) Login(username string) (Account, error) {
	a, ok := s.customers[username]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return *a, nil
}

// ApplyCoupon resolves a coupon code (case-insensitive) to its discount
// fraction. An empty code is a silent skip and yields zero discount. An
// unknown non-empty code yields zero discount and ErrInvalidCoupon; the
// purchase still proceeds at full price.
func (s *Store) ApplyCoupon(code string) (decimal.Decimal, error) {
	if code == "" {
		return decimal.Zero, nil
	}
	discount, ok := s.coupons[strings.ToUpper(code)]
	if !ok {
		return decimal.Zero, ErrInvalidCoupon
	}
	return discount, nil
}

// Quote computes price * qty * (1 - discount) for a prospective purchase
// without mutating anything.
func (s *Store) Quote(productID, qty int, discount decimal.Decimal) (decimal.Decimal, error) {
	p, err := s.Product(productID)
	if err != nil {
		return decimal.Zero, err
	}
	if qty <= 0 {
		return decimal.Zero, ErrQuantityNotPositive
	}
	if qty > p.Stock {
		return decimal.Zero, ErrInsufficientStock
	}
	total := p.Price.Mul(decimal.NewFromInt(int64(qty))).Mul(decimal.NewFromInt(1).Sub(discount))
	return total, nil
}

// Purchase commits a confirmed purchase: decrements stock, appends the sale
// with the product's display name copied into the ledger, and persists both
// tables (two independent rewrites). Validation failures leave both tables
// untouched. The returned bool reports whether the remaining stock is at or
// below the low-stock threshold.
func (s *Store) Purchase(username string, productID, qty int, discount decimal.Decimal) (Sale, bool, error) {
	total, err := s.Quote(productID, qty, discount)
	if err != nil {
		return Sale{}, false, err
	}

	p := s.products[productID]
	p.Stock -= qty

	sale := Sale{Username: username, Product: p.Name, Quantity: qty, Total: total}
	s.sales = append(s.sales, sale)

	if err := s.saveProducts(); err != nil {
		return Sale{}, false, err
	}
	if err := s.saveSales(); err != nil {
		return Sale{}, false, err
	}

	logger.Info().
		Str("username", username).
		Str("product", p.Name).
		Int("quantity", qty).
		Str("total", total.StringFixed(2)).
		Msg("purchase committed")
	return sale, p.Stock <= s.threshold, nil
}

// Restock adds qty units to a product's stock and persists the catalog.
func (s *Store) Restock(productID, qty int) (Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	if qty <= 0 {
		return Product{}, ErrQuantityNotPositive
	}

	p.Stock += qty
	if err := s.saveProducts(); err != nil {
		return Product{}, err
	}

	logger.Info().Str("product", p.Name).Int("added", qty).Int("stock", p.Stock).Msg("restocked")
	return *p, nil
}

func (s *Store) sortedProducts() []*Product {
	out := make([]*Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
