package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	productsFile  = "products.csv"
	customersFile = "customers.csv"
	salesFile     = "sales.csv"
)

var (
	productsHeader  = []string{"id", "name", "price", "stock"}
	customersHeader = []string{"username", "name", "role"}
	salesHeader     = []string{"username", "product", "quantity", "total"}
)

// defaultCatalog is the catalog seeded on first run when no products file
// exists yet.
func defaultCatalog() map[int]*Product {
	return map[int]*Product{
		1: {ID: 1, Name: "Laptop", Price: decimal.NewFromInt(800), Stock: 10},
		2: {ID: 2, Name: "Smartphone", Price: decimal.NewFromInt(500), Stock: 15},
		3: {ID: 3, Name: "Headphones", Price: decimal.NewFromInt(150), Stock: 20},
		4: {ID: 4, Name: "Smartwatch", Price: decimal.NewFromInt(200), Stock: 12},
	}
}

func (s *Store) productsPath() string  { return filepath.Join(s.dir, productsFile) }
func (s *Store) customersPath() string { return filepath.Join(s.dir, customersFile) }
func (s *Store) salesPath() string     { return filepath.Join(s.dir, salesFile) }

// readTable reads a whole CSV file and validates its header row. A missing
// file yields (nil, nil): the caller decides whether that means "seed
// defaults" or "empty table". Any other failure is fatal for the load;
// there is no partial recovery from a malformed file.
func readTable(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", filepath.Base(path))
	}
	if !equalRow(records[0], header) {
		return nil, fmt.Errorf("%s: unexpected header %v, want %v", filepath.Base(path), records[0], header)
	}
	return records[1:], nil
}

// writeTable rewrites a whole CSV file: header row plus one row per entry.
// The rewrite is not atomic; a crash mid-write can truncate the file. The
// process is the only writer, so this is an accepted limitation.
func writeTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
		}
	}
	w.Flush()
	return w.Error()
}

func equalRow(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *Store) loadProducts() error {
	rows, err := readTable(s.productsPath(), productsHeader)
	if err != nil {
		return err
	}
	if rows == nil {
		// First run: seed the default catalog and persist it right away.
		s.products = defaultCatalog()
		logger.Info().Str("file", productsFile).Msg("no products file, seeding default catalog")
		return s.saveProducts()
	}

	products := make(map[int]*Product, len(rows))
	for i, row := range rows {
		line := i + 2 // 1-based, after the header
		if len(row) != len(productsHeader) {
			return fmt.Errorf("%s row %d: expected %d columns, got %d", productsFile, line, len(productsHeader), len(row))
		}
		id, err := strconv.Atoi(row[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("%s row %d: invalid product id %q", productsFile, line, row[0])
		}
		price, err := decimal.NewFromString(row[2])
		if err != nil || price.IsNegative() {
			return fmt.Errorf("%s row %d: invalid price %q", productsFile, line, row[2])
		}
		stock, err := strconv.Atoi(row[3])
		if err != nil || stock < 0 {
			return fmt.Errorf("%s row %d: invalid stock %q", productsFile, line, row[3])
		}
		if _, dup := products[id]; dup {
			return fmt.Errorf("%s row %d: duplicate product id %d", productsFile, line, id)
		}
		products[id] = &Product{ID: id, Name: row[1], Price: price, Stock: stock}
	}
	s.products = products
	return nil
}

func (s *Store) saveProducts() error {
	rows := make([][]string, 0, len(s.products))
	for _, p := range s.sortedProducts() {
		rows = append(rows, []string{
			strconv.Itoa(p.ID), p.Name, p.Price.String(), strconv.Itoa(p.Stock),
		})
	}
	return writeTable(s.productsPath(), productsHeader, rows)
}

func (s *Store) loadCustomers() error {
	rows, err := readTable(s.customersPath(), customersHeader)
	if err != nil {
		return err
	}

	customers := make(map[string]*Account, len(rows))
	for i, row := range rows {
		line := i + 2
		if len(row) != len(customersHeader) {
			return fmt.Errorf("%s row %d: expected %d columns, got %d", customersFile, line, len(customersHeader), len(row))
		}
		username := row[0]
		if username == "" {
			return fmt.Errorf("%s row %d: empty username", customersFile, line)
		}
		role, err := ParseRole(row[2])
		if err != nil {
			return fmt.Errorf("%s row %d: %w", customersFile, line, err)
		}
		if _, dup := customers[username]; dup {
			return fmt.Errorf("%s row %d: duplicate username %q", customersFile, line, username)
		}
		customers[username] = &Account{Username: username, Name: row[1], Role: role}
	}
	s.customers = customers
	return nil
}

func (s *Store) saveCustomers() error {
	usernames := make([]string, 0, len(s.customers))
	for u := range s.customers {
		usernames = append(usernames, u)
	}
	sort.Strings(usernames)

	rows := make([][]string, 0, len(usernames))
	for _, u := range usernames {
		a := s.customers[u]
		rows = append(rows, []string{a.Username, a.Name, string(a.Role)})
	}
	return writeTable(s.customersPath(), customersHeader, rows)
}

func (s *Store) loadSales() error {
	rows, err := readTable(s.salesPath(), salesHeader)
	if err != nil {
		return err
	}

	sales := make([]Sale, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		if len(row) != len(salesHeader) {
			return fmt.Errorf("%s row %d: expected %d columns, got %d", salesFile, line, len(salesHeader), len(row))
		}
		qty, err := strconv.Atoi(row[2])
		if err != nil || qty <= 0 {
			return fmt.Errorf("%s row %d: invalid quantity %q", salesFile, line, row[2])
		}
		total, err := decimal.NewFromString(row[3])
		if err != nil || total.IsNegative() {
			return fmt.Errorf("%s row %d: invalid total %q", salesFile, line, row[3])
		}
		sales = append(sales, Sale{Username: row[0], Product: row[1], Quantity: qty, Total: total})
	}
	s.sales = sales
	return nil
}

func (s *Store) saveSales() error {
	rows := make([][]string, 0, len(s.sales))
	for _, sale := range s.sales {
		rows = append(rows, []string{
			sale.Username, sale.Product, strconv.Itoa(sale.Quantity), sale.Total.String(),
		})
	}
	return writeTable(s.salesPath(), salesHeader, rows)
}
