package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/matthieukhl/storefront/internal/config"
	"github.com/matthieukhl/storefront/internal/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var shopDataDir string

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Run the interactive store menu",
	Long: `Run the interactive store menu backed by three CSV tables
(products.csv, customers.csv, sales.csv) in the data directory.

Customers can register, log in, browse the catalog and purchase with
coupon codes. The admin account additionally gets sales reports and
restocking. Every mutation rewrites the affected table in full.`,
	RunE: runShop,
}

func init() {
	rootCmd.AddCommand(shopCmd)

	shopCmd.Flags().StringVar(&shopDataDir, "data-dir", "", "Directory holding the CSV tables (overrides config)")
}

func runShop(cmd *cobra.Command, args []string) error {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("     🛒 Storefront (CLI)     ")
	fmt.Println(strings.Repeat("=", 50))

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if shopDataDir != "" {
		cfg.Store.DataDir = shopDataDir
	}

	s, err := store.Open(store.Options{
		DataDir:           cfg.Store.DataDir,
		LowStockThreshold: cfg.Store.LowStockThreshold,
		Coupons:           cfg.Store.Coupons,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	session := "" // currently logged-in username, empty when logged out

	for {
		fmt.Println("\n1. Register")
		fmt.Println("2. Login")
		fmt.Println("0. Exit")
		if session != "" {
			account, _ := s.Login(session)
			fmt.Printf("\nLogged in as: %s (%s)\n", session, account.Role)
			fmt.Println("3. Show Products")
			fmt.Println("4. Purchase Product")
			if account.Role == store.RoleAdmin {
				fmt.Println("5. Show Sales Report")
				fmt.Println("6. Restock Products")
			}
			fmt.Println("7. Logout")
		}

		choice, ok := prompt(scanner, "Choose an option: ")
		if !ok {
			return nil
		}

		admin := false
		if session != "" {
			account, _ := s.Login(session)
			admin = account.Role == store.RoleAdmin
		}

		switch {
		case choice == "1":
			session = registerAccount(s, scanner)
		case choice == "2":
			session = loginAccount(s, scanner)
		case choice == "3" && session != "":
			showProducts(s)
		case choice == "4" && session != "":
			purchaseProduct(s, scanner, session)
		case choice == "5" && admin:
			showSalesReport(s)
		case choice == "6" && admin:
			restockProducts(s, scanner)
		case choice == "7" && session != "":
			fmt.Printf("👋 User %s logged out.\n", session)
			session = ""
		case choice == "0":
			fmt.Println("👋 Exiting system. Goodbye!")
			return nil
		default:
			fmt.Println("❌ Invalid option or please login first.")
		}
	}
}

// prompt prints a label and reads one trimmed line. ok is false on EOF.
func prompt(scanner *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// registerAccount returns the new session username, or "" when
// registration fails: a failed attempt always leaves you logged out.
func registerAccount(s *store.Store, scanner *bufio.Scanner) string {
	username, ok := prompt(scanner, "Choose a username: ")
	if !ok || username == "" {
		return ""
	}

	if _, err := s.Login(username); err == nil {
		fmt.Println("❌ Username already exists!")
		return ""
	}

	name, ok := prompt(scanner, "Enter your full name: ")
	if !ok {
		return ""
	}

	account, err := s.Register(username, name)
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			fmt.Println("❌ Username already exists!")
			return ""
		}
		fmt.Printf("❌ Registration failed: %v\n", err)
		return ""
	}

	fmt.Printf("✅ Customer %s registered successfully as %s.\n", account.Name, account.Role)
	return account.Username
}

func loginAccount(s *store.Store, scanner *bufio.Scanner) string {
	username, ok := prompt(scanner, "Enter your username: ")
	if !ok {
		return ""
	}

	account, err := s.Login(username)
	if err != nil {
		fmt.Println("❌ Username not found. Please register first.")
		return ""
	}

	fmt.Printf("👋 Welcome back, %s (%s)!\n", account.Name, account.Role)
	return account.Username
}

func showProducts(s *store.Store) {
	fmt.Println("\nAvailable Products:")
	fmt.Println("ID | Product      | Price($) | Stock")
	fmt.Println("--------------------------------------")
	for _, p := range s.Products() {
		alert := ""
		if s.LowStock(p) {
			alert = " (LOW STOCK!)"
		}
		fmt.Printf("%d  | %-12s | %-8s | %d%s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock, alert)
	}
}

func purchaseProduct(s *store.Store, scanner *bufio.Scanner, username string) {
	showProducts(s)

	idText, ok := prompt(scanner, "\nEnter Product ID to purchase (0 to cancel): ")
	if !ok {
		return
	}
	id, err := strconv.Atoi(idText)
	if err != nil {
		fmt.Println("❌ Invalid input. Please enter numbers only.")
		return
	}
	if id == 0 {
		return
	}
	product, err := s.Product(id)
	if err != nil {
		fmt.Println("❌ Invalid Product ID.")
		return
	}

	qtyText, ok := prompt(scanner, "Enter quantity: ")
	if !ok {
		return
	}
	qty, err := strconv.Atoi(qtyText)
	if err != nil {
		fmt.Println("❌ Invalid input. Please enter numbers only.")
		return
	}
	if qty <= 0 {
		fmt.Println("❌ Quantity must be positive.")
		return
	}
	if qty > product.Stock {
		fmt.Println("❌ Not enough stock available.")
		return
	}

	discount := applyCoupon(s, scanner)

	total, err := s.Quote(id, qty, discount)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	fmt.Printf("💵 Total cost after discount: $%s\n", total.StringFixed(2))

	confirm, ok := prompt(scanner, "Confirm purchase? (y/n): ")
	if !ok || confirm != "y" {
		fmt.Println("❌ Purchase cancelled.")
		return
	}

	sale, lowStock, err := s.Purchase(username, id, qty, discount)
	if err != nil {
		fmt.Printf("❌ Purchase failed: %v\n", err)
		return
	}

	fmt.Println("✅ Purchase successful!")
	if lowStock {
		updated, _ := s.Product(id)
		fmt.Printf("⚠️ Alert: Stock for %s is low (%d)!\n", sale.Product, updated.Stock)
	}
}

func applyCoupon(s *store.Store, scanner *bufio.Scanner) decimal.Decimal {
	code, ok := prompt(scanner, "Enter discount coupon code (or press Enter to skip): ")
	if !ok {
		return decimal.Zero
	}

	discount, err := s.ApplyCoupon(code)
	if err != nil {
		fmt.Println("❌ Invalid coupon code.")
		return decimal.Zero
	}
	if discount.IsPositive() {
		fmt.Printf("🎉 Coupon applied! You get a %s%% discount.\n", discount.Mul(decimal.NewFromInt(100)).String())
	}
	return discount
}

func showSalesReport(s *store.Store) {
	report, ok := s.SalesReport()
	if !ok {
		fmt.Println("\n📊 No sales made yet.")
		return
	}

	fmt.Println("\n📊 Sales Report")
	fmt.Println("Product      | Quantity | Total Sales($)")
	fmt.Println("-----------------------------------------")
	for _, line := range report.Products {
		fmt.Printf("%-12s | %-8d | $%s %s\n", line.Product, line.Quantity, line.Total.StringFixed(2), line.Bar())
	}
	fmt.Println("-----------------------------------------")
	fmt.Printf("💰 Total Revenue: $%s\n", report.GrandTotal.StringFixed(2))
	fmt.Printf("👥 Total Customers: %d\n", report.CustomerCount)
	fmt.Printf("🏆 Top Customer: %s ($%s)\n", report.TopCustomer, report.TopSpend.StringFixed(2))
}

func restockProducts(s *store.Store, scanner *bufio.Scanner) {
	fmt.Println("\n🔄 Restock Products")
	showProducts(s)

	idText, ok := prompt(scanner, "\nEnter Product ID to restock (0 to cancel): ")
	if !ok {
		return
	}
	id, err := strconv.Atoi(idText)
	if err != nil {
		fmt.Println("❌ Invalid input. Please enter numbers only.")
		return
	}
	if id == 0 {
		return
	}
	if _, err := s.Product(id); err != nil {
		fmt.Println("❌ Invalid Product ID.")
		return
	}

	qtyText, ok := prompt(scanner, "Enter quantity to add: ")
	if !ok {
		return
	}
	qty, err := strconv.Atoi(qtyText)
	if err != nil {
		fmt.Println("❌ Invalid input. Please enter numbers only.")
		return
	}
	if qty <= 0 {
		fmt.Println("❌ Quantity must be positive.")
		return
	}

	product, err := s.Restock(id, qty)
	if err != nil {
		fmt.Printf("❌ Restock failed: %v\n", err)
		return
	}
	fmt.Printf("✅ Restocked %s by %d units (now %d in stock).\n", product.Name, qty, product.Stock)
}
