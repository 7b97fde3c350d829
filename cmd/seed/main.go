package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/store"
)

func main() {
	// CLI flags
	dataFile := flag.String("data", "", "Path to the JSON data file")
	password := flag.String("password", "", "Admin password")
	flag.Parse()

	// Fall back to environment variables
	if *dataFile == "" {
		*dataFile = os.Getenv("DATA_FILE")
	}
	if *password == "" {
		*password = os.Getenv("SEED_PASSWORD")
	}

	// Fall back to defaults
	if *dataFile == "" {
		*dataFile = "db.json"
	}
	if *password == "" {
		*password = "password123"
		log.Println("WARNING: Using default password 'password123'. Change immediately in production!")
	}

	st, err := store.Open(*dataFile)
	if err != nil {
		log.Fatalf("Unable to open data file: %v", err)
	}

	ctx := context.Background()

	if err := seedUsers(ctx, st, *password); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	products, err := seedMenu(ctx, st)
	if err != nil {
		log.Fatalf("Failed to seed menu: %v", err)
	}

	if err := seedOrders(ctx, st, products); err != nil {
		log.Fatalf("Failed to seed orders: %v", err)
	}

	log.Println("Seed completed successfully")
}

// seedUsers creates the admin, waiter and sample customer accounts. Only the
// admin gets a password hash; the staff demo accounts log in by username.
func seedUsers(ctx context.Context, st *store.Store, adminPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	email := func(s string) *string { return &s }
	users := []store.User{
		{Name: "Admin User", Role: enum.RoleAdmin, Username: "admin", Phone: "555-0101", Email: email("admin@restaurant.com"), PasswordHash: string(hashed)},
		{Name: "Waiter Joe", Role: enum.RoleWaiter, Username: "waiter", Phone: "555-0102"},
		{Name: "Cliente Frecuente", Role: enum.RoleCustomer, Username: "cliente", Phone: "555-0103", Email: email("cliente@gmail.com")},
	}

	for _, u := range users {
		if existing, err := st.GetUserByUsername(ctx, u.Username); err == nil {
			log.Printf("User '%s' already exists (ID: %s), skipping", u.Username, existing.ID)
			continue
		}
		created, err := st.CreateUser(ctx, u)
		if err != nil {
			return fmt.Errorf("create user %s: %w", u.Username, err)
		}
		log.Printf("Created user '%s' (ID: %s)", created.Username, created.ID)
	}
	return nil
}

// seedMenu creates the initial menu and returns all products by name so the
// sample orders can snapshot them.
func seedMenu(ctx context.Context, st *store.Store) (map[string]store.Product, error) {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	products := []store.Product{
		// Entradas
		{Name: "Bruschetta de Tomate y Albahaca", Description: "Pan tostado con tomates frescos, albahaca, ajo y aceite de oliva.", Category: "Entradas", Price: price("8.50"), ImageURL: "https://picsum.photos/id/292/400/300", Active: true},
		{Name: "Calamares Fritos", Description: "Calamares tiernos rebozados y fritos, servidos con alioli de limón.", Category: "Entradas", Price: price("12.00"), ImageURL: "https://picsum.photos/id/312/400/300", Active: true},
		{Name: "Tabla de Quesos y Embutidos", Description: "Selección de quesos y embutidos artesanales con pan y mermelada.", Category: "Entradas", Price: price("18.00"), ImageURL: "https://picsum.photos/id/326/400/300", Active: true},
		{Name: "Empanadas de Carne", Description: "Empanadas caseras rellenas de carne sazonada.", Category: "Entradas", Price: price("9.00"), ImageURL: "https://picsum.photos/id/431/400/300", Active: false},
		// Platos Principales
		{Name: "Salmón a la Parrilla", Description: "Filete de salmón fresco a la parrilla servido con espárragos.", Category: "Platos Principales", Price: price("24.00"), ImageURL: "https://picsum.photos/id/1060/400/300", Active: true},
		{Name: "Filete Mignon", Description: "Tierno filete mignon con puré de papas trufado y reducción de vino tinto.", Category: "Platos Principales", Price: price("35.00"), ImageURL: "https://picsum.photos/id/606/400/300", Active: true},
		{Name: "Risotto de Champiñones", Description: "Cremoso risotto con champiñones silvestres y queso parmesano.", Category: "Platos Principales", Price: price("19.00"), ImageURL: "https://picsum.photos/id/1080/400/300", Active: true},
		{Name: "Pollo al Horno con Hierbas", Description: "Medio pollo marinado en hierbas y asado a la perfección.", Category: "Platos Principales", Price: price("21.00"), ImageURL: "https://picsum.photos/id/202/400/300", Active: true},
		// Postres
		{Name: "Tiramisú Clásico", Description: "Capas de bizcocho de soletilla empapado en café, con crema de mascarpone.", Category: "Postres", Price: price("9.00"), ImageURL: "https://picsum.photos/id/219/400/300", Active: true},
		{Name: "Volcán de Chocolate", Description: "Pastel de chocolate tibio con un centro líquido, servido con helado de vainilla.", Category: "Postres", Price: price("10.50"), ImageURL: "https://picsum.photos/id/429/400/300", Active: true},
		// Bebidas
		{Name: "Agua Mineral", Description: "Agua mineral sin gas o con gas.", Category: "Bebidas", Price: price("3.00"), ImageURL: "https://picsum.photos/id/1015/400/300", Active: true},
		{Name: "Copa de Vino (Tinto/Blanco)", Description: "Selección de vinos de la casa.", Category: "Bebidas", Price: price("9.00"), ImageURL: "https://picsum.photos/id/1056/400/300", Active: true},
	}

	existing, err := st.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	byName := make(map[string]store.Product, len(products))
	for _, p := range existing {
		byName[p.Name] = p
	}

	for _, p := range products {
		if found, ok := byName[p.Name]; ok {
			log.Printf("Product '%s' already exists (ID: %s), skipping", found.Name, found.ID)
			continue
		}
		created, err := st.CreateProduct(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("create product %s: %w", p.Name, err)
		}
		byName[created.Name] = created
		log.Printf("Created product '%s' (ID: %s)", created.Name, created.ID)
	}
	return byName, nil
}

// seedOrders creates four historical orders so dashboards and order lists
// have something to show on a fresh install.
func seedOrders(ctx context.Context, st *store.Store, products map[string]store.Product) error {
	existing, err := st.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("Orders already present (%d), skipping", len(existing))
		return nil
	}

	table := func(n int) *int { return &n }
	line := func(name string, qty int, comment string) store.OrderLineItem {
		return store.OrderLineItem{Product: products[name], Quantity: qty, Comment: comment}
	}
	now := time.Now()

	orders := []store.Order{
		{
			Items:       []store.OrderLineItem{line("Salmón a la Parrilla", 2, "")},
			Status:      enum.StatusPaid,
			TableNumber: table(3),
			CreatedAt:   now.Add(-2 * time.Hour),
		},
		{
			Items:       []store.OrderLineItem{line("Risotto de Champiñones", 1, ""), line("Copa de Vino (Tinto/Blanco)", 2, "")},
			Status:      enum.StatusReadyToServe,
			TableNumber: table(5),
			CreatedAt:   now.Add(-1 * time.Hour),
		},
		{
			Items:        []store.OrderLineItem{line("Calamares Fritos", 1, "Extra limón por favor")},
			Status:       enum.StatusInPreparation,
			IsTakeaway:   true,
			CustomerName: "Ana García",
			CreatedAt:    now.Add(-30 * time.Minute),
		},
		{
			Items:       []store.OrderLineItem{line("Filete Mignon", 2, ""), line("Tiramisú Clásico", 1, "")},
			Status:      enum.StatusPending,
			TableNumber: table(8),
			CreatedAt:   now.Add(-5 * time.Minute),
		},
	}

	for i := range orders {
		o := &orders[i]
		subtotal := decimal.Zero
		for _, it := range o.Items {
			subtotal = subtotal.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		o.Subtotal = subtotal
		o.Total = subtotal

		created, err := st.CreateOrder(ctx, *o)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		log.Printf("Created order %d (%s)", created.ID, created.Status)
	}
	return nil
}
