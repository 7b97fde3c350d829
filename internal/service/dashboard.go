package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/store"
	"github.com/shopspring/decimal"
)

// OrderLister defines the store methods needed by the dashboard.
// Satisfied by *store.Store; narrow interface for testability.
type OrderLister interface {
	ListOrders(ctx context.Context) ([]store.Order, error)
}

// Stats is the headline dashboard card data. TotalSales covers today only;
// the three counters cover all orders regardless of age. That asymmetry is
// a product decision the frontend relies on.
type Stats struct {
	TotalSales          decimal.Decimal
	PendingOrders       int
	InPreparationOrders int
	ReadyOrders         int
}

// HourlySale is one bucket of today's sales by hour of day (0-23).
type HourlySale struct {
	Hour  int
	Sales decimal.Decimal
}

// StatusCount is the all-time order count for one in-flight status.
type StatusCount struct {
	Status string
	Count  int
}

// ProductSales is today's sold quantity for one product name.
type ProductSales struct {
	Name     string
	Quantity int
}

// Analytics bundles the chart data behind the dashboard.
type Analytics struct {
	SalesByHour             []HourlySale
	OrderStatusDistribution []StatusCount
	TopSellingProducts      []ProductSales
}

// Dashboard derives sales views by scanning the order store. It keeps no
// state of its own: every call rescans all orders, which is fine at
// restaurant volumes.
type Dashboard struct {
	orders OrderLister
}

// NewDashboard creates a new Dashboard over the given order source.
func NewDashboard(orders OrderLister) *Dashboard {
	return &Dashboard{orders: orders}
}

// inToday reports whether t falls in [start-of-day(now), now), both taken
// in now's location.
func inToday(t, now time.Time) bool {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !t.Before(start) && t.Before(now)
}

// Stats computes the headline numbers as of now.
func (d *Dashboard) Stats(ctx context.Context, now time.Time) (Stats, error) {
	orders, err := d.orders.ListOrders(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("list orders: %w", err)
	}

	stats := Stats{TotalSales: decimal.Zero}
	for _, o := range orders {
		if inToday(o.CreatedAt, now) {
			stats.TotalSales = stats.TotalSales.Add(o.Total)
		}
		switch o.Status {
		case enum.StatusPending:
			stats.PendingOrders++
		case enum.StatusInPreparation:
			stats.InPreparationOrders++
		case enum.StatusReadyToServe:
			stats.ReadyOrders++
		}
	}
	return stats, nil
}

// HourlySales sums today's order totals into 24 hour-of-day buckets, using
// the creation timestamp's local hour. Hours without orders stay at 0.
func (d *Dashboard) HourlySales(ctx context.Context, now time.Time) ([]HourlySale, error) {
	orders, err := d.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	buckets := make([]HourlySale, 24)
	for i := range buckets {
		buckets[i] = HourlySale{Hour: i, Sales: decimal.Zero}
	}
	for _, o := range orders {
		if !inToday(o.CreatedAt, now) {
			continue
		}
		hour := o.CreatedAt.In(now.Location()).Hour()
		buckets[hour].Sales = buckets[hour].Sales.Add(o.Total)
	}
	return buckets, nil
}

// StatusDistribution counts all-time orders in each of the three in-flight
// statuses, in fixed order and with zero counts included.
func (d *Dashboard) StatusDistribution(ctx context.Context) ([]StatusCount, error) {
	orders, err := d.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	counts := []StatusCount{
		{Status: enum.StatusPending},
		{Status: enum.StatusInPreparation},
		{Status: enum.StatusReadyToServe},
	}
	for _, o := range orders {
		for i := range counts {
			if counts[i].Status == o.Status {
				counts[i].Count++
			}
		}
	}
	return counts, nil
}

// TopProducts ranks today's products by quantity sold, descending, keeping
// first-encountered order on ties, and returns the top limit entries.
func (d *Dashboard) TopProducts(ctx context.Context, now time.Time, limit int) ([]ProductSales, error) {
	orders, err := d.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	quantities := make(map[string]int)
	var names []string // first-encounter order, the stable tie-break
	for _, o := range orders {
		if !inToday(o.CreatedAt, now) {
			continue
		}
		for _, item := range o.Items {
			name := item.Product.Name
			if _, seen := quantities[name]; !seen {
				names = append(names, name)
			}
			quantities[name] += item.Quantity
		}
	}

	ranked := make([]ProductSales, len(names))
	for i, name := range names {
		ranked[i] = ProductSales{Name: name, Quantity: quantities[name]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quantity > ranked[j].Quantity
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Analytics bundles the three chart projections as of now. The top product
// list is capped at 5 entries, matching the dashboard widget.
func (d *Dashboard) Analytics(ctx context.Context, now time.Time) (Analytics, error) {
	hourly, err := d.HourlySales(ctx, now)
	if err != nil {
		return Analytics{}, err
	}
	distribution, err := d.StatusDistribution(ctx)
	if err != nil {
		return Analytics{}, err
	}
	top, err := d.TopProducts(ctx, now, 5)
	if err != nil {
		return Analytics{}, err
	}
	return Analytics{
		SalesByHour:             hourly,
		OrderStatusDistribution: distribution,
		TopSellingProducts:      top,
	}, nil
}
