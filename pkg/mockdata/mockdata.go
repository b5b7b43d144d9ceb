// Package mockdata generates the substitute marketplace data served when
// the real backend is unreachable, and seeds the offline development
// backend. The data is deterministic per process so screens stay stable
// across refreshes.
package mockdata

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dukaworks/console/pkg/apiclient"
	"github.com/dukaworks/console/pkg/idx"
)

var vendorNames = []string{
	"Mama Njeri Groceries",
	"Kilimani Electronics",
	"Savanna Textiles",
	"Rift Valley Produce",
	"Coast Spice House",
	"Uptown Stationers",
	"Green Hills Pharmacy",
	"Lakeside Fishmongers",
}

var orderStatuses = []string{"pending", "packed", "dispatched", "delivered", "cancelled"}

var customers = []string{
	"Amina W.", "Brian O.", "Cynthia K.", "David M.",
	"Esther N.", "Felix T.", "Grace A.", "Hassan J.",
}

// Provider serves the generated data set. It satisfies the API client's
// fallback contract and backs the offline development backend's read
// endpoints.
type Provider struct {
	once sync.Once

	vendors   []apiclient.Vendor
	orders    []apiclient.Order
	dashboard apiclient.DashboardMetrics
}

// NewProvider returns a provider whose data set is generated lazily on
// first use.
func NewProvider() *Provider { return &Provider{} }

func (p *Provider) generate() {
	// Seeded so every call within a process sees the same marketplace.
	rng := rand.New(rand.NewPCG(0x6475, 0x6b61))
	base := time.Now().UTC().Add(-30 * 24 * time.Hour).Truncate(time.Hour)

	p.vendors = make([]apiclient.Vendor, 0, len(vendorNames))
	for i, name := range vendorNames {
		joined := base.Add(time.Duration(i) * 37 * time.Hour)
		status := "active"
		if rng.IntN(10) == 0 {
			status = "suspended"
		}
		p.vendors = append(p.vendors, apiclient.Vendor{
			ID:       idx.NewAt(joined).String(),
			Name:     name,
			Email:    vendorEmail(name),
			Status:   status,
			Products: 5 + rng.IntN(120),
			JoinedAt: joined,
		})
	}

	const orderCount = 24
	p.orders = make([]apiclient.Order, 0, orderCount)
	var revenue int64
	var today int
	now := time.Now().UTC()
	for i := 0; i < orderCount; i++ {
		placed := now.Add(-time.Duration(rng.IntN(72)) * time.Hour)
		total := int64(500+rng.IntN(20000)) * 10
		status := orderStatuses[rng.IntN(len(orderStatuses))]
		if status != "cancelled" {
			revenue += total
		}
		if placed.After(now.Truncate(24 * time.Hour)) {
			today++
		}
		p.orders = append(p.orders, apiclient.Order{
			ID:         idx.NewAt(placed).String(),
			VendorID:   p.vendors[rng.IntN(len(p.vendors))].ID,
			Customer:   customers[rng.IntN(len(customers))],
			Status:     status,
			TotalCents: total,
			PlacedAt:   placed,
		})
	}

	p.dashboard = apiclient.DashboardMetrics{
		Vendors:      len(p.vendors),
		Customers:    len(customers) * 31,
		OrdersToday:  today,
		RevenueCents: revenue,
		OpenTickets:  3 + rng.IntN(9),
	}
}

// Vendors returns the generated vendor set.
func (p *Provider) Vendors() []apiclient.Vendor {
	p.once.Do(p.generate)
	out := make([]apiclient.Vendor, len(p.vendors))
	copy(out, p.vendors)
	return out
}

// Orders returns the generated order set.
func (p *Provider) Orders() []apiclient.Order {
	p.once.Do(p.generate)
	out := make([]apiclient.Order, len(p.orders))
	copy(out, p.orders)
	return out
}

// Dashboard returns metrics consistent with the generated vendors and
// orders.
func (p *Provider) Dashboard() apiclient.DashboardMetrics {
	p.once.Do(p.generate)
	return p.dashboard
}

func vendorEmail(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ':
			out = append(out, '.')
		}
	}
	return string(out) + "@vendors.duka.example"
}
