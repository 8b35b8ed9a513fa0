package analytics

import (
	"math/rand"
)

// ServiceMetric is one entry in the top-services breakdown.
type ServiceMetric struct {
	Name     string  `json:"name"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// MetricsSource supplies the engagement metrics the platform does not yet
// track per-service. Aggregation code only sees this interface, so a real
// tracking backend can replace the placeholder without touching it.
type MetricsSource interface {
	TopServices(monthRevenue float64) []ServiceMetric
	AverageSessionMinutes() int
	CustomerSatisfaction() float64
	ResponseRate() int
}

// PlaceholderMetrics produces mock data pending real per-service tracking:
// three synthetic services splitting the month's revenue 40/35/25.
type PlaceholderMetrics struct{}

func (PlaceholderMetrics) TopServices(monthRevenue float64) []ServiceMetric {
	shares := []struct {
		name  string
		share float64
	}{
		{"Consultation", 0.40},
		{"Project Work", 0.35},
		{"Follow-up Session", 0.25},
	}

	metrics := make([]ServiceMetric, 0, len(shares))
	for _, s := range shares {
		metrics = append(metrics, ServiceMetric{
			Name:     s.name,
			Bookings: rand.Intn(20) + 5,
			Revenue:  monthRevenue * s.share,
		})
	}
	return metrics
}

func (PlaceholderMetrics) AverageSessionMinutes() int { return 55 }

func (PlaceholderMetrics) CustomerSatisfaction() float64 { return 4.8 }

func (PlaceholderMetrics) ResponseRate() int { return 95 }

// Metrics is the source used by the dashboard handler.
var Metrics MetricsSource = PlaceholderMetrics{}
