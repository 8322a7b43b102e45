// Package model defines the data shapes shared across chatpulse packages.
package model

import (
	"math"
	"time"
)

// MetricsInput holds the already-aggregated support chat metrics for one
// render. The panel never mutates it.
type MetricsInput struct {
	TotalMessages       int64   `json:"totalMessages" toml:"total_messages"`
	AverageResponseTime float64 `json:"averageResponseTime" toml:"average_response_time"` // minutes
	ResolvedChats       int64   `json:"resolvedChats" toml:"resolved_chats"`
	ActiveAdmins        int64   `json:"activeAdmins" toml:"active_admins"`

	// CustomerSatisfaction is a percentage in [0,100]. nil means the
	// aggregator did not supply one; 0 is a real score.
	CustomerSatisfaction *float64 `json:"customerSatisfaction,omitempty" toml:"customer_satisfaction,omitempty"`
}

// HasSatisfaction reports whether a satisfaction score was supplied.
func (m MetricsInput) HasSatisfaction() bool {
	return m.CustomerSatisfaction != nil
}

// Satisfaction returns a pointer to v, for building inputs in code.
func Satisfaction(v float64) *float64 {
	return &v
}

// Snapshot is a MetricsInput captured at a point in time.
type Snapshot struct {
	ID         int64        `json:"id,omitempty"`
	CapturedAt time.Time    `json:"captured_at"`
	Source     string       `json:"source"`
	Metrics    MetricsInput `json:"metrics"`
}

// Equal reports whether two inputs carry the same values, treating absent
// and present satisfaction as different. NaN equals NaN here.
func (m MetricsInput) Equal(o MetricsInput) bool {
	if m.TotalMessages != o.TotalMessages ||
		!sameFloat(m.AverageResponseTime, o.AverageResponseTime) ||
		m.ResolvedChats != o.ResolvedChats ||
		m.ActiveAdmins != o.ActiveAdmins {
		return false
	}
	if m.CustomerSatisfaction == nil || o.CustomerSatisfaction == nil {
		return m.CustomerSatisfaction == nil && o.CustomerSatisfaction == nil
	}
	return sameFloat(*m.CustomerSatisfaction, *o.CustomerSatisfaction)
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
