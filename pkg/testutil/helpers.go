// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/takhmino/takhmino/pkg/gold"
	"github.com/takhmino/takhmino/pkg/loans"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the scenario if found, nil otherwise.
func FindScenario(results []gold.Scenario, name string) *gold.Scenario {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// SumPrincipal adds up the principal repaid across a schedule.
func SumPrincipal(rows []loans.Row) float64 {
	total := 0.0
	for _, row := range rows {
		total += row.Principal
	}
	return total
}

// FeeOnlyMonths lists the months flagged as fee-only.
func FeeOnlyMonths(rows []loans.Row) []int {
	var months []int
	for _, row := range rows {
		if row.FeeOnly {
			months = append(months, row.Month)
		}
	}
	return months
}
