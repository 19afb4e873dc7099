package ledger

import "github.com/expensely/expensely-be/internal/models"

// Summary aggregates a filtered record set.
type Summary struct {
	TotalCount        int                `json:"totalCount"`
	TotalAmount       float64            `json:"totalAmount"`
	TotalIncome       float64            `json:"totalIncome"`
	TotalExpense      float64            `json:"totalExpense"`
	NetAmount         float64            `json:"netAmount"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
	AverageAmount     float64            `json:"averageAmount"`
}

// Summarize computes totals, the income/expense split, net amount, and the
// per-category breakdown over records. The average is 0 for an empty set.
func Summarize(records []models.Record) Summary {
	summary := Summary{
		CategoryBreakdown: make(map[string]float64),
	}
	for _, r := range records {
		summary.TotalCount++
		summary.TotalAmount += r.Amount
		switch r.Kind {
		case models.Income:
			summary.TotalIncome += r.Amount
		case models.Expense:
			summary.TotalExpense += r.Amount
		}
		summary.CategoryBreakdown[r.Category] += r.Amount
	}
	summary.NetAmount = summary.TotalIncome - summary.TotalExpense
	if summary.TotalCount > 0 {
		summary.AverageAmount = summary.TotalAmount / float64(summary.TotalCount)
	}
	return summary
}
