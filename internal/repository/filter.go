package repository

import (
	"fmt"
	"strings"

	"foodbridge-matching/internal/domain"
)

// BuildDonationPredicate turns a DonationFilter into a WHERE clause and
// its positional arguments. Only the enumerated filter fields are ever
// consulted; an empty filter yields an empty clause. Pure function,
// testable without a store.
func BuildDonationPredicate(f domain.DonationFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.FoodType != nil {
		args = append(args, *f.FoodType)
		conds = append(conds, fmt.Sprintf("food_type = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
