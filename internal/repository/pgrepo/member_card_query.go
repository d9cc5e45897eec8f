package pgrepo

import (
	"strconv"
	"strings"

	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
)

const defaultSortColumn = "order_time"

// sortColumns maps public field names accepted by the API to table columns. Anything outside the map falls
// back to defaultSortColumn, so the ORDER BY clause never contains client input.
var sortColumns = map[string]string{
	"id":          "id",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"batchNumber": "batch_number",
	"merchant":    "merchant",
	"supplier":    "supplier",
	"productName": "product_name",
	"faceValue":   "face_value",
	"price":       "price",
	"importPrice": "import_price",
	"cardNumber":  "card_number",
	"orderTime":   "order_time",
	"status":      "status",
}

// queryArgs collects positional arguments and hands out their placeholders.
type queryArgs struct {
	values []any
}

func (a *queryArgs) add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

// buildCardWhere renders filter as a WHERE clause (empty when there are no conditions).
func buildCardWhere(filter repoargs.CardFilter, args *queryArgs) string {
	var conds []string

	if filter.BatchNumber != "" {
		conds = append(conds, "batch_number ILIKE "+args.add(containsPattern(filter.BatchNumber)))
	}
	if filter.CardNumber != "" {
		conds = append(conds, "card_number ILIKE "+args.add(containsPattern(filter.CardNumber)))
	}
	if filter.Status != "" {
		conds = append(conds, "status = "+args.add(string(filter.Status)))
	}
	if filter.OrderTimeFrom != nil {
		conds = append(conds, "order_time >= "+args.add(*filter.OrderTimeFrom))
	}
	if filter.OrderTimeTo != nil {
		conds = append(conds, "order_time < "+args.add(*filter.OrderTimeTo))
	}

	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// buildCardOrder renders the ORDER BY clause. id is appended as a tie breaker to keep pages stable.
func buildCardOrder(sortBy string, order repoargs.SortOrder) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = defaultSortColumn
	}
	direction := "DESC"
	if strings.EqualFold(string(order), string(repoargs.SortAsc)) {
		direction = "ASC"
	}
	if column == "id" {
		return " ORDER BY id " + direction
	}
	return " ORDER BY " + column + " " + direction + ", id " + direction
}

// containsPattern builds an ILIKE pattern matching value anywhere, with LIKE wildcards in value escaped.
func containsPattern(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(value) + "%"
}
