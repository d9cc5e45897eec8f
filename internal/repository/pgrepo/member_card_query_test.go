package pgrepo

import (
	"testing"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/stretchr/testify/assert"
)

func TestBuildCardWhere(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 5)

	tests := []struct {
		name     string
		filter   repoargs.CardFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "empty filter",
			filter:  repoargs.CardFilter{},
			wantSQL: "",
		},
		{
			name: "every condition",
			filter: repoargs.CardFilter{
				BatchNumber:   "B-01",
				CardNumber:    "88",
				Status:        domain.CardStatusShipped,
				OrderTimeFrom: &from,
				OrderTimeTo:   &to,
			},
			wantSQL: " WHERE batch_number ILIKE $1 AND card_number ILIKE $2 AND status = $3" +
				" AND order_time >= $4 AND order_time < $5",
			wantArgs: []any{"%B-01%", "%88%", "已出库", from, to},
		},
		{
			name:     "wildcards are escaped",
			filter:   repoargs.CardFilter{CardNumber: `50%_\`},
			wantSQL:  " WHERE card_number ILIKE $1",
			wantArgs: []any{`%50\%\_\\%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := &queryArgs{}
			assert.Equal(t, tt.wantSQL, buildCardWhere(tt.filter, args))
			assert.Equal(t, tt.wantArgs, args.values)
		})
	}
}

func TestBuildCardOrder(t *testing.T) {
	assert.Equal(t, " ORDER BY order_time DESC, id DESC", buildCardOrder("", ""))
	assert.Equal(t, " ORDER BY price ASC, id ASC", buildCardOrder("price", repoargs.SortAsc))
	assert.Equal(t, " ORDER BY price ASC, id ASC", buildCardOrder("price", "asc"))
	assert.Equal(t, " ORDER BY id DESC", buildCardOrder("id", repoargs.SortDesc))
	assert.Equal(t, " ORDER BY order_time DESC, id DESC", buildCardOrder("price; DROP TABLE users", ""))
}
