package api

import (
	"net/http"

	"github.com/fsdevblog/cenjin-cards/internal/service"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService StatsServicer
}

func NewStatsHandler(statsService StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// StatsResponse keeps the flat keys the dashboard reads.
type StatsResponse struct {
	CurrentMonthCount          int64   `json:"currentMonthCount"`
	CurrentMonthSalesAmount    float64 `json:"currentMonthSalesAmount"`
	CurrentMonthPurchaseAmount float64 `json:"currentMonthPurchaseAmount"`
	CurrentMonthProfit         float64 `json:"currentMonthProfit"`
	CurrentMonthShippedCount   int64   `json:"currentMonthShippedCount"`
	CurrentMonthPendingCount   int64   `json:"currentMonthPendingCount"`
	LastMonthCount             int64   `json:"lastMonthCount"`
	LastMonthAmount            float64 `json:"lastMonthAmount"`
	LastMonthPurchaseAmount    float64 `json:"lastMonthPurchaseAmount"`
	LastMonthProfit            float64 `json:"lastMonthProfit"`
	LastMonthShippedCount      int64   `json:"lastMonthShippedCount"`
	LastMonthPendingCount      int64   `json:"lastMonthPendingCount"`
	CurrentYearCount           int64   `json:"currentYearCount"`
	CurrentYearSalesAmount     float64 `json:"currentYearSalesAmount"`
	CurrentYearPurchaseAmount  float64 `json:"currentYearPurchaseAmount"`
	CurrentYearProfit          float64 `json:"currentYearProfit"`
	CurrentYearShippedCount    int64   `json:"currentYearShippedCount"`
	CurrentYearPendingCount    int64   `json:"currentYearPendingCount"`
}

func newStatsResponse(o *service.Overview) StatsResponse {
	return StatsResponse{
		CurrentMonthCount:          o.CurrentMonth.Count,
		CurrentMonthSalesAmount:    o.CurrentMonth.SalesAmount.InexactFloat64(),
		CurrentMonthPurchaseAmount: o.CurrentMonth.PurchaseAmount.InexactFloat64(),
		CurrentMonthProfit:         o.CurrentMonth.Profit.InexactFloat64(),
		CurrentMonthShippedCount:   o.CurrentMonth.ShippedCount,
		CurrentMonthPendingCount:   o.CurrentMonth.PendingCount,
		LastMonthCount:             o.LastMonth.Count,
		LastMonthAmount:            o.LastMonth.SalesAmount.InexactFloat64(),
		LastMonthPurchaseAmount:    o.LastMonth.PurchaseAmount.InexactFloat64(),
		LastMonthProfit:            o.LastMonth.Profit.InexactFloat64(),
		LastMonthShippedCount:      o.LastMonth.ShippedCount,
		LastMonthPendingCount:      o.LastMonth.PendingCount,
		CurrentYearCount:           o.CurrentYear.Count,
		CurrentYearSalesAmount:     o.CurrentYear.SalesAmount.InexactFloat64(),
		CurrentYearPurchaseAmount:  o.CurrentYear.PurchaseAmount.InexactFloat64(),
		CurrentYearProfit:          o.CurrentYear.Profit.InexactFloat64(),
		CurrentYearShippedCount:    o.CurrentYear.ShippedCount,
		CurrentYearPendingCount:    o.CurrentYear.PendingCount,
	}
}

type ChartPointResponse struct {
	Date           string  `json:"date"`
	OrderCount     int64   `json:"orderCount"`
	SalesAmount    float64 `json:"salesAmount"`
	PurchaseAmount float64 `json:"purchaseAmount"`
	Profit         float64 `json:"profit"`
}

type ChartResponse struct {
	TimeRange   string               `json:"timeRange"`
	LabelFormat string               `json:"labelFormat"`
	ChartData   []ChartPointResponse `json:"chartData"`
}

type RankItemResponse struct {
	Rank          int    `json:"rank"`
	ProductName   string `json:"productName"`
	DeliveryCount int64  `json:"deliveryCount"`
}

// Stats GET RouteGroup + CardsStatsRoute.
func (h *StatsHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	overview, err := h.statsService.Overview(ctx)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, "", newStatsResponse(overview))
}

// Chart GET RouteGroup + CardsChartRoute?timeRange=week|month|year.
func (h *StatsHandler) Chart(c *gin.Context) {
	ctx := c.Request.Context()

	chart, err := h.statsService.Chart(ctx, c.Query("timeRange"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	points := make([]ChartPointResponse, len(chart.Points))
	for i, p := range chart.Points {
		points[i] = ChartPointResponse{
			Date:           p.Date,
			OrderCount:     p.OrderCount,
			SalesAmount:    p.SalesAmount.InexactFloat64(),
			PurchaseAmount: p.PurchaseAmount.InexactFloat64(),
			Profit:         p.Profit.InexactFloat64(),
		}
	}
	respond(c, http.StatusOK, "", ChartResponse{
		TimeRange:   string(chart.TimeRange),
		LabelFormat: string(chart.LabelFormat),
		ChartData:   points,
	})
}

// Rank GET RouteGroup + CardsRankRoute. Top delivered products.
func (h *StatsHandler) Rank(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := h.statsService.Rank(ctx)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	res := make([]RankItemResponse, len(items))
	for i, item := range items {
		res[i] = RankItemResponse{Rank: item.Rank, ProductName: item.ProductName, DeliveryCount: item.DeliveryCount}
	}
	respond(c, http.StatusOK, "", res)
}
