package model

import "github.com/shopspring/decimal"

// StockRow is one entry of /statistic/stock/select.
type StockRow struct {
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	Quantity    int    `json:"quantity"`
	StockStatus string `json:"stock_status"`
}

// ShortageRow is one entry of /statistic/stock/shortage. MonthsOfSupply is
// a display value, SupplyAmple when the book has no sales velocity.
type ShortageRow struct {
	ISBN           string `json:"isbn"`
	Title          string `json:"title"`
	Quantity       int    `json:"quantity"`
	LastMonthSales int    `json:"last_month_sales"`
	MonthsOfSupply string `json:"months_of_supply"`
	WarningLevel   string `json:"warning_level"`
}

// RankRow is one entry of the daily and monthly sales ranks.
type RankRow struct {
	Rank        int             `json:"rank"`
	ISBN        string          `json:"isbn"`
	Title       string          `json:"title"`
	TotalQty    int             `json:"total_qty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
