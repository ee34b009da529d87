package stats

import (
	"math"

	"mndotbids/internal"
)

// Category is one priced party of a bid row.
type Category string

const (
	CategoryEngineer Category = "Engineer"
	CategoryBidder0  Category = "BidderID_0"
	CategoryBidder1  Category = "BidderID_1"
	CategoryBidder2  Category = "BidderID_2"
)

// Categories in report column order.
var Categories = []Category{CategoryEngineer, CategoryBidder0, CategoryBidder1, CategoryBidder2}

// Cell is one item/year/category statistic. A zero Occurrence means no
// bid row had a price for the category; WeightedUnitPrice is nil both
// then and when the quantity sum is zero, so "no data" never reads as
// a zero price.
type Cell struct {
	Occurrence        int
	WeightedUnitPrice *float64
}

// Report holds weighted-average statistics for every catalog item,
// including items with no bids at all.
type Report struct {
	Years []int
	Items []internal.ItemRecord
	cells map[int64]map[int]map[Category]Cell
}

type group struct {
	count    int
	sumTotal float64
	sumQty   float64
}

// BuildReport aggregates the joined bid relation into per-item,
// per-year, per-category occurrence counts and quantity-weighted
// average unit prices. Rows with a nil total price for a category are
// excluded from that category's numerator, denominator and count.
func BuildReport(items []internal.ItemRecord, rows []internal.BidJoinRow, years []int) *Report {
	wanted := make(map[int]struct{}, len(years))
	for _, y := range years {
		wanted[y] = struct{}{}
	}

	type key struct {
		itemID   int64
		year     int
		category Category
	}
	groups := map[key]*group{}

	for _, row := range rows {
		if _, ok := wanted[row.Year]; !ok {
			continue
		}
		for _, category := range Categories {
			total := categoryTotal(row, category)
			if total == nil {
				continue
			}
			k := key{itemID: row.ItemID, year: row.Year, category: category}
			g := groups[k]
			if g == nil {
				g = &group{}
				groups[k] = g
			}
			g.count++
			g.sumTotal += *total
			g.sumQty += row.Quantity
		}
	}

	cells := map[int64]map[int]map[Category]Cell{}
	for k, g := range groups {
		byYear := cells[k.itemID]
		if byYear == nil {
			byYear = map[int]map[Category]Cell{}
			cells[k.itemID] = byYear
		}
		byCategory := byYear[k.year]
		if byCategory == nil {
			byCategory = map[Category]Cell{}
			byYear[k.year] = byCategory
		}

		cell := Cell{Occurrence: g.count}
		if g.sumQty != 0 {
			avg := round2(g.sumTotal / g.sumQty)
			cell.WeightedUnitPrice = &avg
		}
		byCategory[k.category] = cell
	}

	return &Report{Years: years, Items: items, cells: cells}
}

// Cell returns the statistic for one item/year/category; the zero Cell
// when there is no data.
func (r *Report) Cell(itemID int64, year int, category Category) Cell {
	return r.cells[itemID][year][category]
}

func categoryTotal(row internal.BidJoinRow, category Category) *float64 {
	switch category {
	case CategoryEngineer:
		return row.EngineerTotalPrice
	case CategoryBidder0:
		return row.Bidder0TotalPrice
	case CategoryBidder1:
		return row.Bidder1TotalPrice
	case CategoryBidder2:
		return row.Bidder2TotalPrice
	default:
		return nil
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
