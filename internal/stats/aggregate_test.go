package stats

import (
	"testing"

	"mndotbids/internal"
	"mndotbids/internal/util"
)

func joinRow(contractID, year int, itemID int64, qty float64, bidder0Total *float64) internal.BidJoinRow {
	return internal.BidJoinRow{
		ContractID:         contractID,
		Year:               year,
		ItemID:             itemID,
		Quantity:           qty,
		EngineerTotalPrice: util.FloatPtr(qty * 10),
		Bidder0TotalPrice:  bidder0Total,
	}
}

func TestWeightedAverage(t *testing.T) {
	items := []internal.ItemRecord{{ItemID: 210550120, Description: "COMMON EXCAVATION", Unit: "CU YD"}}
	rows := []internal.BidJoinRow{
		joinRow(1, 2020, 210550120, 10, util.FloatPtr(100)),
		joinRow(2, 2020, 210550120, 5, util.FloatPtr(40)),
		// No low-bidder price: must not move the Bidder 0 numbers.
		joinRow(3, 2020, 210550120, 7, nil),
	}

	report := BuildReport(items, rows, []int{2020})

	cell := report.Cell(210550120, 2020, CategoryBidder0)
	if cell.Occurrence != 2 {
		t.Fatalf("occurrence=%d", cell.Occurrence)
	}
	if cell.WeightedUnitPrice == nil || *cell.WeightedUnitPrice != 9.33 {
		t.Fatalf("weighted price=%v", cell.WeightedUnitPrice)
	}

	// Engineer pricing is present on all three rows.
	engineer := report.Cell(210550120, 2020, CategoryEngineer)
	if engineer.Occurrence != 3 {
		t.Fatalf("engineer occurrence=%d", engineer.Occurrence)
	}
}

func TestWeightedAverageZeroQuantity(t *testing.T) {
	items := []internal.ItemRecord{{ItemID: 1}}
	rows := []internal.BidJoinRow{
		joinRow(1, 2020, 1, 0, util.FloatPtr(100)),
	}

	report := BuildReport(items, rows, []int{2020})
	cell := report.Cell(1, 2020, CategoryBidder0)
	if cell.Occurrence != 1 {
		t.Fatalf("occurrence=%d", cell.Occurrence)
	}
	if cell.WeightedUnitPrice != nil {
		t.Fatalf("zero quantity sum must leave the average missing, got %v", *cell.WeightedUnitPrice)
	}
}

func TestWeightedAverageYearIsolation(t *testing.T) {
	items := []internal.ItemRecord{{ItemID: 1}}
	rows := []internal.BidJoinRow{
		joinRow(1, 2019, 1, 10, util.FloatPtr(100)),
		joinRow(2, 2020, 1, 10, util.FloatPtr(300)),
	}

	report := BuildReport(items, rows, []int{2020, 2019})

	if got := report.Cell(1, 2019, CategoryBidder0); got.WeightedUnitPrice == nil || *got.WeightedUnitPrice != 10 {
		t.Fatalf("2019 cell: %+v", got)
	}
	if got := report.Cell(1, 2020, CategoryBidder0); got.WeightedUnitPrice == nil || *got.WeightedUnitPrice != 30 {
		t.Fatalf("2020 cell: %+v", got)
	}
}

func TestWeightedAverageUnconfiguredYearExcluded(t *testing.T) {
	items := []internal.ItemRecord{{ItemID: 1}}
	rows := []internal.BidJoinRow{
		joinRow(1, 2017, 1, 10, util.FloatPtr(100)),
	}

	report := BuildReport(items, rows, []int{2020})
	if got := report.Cell(1, 2020, CategoryBidder0); got.Occurrence != 0 {
		t.Fatalf("2017 row leaked into 2020: %+v", got)
	}
}

func TestItemsWithoutBidsKeepEmptyCells(t *testing.T) {
	items := []internal.ItemRecord{{ItemID: 1}, {ItemID: 2}}
	rows := []internal.BidJoinRow{
		joinRow(1, 2020, 1, 10, util.FloatPtr(100)),
	}

	report := BuildReport(items, rows, []int{2020})
	cell := report.Cell(2, 2020, CategoryBidder0)
	if cell.Occurrence != 0 || cell.WeightedUnitPrice != nil {
		t.Fatalf("item without bids: %+v", cell)
	}
	if len(report.Items) != 2 {
		t.Fatalf("items=%d", len(report.Items))
	}
}
