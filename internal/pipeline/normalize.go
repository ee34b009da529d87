package pipeline

import (
	"strconv"

	"mndotbids/internal"
)

// Fixed positions of the bidder price pairs in the bid sub-table.
// Columns 0-9 are contract and item metadata; the lowest bidder's
// unit/extended pair starts at 10 and each further bidder appends two
// more columns.
const (
	bidder0UnitCol  = 10
	bidder0TotalCol = 11
	bidderPairWidth = 2
	maxPricedRanks  = 3
)

// SpecClassifier resolves which item list vintage an item id belongs to.
type SpecClassifier interface {
	Classify(itemID int64) int
}

// Normalized is the full relational output for one abstract.
type Normalized struct {
	Contract internal.ContractRecord
	Bids     []internal.BidRecord
	Bidders  []internal.BidderRecord
}

// NormalizeAbstract turns the three raw segments into Contract, Bid and
// Bidder records. The number of priced bidder ranks is derived once
// from the bidder sub-table and threaded through both the contract and
// bid paths; the bid segment's column count must agree with it.
func NormalizeAbstract(raw internal.RawAbstract, classifier SpecClassifier) (Normalized, error) {
	bidders, err := normalizeBidders(raw.BidderBlock)
	if err != nil {
		return Normalized{}, err
	}

	pricedRanks := len(bidders)
	if pricedRanks > maxPricedRanks {
		pricedRanks = maxPricedRanks
	}

	contract, err := normalizeContract(raw, bidders)
	if err != nil {
		return Normalized{}, err
	}

	bids, err := normalizeBids(raw, pricedRanks, classifier)
	if err != nil {
		return Normalized{}, err
	}

	return Normalized{Contract: contract, Bids: bids, Bidders: bidders}, nil
}

func normalizeBidders(segment string) ([]internal.BidderRecord, error) {
	t, err := parseTable(segment)
	if err != nil {
		return nil, err
	}
	if len(t.rows) == 0 {
		return nil, internal.Structuralf("bidder sub-table has no rows")
	}

	out := make([]internal.BidderRecord, 0, len(t.rows))
	for _, row := range t.rows {
		number, err := t.field(row, "Bidder Number")
		if err != nil {
			return nil, err
		}
		name, err := t.field(row, "Bidder Name")
		if err != nil {
			return nil, err
		}
		id, convErr := strconv.Atoi(number)
		if convErr != nil {
			return nil, &internal.FormatError{Field: "Bidder Number", Value: number}
		}
		out = append(out, internal.BidderRecord{BidderID: id, Name: name})
	}
	return out, nil
}

func normalizeContract(raw internal.RawAbstract, bidders []internal.BidderRecord) (internal.ContractRecord, error) {
	t, err := parseTable(raw.ContractBlock)
	if err != nil {
		return internal.ContractRecord{}, err
	}
	if len(t.rows) != 1 {
		return internal.ContractRecord{}, internal.Structuralf("contract sub-table has %d rows, want 1", len(t.rows))
	}
	row := t.rows[0]

	idField, err := t.field(row, "Contract Id")
	if err != nil {
		return internal.ContractRecord{}, err
	}
	contractID, convErr := strconv.Atoi(idField)
	if convErr != nil {
		return internal.ContractRecord{}, &internal.FormatError{Field: "Contract Id", Value: idField}
	}
	if contractID != raw.ContractID {
		return internal.ContractRecord{}, internal.Integrityf("abstract %d contains contract id %d", raw.ContractID, contractID)
	}

	letDate, err := t.field(row, "Letting Date")
	if err != nil {
		return internal.ContractRecord{}, err
	}
	year, err := yearFromLetDate(letDate)
	if err != nil {
		return internal.ContractRecord{}, err
	}
	spNumber, err := t.field(row, "SP Number")
	if err != nil {
		return internal.ContractRecord{}, err
	}
	district, err := t.field(row, "District")
	if err != nil {
		return internal.ContractRecord{}, err
	}
	county, err := t.field(row, "County")
	if err != nil {
		return internal.ContractRecord{}, err
	}

	record := internal.ContractRecord{
		ContractID: contractID,
		Year:       year,
		LetDate:    letDate,
		SPNumber:   spNumber,
		District:   district,
		County:     county,
		BidderID0:  bidders[0].BidderID,
	}
	if len(bidders) > 1 {
		id := bidders[1].BidderID
		record.BidderID1 = &id
	}
	if len(bidders) > 2 {
		id := bidders[2].BidderID
		record.BidderID2 = &id
	}
	return record, nil
}

func normalizeBids(raw internal.RawAbstract, pricedRanks int, classifier SpecClassifier) ([]internal.BidRecord, error) {
	t, err := parseTable(raw.BidBlock)
	if err != nil {
		return nil, err
	}

	wantWidth := bidder0TotalCol + 1 + (pricedRanks-1)*bidderPairWidth
	if t.width() != wantWidth {
		return nil, internal.Integrityf(
			"bid sub-table has %d columns, %d bidders imply %d", t.width(), pricedRanks, wantWidth)
	}

	seen := make(map[int64]struct{}, len(t.rows))
	out := make([]internal.BidRecord, 0, len(t.rows))
	for _, row := range t.rows {
		itemNumber, err := t.field(row, "ItemNumber")
		if err != nil {
			return nil, err
		}
		itemID, err := ItemIDFromString(itemNumber)
		if err != nil {
			return nil, err
		}
		bidID, err := BidID(raw.ContractID, itemNumber)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[bidID]; dup {
			return nil, internal.Integrityf("duplicate bid id %d in abstract %d", bidID, raw.ContractID)
		}
		seen[bidID] = struct{}{}

		quantityField, err := t.field(row, "Quantity")
		if err != nil {
			return nil, err
		}
		quantity, err := quantityToFloat(quantityField)
		if err != nil {
			return nil, err
		}

		record := internal.BidRecord{
			BidID:      bidID,
			ContractID: raw.ContractID,
			ItemID:     itemID,
			SpecYear:   classifier.Classify(itemID),
			Quantity:   quantity,
		}

		if record.EngineerUnitPrice, err = priceField(t, row, "Engineers (Unit Price)"); err != nil {
			return nil, err
		}
		if record.EngineerTotalPrice, err = priceField(t, row, "Engineers (Extended Amount)"); err != nil {
			return nil, err
		}
		if record.Bidder0UnitPrice, err = priceAt(t, row, bidder0UnitCol); err != nil {
			return nil, err
		}
		if record.Bidder0TotalPrice, err = priceAt(t, row, bidder0TotalCol); err != nil {
			return nil, err
		}

		if pricedRanks > 1 {
			unit, err := priceAt(t, row, bidder0UnitCol+bidderPairWidth)
			if err != nil {
				return nil, err
			}
			total, err := priceAt(t, row, bidder0TotalCol+bidderPairWidth)
			if err != nil {
				return nil, err
			}
			record.Bidder1UnitPrice = &unit
			record.Bidder1TotalPrice = &total
		}
		if pricedRanks > 2 {
			unit, err := priceAt(t, row, bidder0UnitCol+2*bidderPairWidth)
			if err != nil {
				return nil, err
			}
			total, err := priceAt(t, row, bidder0TotalCol+2*bidderPairWidth)
			if err != nil {
				return nil, err
			}
			record.Bidder2UnitPrice = &unit
			record.Bidder2TotalPrice = &total
		}

		out = append(out, record)
	}
	return out, nil
}

func priceField(t *table, row []string, name string) (float64, error) {
	value, err := t.field(row, name)
	if err != nil {
		return 0, err
	}
	return PriceToFloat(value)
}

func priceAt(t *table, row []string, i int) (float64, error) {
	value, err := t.at(row, i)
	if err != nil {
		return 0, err
	}
	return PriceToFloat(value)
}

func quantityToFloat(value string) (float64, error) {
	parsed, err := PriceToFloat(value)
	if err != nil {
		return 0, &internal.FormatError{Field: "Quantity", Value: value}
	}
	return parsed, nil
}
