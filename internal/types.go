package internal

// AbstractStatus tracks how far one scraped contract id has made it
// through the processing pipeline.
type AbstractStatus string

const (
	StatusPending   AbstractStatus = "pending"
	StatusProcessed AbstractStatus = "processed"
	StatusError     AbstractStatus = "error"
)

// RawAbstract holds the three unparsed CSV segments of one bid abstract.
type RawAbstract struct {
	ContractID    int
	ContractBlock string
	BidBlock      string
	BidderBlock   string
}

type AbstractRow struct {
	AbstractID int
	Year       int
	Status     AbstractStatus
	Error      *string
}

// ContractRecord is one row of the Contract table. BidderID1 and
// BidderID2 stay nil when the letting had fewer than two or three
// bidders; nil and zero mean different things downstream.
type ContractRecord struct {
	ContractID int
	Year       int
	LetDate    string
	SPNumber   string
	District   string
	County     string
	BidderID0  int
	BidderID1  *int
	BidderID2  *int
}

type BidderRecord struct {
	BidderID int
	Name     string
}

// BidRecord is one priced line item of a contract. The rank 1 and 2
// price pairs are nil when that bidder does not exist for the contract.
type BidRecord struct {
	BidID              int64
	ContractID         int
	ItemID             int64
	SpecYear           int
	Quantity           float64
	EngineerUnitPrice  float64
	EngineerTotalPrice float64
	Bidder0UnitPrice   float64
	Bidder0TotalPrice  float64
	Bidder1UnitPrice   *float64
	Bidder1TotalPrice  *float64
	Bidder2UnitPrice   *float64
	Bidder2TotalPrice  *float64
}

// ItemRecord is one entry of a Trns*port item list vintage.
type ItemRecord struct {
	ItemID      int64
	SpecCode    string
	UnitCode    string
	ItemCode    string
	Description string
	Unit        string
}

// BidJoinRow is a Bid joined with its Contract, the shape the
// aggregation engine consumes. Total prices are nil when the bidder
// rank was absent at normalization time.
type BidJoinRow struct {
	ContractID         int
	Year               int
	ItemID             int64
	Quantity           float64
	EngineerTotalPrice *float64
	Bidder0TotalPrice  *float64
	Bidder1TotalPrice  *float64
	Bidder2TotalPrice  *float64
}
