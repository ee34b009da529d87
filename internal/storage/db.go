package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"mndotbids/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS Item2018 (
  ItemID INTEGER PRIMARY KEY,
  SpecCode TEXT,
  UnitCode TEXT,
  ItemCode TEXT,
  Description TEXT,
  Unit TEXT
);

CREATE TABLE IF NOT EXISTS Item2020 (
  ItemID INTEGER PRIMARY KEY,
  SpecCode TEXT,
  UnitCode TEXT,
  ItemCode TEXT,
  Description TEXT,
  Unit TEXT
);

CREATE TABLE IF NOT EXISTS Abstract (
  AbstractID INTEGER PRIMARY KEY,
  Year INTEGER NOT NULL,
  Status TEXT NOT NULL DEFAULT 'pending',
  Error TEXT,
  UpdatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_abstract_status ON Abstract(Status);

CREATE TABLE IF NOT EXISTS Contract (
  ContractID INTEGER PRIMARY KEY,
  Year INTEGER NOT NULL,
  LetDate TEXT,
  SPNumber TEXT,
  District TEXT,
  County TEXT,
  BidderID_0 INTEGER REFERENCES Bidder(BidderID),
  BidderID_1 INTEGER REFERENCES Bidder(BidderID),
  BidderID_2 INTEGER REFERENCES Bidder(BidderID)
);
CREATE INDEX IF NOT EXISTS idx_contract_year ON Contract(Year);
CREATE INDEX IF NOT EXISTS idx_contract_district ON Contract(District);
CREATE INDEX IF NOT EXISTS idx_contract_county ON Contract(County);

CREATE TABLE IF NOT EXISTS Bid (
  BidID INTEGER PRIMARY KEY,
  ContractID INTEGER NOT NULL REFERENCES Contract(ContractID),
  ItemID INTEGER NOT NULL,
  SpecYear INTEGER,
  Quantity REAL,
  Engineer_UnitPrice REAL,
  Engineer_TotalPrice REAL,
  BidderID_0_UnitPrice REAL,
  BidderID_0_TotalPrice REAL,
  BidderID_1_UnitPrice REAL,
  BidderID_1_TotalPrice REAL,
  BidderID_2_UnitPrice REAL,
  BidderID_2_TotalPrice REAL
);
CREATE INDEX IF NOT EXISTS idx_bid_contract ON Bid(ContractID);
CREATE INDEX IF NOT EXISTS idx_bid_item ON Bid(ItemID);

CREATE TABLE IF NOT EXISTS Bidder (
  BidderID INTEGER PRIMARY KEY,
  Name TEXT
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func itemTable(specYear int) (string, error) {
	switch specYear {
	case 2018:
		return "Item2018", nil
	case 2020:
		return "Item2020", nil
	default:
		return "", fmt.Errorf("no item table for spec year %d", specYear)
	}
}

func (d *DB) InsertItems(specYear int, items []internal.ItemRecord) error {
	table, err := itemTable(specYear)
	if err != nil {
		return err
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT OR IGNORE INTO ` + table + ` (ItemID, SpecCode, UnitCode, ItemCode, Description, Unit)
VALUES (?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.Exec(item.ItemID, item.SpecCode, item.UnitCode, item.ItemCode, item.Description, item.Unit); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListItems(specYear int) ([]internal.ItemRecord, error) {
	table, err := itemTable(specYear)
	if err != nil {
		return nil, err
	}

	rows, err := d.conn.Query(`
SELECT ItemID, SpecCode, UnitCode, ItemCode, Description, Unit
FROM ` + table + ` ORDER BY ItemID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ItemRecord
	for rows.Next() {
		var item internal.ItemRecord
		if err := rows.Scan(&item.ItemID, &item.SpecCode, &item.UnitCode, &item.ItemCode, &item.Description, &item.Unit); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (d *DB) ListItemIDs(specYear int) ([]int64, error) {
	table, err := itemTable(specYear)
	if err != nil {
		return nil, err
	}

	rows, err := d.conn.Query(`SELECT ItemID FROM ` + table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// InsertAbstractIDs records newly enumerated contract ids as pending.
// Ids already tracked are left untouched. Returns how many were new.
func (d *DB) InsertAbstractIDs(year int, ids []int) (int, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT OR IGNORE INTO Abstract (AbstractID, Year, Status) VALUES (?, ?, ?)
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, id := range ids {
		res, err := stmt.Exec(id, year, string(internal.StatusPending))
		if err != nil {
			return 0, err
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (d *DB) ListPendingAbstracts(limit int) ([]internal.AbstractRow, error) {
	rows, err := d.conn.Query(`
SELECT AbstractID, Year, Status, Error
FROM Abstract WHERE Status = ? ORDER BY AbstractID DESC LIMIT ?
`, string(internal.StatusPending), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.AbstractRow
	for rows.Next() {
		var row internal.AbstractRow
		var status string
		if err := rows.Scan(&row.AbstractID, &row.Year, &status, &row.Error); err != nil {
			return nil, err
		}
		row.Status = internal.AbstractStatus(status)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) GetAbstract(id int) (*internal.AbstractRow, error) {
	var row internal.AbstractRow
	var status string
	err := d.conn.QueryRow(`
SELECT AbstractID, Year, Status, Error FROM Abstract WHERE AbstractID = ?
`, id).Scan(&row.AbstractID, &row.Year, &status, &row.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	row.Status = internal.AbstractStatus(status)
	return &row, nil
}

func (d *DB) MarkAbstractProcessed(id int) error {
	_, err := d.conn.Exec(`
UPDATE Abstract SET Status = ?, Error = NULL, UpdatedAt = CURRENT_TIMESTAMP WHERE AbstractID = ?
`, string(internal.StatusProcessed), id)
	return err
}

func (d *DB) MarkAbstractError(id int, message string) error {
	_, err := d.conn.Exec(`
UPDATE Abstract SET Status = ?, Error = ?, UpdatedAt = CURRENT_TIMESTAMP WHERE AbstractID = ?
`, string(internal.StatusError), message, id)
	return err
}

// InsertAbstractData persists the full normalized output of one
// abstract in a single transaction. Every insert is INSERT OR IGNORE:
// re-running an abstract is a no-op, and bidders shared across
// contracts keep their first-seen name.
func (d *DB) InsertAbstractData(data internal.ContractRecord, bids []internal.BidRecord, bidders []internal.BidderRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, bidder := range bidders {
		if _, err := tx.Exec(`
INSERT OR IGNORE INTO Bidder (BidderID, Name) VALUES (?, ?)
`, bidder.BidderID, bidder.Name); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
INSERT OR IGNORE INTO Contract (ContractID, Year, LetDate, SPNumber, District, County, BidderID_0, BidderID_1, BidderID_2)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, data.ContractID, data.Year, data.LetDate, data.SPNumber, data.District, data.County,
		data.BidderID0, data.BidderID1, data.BidderID2); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT OR IGNORE INTO Bid (
  BidID, ContractID, ItemID, SpecYear, Quantity,
  Engineer_UnitPrice, Engineer_TotalPrice,
  BidderID_0_UnitPrice, BidderID_0_TotalPrice,
  BidderID_1_UnitPrice, BidderID_1_TotalPrice,
  BidderID_2_UnitPrice, BidderID_2_TotalPrice
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, bid := range bids {
		if _, err := stmt.Exec(
			bid.BidID, bid.ContractID, bid.ItemID, bid.SpecYear, bid.Quantity,
			bid.EngineerUnitPrice, bid.EngineerTotalPrice,
			bid.Bidder0UnitPrice, bid.Bidder0TotalPrice,
			bid.Bidder1UnitPrice, bid.Bidder1TotalPrice,
			bid.Bidder2UnitPrice, bid.Bidder2TotalPrice,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) HasContract(contractID int) (bool, error) {
	var one int
	err := d.conn.QueryRow(`SELECT 1 FROM Contract WHERE ContractID = ?`, contractID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// BidFilter narrows the joined bid relation. District and County are
// compared against the stored casing conventions; callers should pass
// values through util.NormalizeDistrict / util.NormalizeCounty.
type BidFilter struct {
	District string
	County   string
}

// GetBidJoinRows returns the Bid joined with its Contract, the input
// relation of the aggregation engine.
func (d *DB) GetBidJoinRows(filter BidFilter) ([]internal.BidJoinRow, error) {
	query := `
SELECT
  Bid.ContractID,
  Contract.Year,
  Bid.ItemID,
  Bid.Quantity,
  Bid.Engineer_TotalPrice,
  Bid.BidderID_0_TotalPrice,
  Bid.BidderID_1_TotalPrice,
  Bid.BidderID_2_TotalPrice
FROM Bid
JOIN Contract ON Bid.ContractID = Contract.ContractID
`
	var args []any
	switch {
	case filter.District != "":
		query += `WHERE Contract.District = ?`
		args = append(args, filter.District)
	case filter.County != "":
		query += `WHERE Contract.County = ?`
		args = append(args, filter.County)
	}

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.BidJoinRow
	for rows.Next() {
		var row internal.BidJoinRow
		if err := rows.Scan(
			&row.ContractID, &row.Year, &row.ItemID, &row.Quantity,
			&row.EngineerTotalPrice,
			&row.Bidder0TotalPrice, &row.Bidder1TotalPrice, &row.Bidder2TotalPrice,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
