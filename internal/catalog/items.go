package catalog

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"mndotbids/internal"
)

// LoadItemList reads one Trns*port item list CSV vintage. The item id
// is the digit concatenation of the slash-separated item number, the
// same rule the bid normalizer applies, so catalog and bid ids join
// exactly.
func LoadItemList(path string) ([]internal.ItemRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadItemList(f)
}

func ReadItemList(r io.Reader) ([]internal.ItemRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, internal.Structuralf("item list header: %v", err)
	}
	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, want := range []string{"Item Number", "Long Description", "Unit Name"} {
		if _, ok := index[want]; !ok {
			return nil, internal.Structuralf("item list missing column %q", want)
		}
	}

	var out []internal.ItemRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, internal.Structuralf("item list row: %v", err)
		}

		record, err := itemFromRow(row[index["Item Number"]], row[index["Long Description"]], row[index["Unit Name"]])
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func itemFromRow(itemNumber, description, unit string) (internal.ItemRecord, error) {
	number := strings.TrimSpace(itemNumber)
	parts := strings.Split(number, "/")
	if len(parts) != 3 {
		return internal.ItemRecord{}, &internal.FormatError{Field: "Item Number", Value: itemNumber}
	}

	specCode, unitCode, itemCode := parts[0], parts[1], parts[2]
	id, err := strconv.ParseInt(specCode+unitCode+itemCode, 10, 64)
	if err != nil {
		return internal.ItemRecord{}, &internal.FormatError{Field: "Item Number", Value: itemNumber}
	}

	return internal.ItemRecord{
		ItemID:      id,
		SpecCode:    specCode,
		UnitCode:    unitCode,
		ItemCode:    itemCode,
		Description: strings.TrimSpace(description),
		Unit:        strings.TrimSpace(unit),
	}, nil
}
