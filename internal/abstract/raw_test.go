package abstract

import (
	"errors"
	"testing"

	"mndotbids/internal"
)

func TestSplit(t *testing.T) {
	text := "Contract Id,Letting Date\r\n200131,04/17/2020\r\n\r\n" +
		"ItemNumber,Quantity\r\n2105/501/20,1000\r\n\r\n" +
		"Bidder Number,Bidder Name\r\n12345,ACME\r\n"

	raw, err := Split(200131, text)
	if err != nil {
		t.Fatal(err)
	}
	if raw.ContractID != 200131 {
		t.Fatalf("contract id: %d", raw.ContractID)
	}
	if raw.ContractBlock != "Contract Id,Letting Date\r\n200131,04/17/2020" {
		t.Fatalf("contract block: %q", raw.ContractBlock)
	}
	if raw.BidBlock != "ItemNumber,Quantity\r\n2105/501/20,1000" {
		t.Fatalf("bid block: %q", raw.BidBlock)
	}
	if raw.BidderBlock != "Bidder Number,Bidder Name\r\n12345,ACME" {
		t.Fatalf("bidder block: %q", raw.BidderBlock)
	}
}

func TestSplitMultipleBlankLines(t *testing.T) {
	text := "a,b\n1,2\n\n\n\nc,d\n3,4\n\n\ne,f\n5,6"
	raw, err := Split(1, text)
	if err != nil {
		t.Fatal(err)
	}
	if raw.BidBlock != "c,d\n3,4" {
		t.Fatalf("bid block: %q", raw.BidBlock)
	}
}

func TestSplitWrongSegmentCount(t *testing.T) {
	for _, text := range []string{
		"only,one\nsegment,here",
		"a\n\nb",
		"a\n\nb\n\nc\n\nd",
	} {
		_, err := Split(1, text)
		var structuralErr *internal.StructuralParseError
		if !errors.As(err, &structuralErr) {
			t.Fatalf("Split(%q) err=%v, want StructuralParseError", text, err)
		}
	}
}
