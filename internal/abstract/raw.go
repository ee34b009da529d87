package abstract

import (
	"regexp"
	"strings"

	"mndotbids/internal"
)

var blankLines = regexp.MustCompile(`(?:\r?\n){2,}`)

// Split divides the raw abstract text into its contract, bid and
// bidder segments. The segments are separated by blank lines; any
// count other than three is a malformed abstract.
func Split(contractID int, text string) (internal.RawAbstract, error) {
	segments := blankLines.Split(strings.TrimSpace(text), -1)
	if len(segments) != 3 {
		return internal.RawAbstract{}, internal.Structuralf(
			"abstract %d splits into %d segments, want 3", contractID, len(segments))
	}
	return internal.RawAbstract{
		ContractID:    contractID,
		ContractBlock: segments[0],
		BidBlock:      segments[1],
		BidderBlock:   segments[2],
	}, nil
}
