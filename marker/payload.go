package marker

import (
	"encoding/json"
	"strings"

	"github.com/tessera-sh/tessera-core/tesseraerr"
)

// SerializePayload renders one content set's payload as the newline-
// delimited sequence of JSON records §4.4 specifies: one line per
// PayloadRecord, in the order Build emitted them.
func SerializePayload(records []PayloadRecord) ([]byte, *tesseraerr.Error) {
	var sb strings.Builder
	for _, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			return nil, tesseraerr.ErrDataMarshalFailure.Wrap(err)
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// ParsePayload parses a newline-delimited payload back into a map from
// marker ID to its record, the shape C7's reconstruction needs.
func ParsePayload(payload []byte) (map[string]PayloadRecord, *tesseraerr.Error) {
	result := make(map[string]PayloadRecord)
	lines := strings.Split(strings.TrimRight(string(payload), "\n"), "\n")
	for _, line := range lines {
		if line == "" {
			continue
		}
		var r PayloadRecord
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, tesseraerr.ErrDataUnmarshalFailure.Wrap(err)
		}
		result[r.MarkerID] = r
	}
	return result, nil
}
