package marker

import (
	"encoding/json"

	"github.com/tessera-sh/tessera-core/tesseraerr"
)

// BaseRecord is the only shape of a marker that is ever persisted in the
// base document: identity, position, and content hash, never content-set
// membership. ContentHash is safe to carry here — it is a digest of the
// original text, not a reference to which content set holds it — and C7
// needs it to detect post-decryption tampering at marker granularity.
type BaseRecord struct {
	MarkerID         string `json:"marker_id"`
	BlockID          string `json:"block_id"`
	StartOffset      *int   `json:"start_offset"`
	EndOffset        *int   `json:"end_offset"`
	SequencePosition int    `json:"sequence_position"`
	ContentHash      string `json:"content_hash"`
}

// SerializeBase renders markers as the canonical base-document JSON array,
// leaking no content-set membership.
func SerializeBase(markers []*Marker) ([]byte, *tesseraerr.Error) {
	records := make([]BaseRecord, len(markers))
	for i, m := range markers {
		records[i] = BaseRecord{
			MarkerID:         m.MarkerID,
			BlockID:          m.BlockID,
			StartOffset:      m.StartOffset,
			EndOffset:        m.EndOffset,
			SequencePosition: m.SequencePosition,
			ContentHash:      m.ContentHash,
		}
	}
	body, err := json.Marshal(records)
	if err != nil {
		return nil, tesseraerr.ErrDataMarshalFailure.Wrap(err)
	}
	return body, nil
}

// ParseBaseRecords parses a serialized base document back into its ordered
// BaseRecord list, the shape C7's reconstruction needs.
func ParseBaseRecords(body []byte) ([]BaseRecord, *tesseraerr.Error) {
	var records []BaseRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, tesseraerr.ErrDataUnmarshalFailure.Wrap(err)
	}
	return records, nil
}
