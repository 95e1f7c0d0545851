package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestBuild_MergesIdenticalPositionalKeys(t *testing.T) {
	assignments := []Assignment{
		{BlockID: "b1", StartOffset: intPtr(0), EndOffset: intPtr(10), ContentSetIdentifier: "CS-PUBLIC", SelectedText: "Public statement."},
		{BlockID: "b1", StartOffset: intPtr(0), EndOffset: intPtr(10), ContentSetIdentifier: "CS-CONFIDENTIAL", SelectedText: "Public statement."},
		{BlockID: "b1", StartOffset: intPtr(20), EndOffset: intPtr(30), ContentSetIdentifier: "CS-CONFIDENTIAL", SelectedText: "Secret clause."},
	}

	markers, payloads := Build(assignments)
	require.Len(t, markers, 2)

	first := markers[0]
	assert.ElementsMatch(t, []string{"CS-PUBLIC", "CS-CONFIDENTIAL"}, first.ContentSetMembership)
	assert.True(t, first.IsMerged)

	second := markers[1]
	assert.Equal(t, []string{"CS-CONFIDENTIAL"}, second.ContentSetMembership)
	assert.False(t, second.IsMerged)

	assert.Len(t, payloads["CS-PUBLIC"], 1)
	assert.Len(t, payloads["CS-CONFIDENTIAL"], 2)
}

func TestBuild_DeterministicSequencePosition(t *testing.T) {
	assignments := []Assignment{
		{BlockID: "b2", StartOffset: intPtr(5), EndOffset: intPtr(8), ContentSetIdentifier: "CS-PUBLIC", SelectedText: "x"},
		{BlockID: "b1", StartOffset: intPtr(0), EndOffset: intPtr(1), ContentSetIdentifier: "CS-PUBLIC", SelectedText: "y"},
	}

	markers, _ := Build(assignments)
	require.Len(t, markers, 2)
	assert.Equal(t, "b1", markers[0].BlockID)
	assert.Equal(t, 1, markers[0].SequencePosition)
	assert.Equal(t, "b2", markers[1].BlockID)
	assert.Equal(t, 2, markers[1].SequencePosition)
}

func TestSerializePayload_RoundTrip(t *testing.T) {
	assignments := []Assignment{
		{BlockID: "b1", StartOffset: intPtr(0), EndOffset: intPtr(4), ContentSetIdentifier: "CS-PUBLIC", SelectedText: "text"},
	}
	_, payloads := Build(assignments)

	body, err := SerializePayload(payloads["CS-PUBLIC"])
	require.Nil(t, err)

	parsed, perr := ParsePayload(body)
	require.Nil(t, perr)
	require.Len(t, parsed, 1)
}

func TestSerializeBase_OmitsContentSetMembership(t *testing.T) {
	assignments := []Assignment{
		{BlockID: "b1", StartOffset: intPtr(0), EndOffset: intPtr(4), ContentSetIdentifier: "CS-CONFIDENTIAL", SelectedText: "secret"},
	}
	markers, _ := Build(assignments)

	body, err := SerializeBase(markers)
	require.Nil(t, err)
	assert.NotContains(t, string(body), "CS-CONFIDENTIAL")
	assert.Contains(t, string(body), "sequence_position")
}

func TestParseBaseRecords_RoundTrip(t *testing.T) {
	assignments := []Assignment{
		{BlockID: "b1", StartOffset: intPtr(0), EndOffset: intPtr(4), ContentSetIdentifier: "CS-PUBLIC", SelectedText: "text"},
	}
	markers, _ := Build(assignments)

	body, err := SerializeBase(markers)
	require.Nil(t, err)

	records, perr := ParseBaseRecords(body)
	require.Nil(t, perr)
	require.Len(t, records, 1)
	assert.Equal(t, markers[0].MarkerID, records[0].MarkerID)
	assert.Equal(t, markers[0].ContentHash, records[0].ContentHash)
}
