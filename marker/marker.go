// Package marker implements C4, the positional-marker builder: turning an
// approved assignment set into a deduplicated list of markers and one
// newline-delimited payload per content set.
package marker

import (
	"sort"

	"github.com/google/uuid"

	"github.com/tessera-sh/tessera-core/crypto"
)

// Assignment is one row of the approved assignment set the markup engine
// hands the core: a span of text in a block assigned to a content set.
type Assignment struct {
	BlockID              string
	StartOffset          *int
	EndOffset            *int
	ContentSetIdentifier string
	SelectedText         string
	PageNumber           int
}

// Marker is a single deduplicated extraction point. A marker belongs to one
// or more content sets; the base document records only marker identity,
// position and content hash, never content-set membership.
type Marker struct {
	MarkerID             string
	BlockID              string
	StartOffset          *int
	EndOffset            *int
	SequencePosition     int
	ContentHash          string
	ContentSetMembership []string
	IsMerged             bool
}

// PayloadRecord is one entry in a content set's newline-delimited payload.
type PayloadRecord struct {
	MarkerID    string
	BlockID     string
	StartOffset *int
	EndOffset   *int
	Content     string
	PageNumber  int
}

type positionalKey struct {
	blockID     string
	startOffset int
	endOffset   int
	hasStart    bool
	hasEnd      bool
}

func keyOf(a Assignment) positionalKey {
	k := positionalKey{blockID: a.BlockID}
	if a.StartOffset != nil {
		k.hasStart = true
		k.startOffset = *a.StartOffset
	}
	if a.EndOffset != nil {
		k.hasEnd = true
		k.endOffset = *a.EndOffset
	}
	return k
}

// Build runs C4's algorithm: sort deterministically, merge assignments that
// share a (block_id, start_offset, end_offset) key into one marker, and
// collect each content set's payload.
func Build(assignments []Assignment) ([]*Marker, map[string][]PayloadRecord) {
	sorted := make([]Assignment, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.BlockID != b.BlockID {
			return a.BlockID < b.BlockID
		}
		if cmp := compareOffset(a.StartOffset, b.StartOffset); cmp != 0 {
			return cmp < 0
		}
		if cmp := compareOffset(a.EndOffset, b.EndOffset); cmp != 0 {
			return cmp < 0
		}
		return a.ContentSetIdentifier < b.ContentSetIdentifier
	})

	markersByKey := make(map[positionalKey]*Marker)
	var ordered []*Marker
	payloads := make(map[string][]PayloadRecord)
	counter := 0

	for _, a := range sorted {
		key := keyOf(a)
		m, exists := markersByKey[key]
		if !exists {
			counter++
			m = &Marker{
				MarkerID:         uuid.NewString(),
				BlockID:          a.BlockID,
				StartOffset:      a.StartOffset,
				EndOffset:        a.EndOffset,
				SequencePosition: counter,
				ContentHash:      crypto.SHA512Hex([]byte(a.SelectedText)),
			}
			markersByKey[key] = m
			ordered = append(ordered, m)
		}

		if !contains(m.ContentSetMembership, a.ContentSetIdentifier) {
			m.ContentSetMembership = append(m.ContentSetMembership, a.ContentSetIdentifier)
			if len(m.ContentSetMembership) >= 2 {
				m.IsMerged = true
			}
		}

		payloads[a.ContentSetIdentifier] = append(payloads[a.ContentSetIdentifier], PayloadRecord{
			MarkerID:    m.MarkerID,
			BlockID:     a.BlockID,
			StartOffset: a.StartOffset,
			EndOffset:   a.EndOffset,
			Content:     a.SelectedText,
			PageNumber:  a.PageNumber,
		})
	}

	return ordered, payloads
}

func compareOffset(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
