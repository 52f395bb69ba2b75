package asset

import (
	"cmp"
	"slices"
	"sort"
)

// BucketKey identifies one (type, group) bucket
type BucketKey struct {
	Type  Type
	Group Group
}

// Store buckets descriptors by type and group for a single render cycle.
// A Store is not safe for concurrent use; every cycle owns its own.
type Store struct {
	buckets map[BucketKey][]Descriptor
	count   int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		buckets: make(map[BucketKey][]Descriptor),
	}
}

// Add appends d to its bucket, keeping insertion order
func (s *Store) Add(d Descriptor) {
	key := BucketKey{Type: d.Type(), Group: d.Group()}
	s.buckets[key] = append(s.buckets[key], d)
	s.count++
}

// Sorted returns a copy of the bucket ordered by priority, highest first.
// Equal priorities keep insertion order. Unknown buckets yield nil.
func (s *Store) Sorted(t Type, g Group) []Descriptor {
	bucket := s.buckets[BucketKey{Type: t, Group: g}]
	if len(bucket) == 0 {
		return nil
	}

	sorted := slices.Clone(bucket)
	slices.SortStableFunc(sorted, func(a, b Descriptor) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})
	return sorted
}

// Len returns the number of stored descriptors across all buckets
func (s *Store) Len() int {
	return s.count
}

// Buckets returns the non-empty bucket keys: known types and groups first in
// declaration order, then anything else lexically
func (s *Store) Buckets() []BucketKey {
	keys := make([]BucketKey, 0, len(s.buckets))
	for k := range s.buckets {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		ti, tj := typeRank(keys[i].Type), typeRank(keys[j].Type)
		if ti != tj {
			return ti < tj
		}
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		gi, gj := groupRank(keys[i].Group), groupRank(keys[j].Group)
		if gi != gj {
			return gi < gj
		}
		return keys[i].Group < keys[j].Group
	})
	return keys
}

func typeRank(t Type) int {
	switch t {
	case TypeCSS:
		return 0
	case TypeJS:
		return 1
	case TypeInline:
		return 2
	}
	return 3
}

func groupRank(g Group) int {
	switch g {
	case GroupHead:
		return 0
	case GroupFooter:
		return 1
	}
	return 2
}
