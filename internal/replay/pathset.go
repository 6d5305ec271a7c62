package replay

import (
	"bytes"
	"encoding/binary"

	"github.com/zeebo/wyhash"
)

// fingerprint encodes everything that determines a path's possible futures:
// reach and cursor per side plus the uncompared overhang per haplotype. Two
// paths with equal fingerprints can be completed by exactly the same moves.
func fingerprint(p Path) []byte {
	n := 4*binary.MaxVarintLen64 + 2*(1+binary.MaxVarintLen64) + len(p.tails[0].seq) + len(p.tails[1].seq)
	buf := make([]byte, 0, n)
	buf = binary.AppendUvarint(buf, uint64(p.base.reach))
	buf = binary.AppendUvarint(buf, uint64(p.base.next))
	buf = binary.AppendUvarint(buf, uint64(p.query.reach))
	buf = binary.AppendUvarint(buf, uint64(p.query.next))
	for _, t := range p.tails {
		if len(t.seq) == 0 {
			buf = append(buf, 0xff)
			continue
		}
		buf = append(buf, byte(t.side))
		buf = binary.AppendUvarint(buf, uint64(len(t.seq)))
		buf = append(buf, t.seq...)
	}
	return buf
}

type slot struct {
	key    []byte
	path   Path
	queued bool
}

// PathSet is the deduplicated frontier of one region's search. It keeps at
// most one path per fingerprint, the best one offered so far, and remembers
// fingerprints after expansion so reconverging branches are not re-explored.
//
// A PathSet belongs to a single search and is not safe for concurrent use.
type PathSet struct {
	buckets map[uint64][]*slot
	queue   []*slot
	size    int
}

// NewPathSet returns an empty set.
func NewPathSet() *PathSet {
	return &PathSet{buckets: make(map[uint64][]*slot, 1<<10)}
}

// Offer stores p unless a path with the same fingerprint and an equal or
// better score is already held. An accepted path is queued for expansion,
// including when it displaces a path that was already expanded.
func (s *PathSet) Offer(p Path) bool {
	key := fingerprint(p)
	h := wyhash.Hash(key, 0)
	for _, sl := range s.buckets[h] {
		if !bytes.Equal(sl.key, key) {
			continue
		}
		if !p.Score().Better(sl.path.Score()) {
			return false
		}
		sl.path = p
		if !sl.queued {
			sl.queued = true
			s.queue = append(s.queue, sl)
		}
		return true
	}
	sl := &slot{key: key, path: p, queued: true}
	s.buckets[h] = append(s.buckets[h], sl)
	s.queue = append(s.queue, sl)
	s.size++
	return true
}

// Frontier returns the queued paths in the order they were first queued and
// empties the queue.
func (s *PathSet) Frontier() []Path {
	out := make([]Path, len(s.queue))
	for i, sl := range s.queue {
		out[i] = sl.path
		sl.queued = false
	}
	s.queue = s.queue[:0]
	return out
}

// Pending is the number of queued paths.
func (s *PathSet) Pending() int { return len(s.queue) }

// Len is the number of distinct fingerprints ever accepted.
func (s *PathSet) Len() int { return s.size }
