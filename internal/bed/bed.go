// internal/bed/bed.go
package bed

import (
	"errors"
	"fmt"
	"os"
	"sort"

	gbed "github.com/vertgenlab/gonomics/bed"
)

// Interval is a 0-based half-open span.
type Interval struct {
	Start, End int
}

// Regions is a set of intervals per contig, merged and sorted.
type Regions struct {
	byChrom map[string][]Interval
}

// Load reads a BED file (gzip by .gz suffix).
func Load(path string) (r *Regions, err error) {
	if path == "-" {
		return nil, errors.New("BED input cannot be read from stdin")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	// gonomics reports malformed lines by panicking.
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("%s: %v", path, p)
		}
	}()
	r, err = FromBeds(gbed.Read(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// FromBeds merges parsed BED records per contig.
func FromBeds(beds []gbed.Bed) (*Regions, error) {
	out := &Regions{byChrom: map[string][]Interval{}}
	for i, b := range beds {
		if b.ChromStart < 0 || b.ChromEnd < b.ChromStart {
			return nil, fmt.Errorf("record %d: bad interval %s:%d-%d", i+1, b.Chrom, b.ChromStart, b.ChromEnd)
		}
		out.byChrom[b.Chrom] = append(out.byChrom[b.Chrom], Interval{b.ChromStart, b.ChromEnd})
	}
	for c, iv := range out.byChrom {
		out.byChrom[c] = merge(iv)
	}
	return out, nil
}

func merge(iv []Interval) []Interval {
	sort.Slice(iv, func(i, j int) bool { return iv[i].Start < iv[j].Start })
	out := iv[:0]
	for _, x := range iv {
		if n := len(out); n > 0 && x.Start <= out[n-1].End {
			if x.End > out[n-1].End {
				out[n-1].End = x.End
			}
			continue
		}
		out = append(out, x)
	}
	return out
}

// Overlaps reports whether [start,end) touches any interval on chrom. A
// zero-length span (an insertion point) counts when it lies inside or on the
// boundary of an interval.
func (r *Regions) Overlaps(chrom string, start, end int) bool {
	iv := r.byChrom[chrom]
	i := sort.Search(len(iv), func(i int) bool { return iv[i].End >= start })
	if i == len(iv) {
		return false
	}
	if end == start {
		return iv[i].Start <= start
	}
	if iv[i].End == start {
		i++
		if i == len(iv) {
			return false
		}
	}
	return iv[i].Start < end
}

// Len counts merged intervals.
func (r *Regions) Len() int {
	n := 0
	for _, iv := range r.byChrom {
		n += len(iv)
	}
	return n
}
