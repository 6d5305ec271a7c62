// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA entry; ID is the first token of the header.
type Record struct {
	ID  string
	Seq []byte
}

// Reference holds whole contigs keyed by name, in file order.
type Reference struct {
	names []string
	seqs  map[string][]byte
}

// Names lists contigs in the order they were read.
func (r *Reference) Names() []string { return r.names }

// Seq returns the contig sequence (upper-cased) and whether it exists.
func (r *Reference) Seq(name string) ([]byte, bool) {
	s, ok := r.seqs[name]
	return s, ok
}

// Len returns the contig length, or -1 if unknown.
func (r *Reference) Len(name string) int {
	s, ok := r.seqs[name]
	if !ok {
		return -1
	}
	return len(s)
}

// Load reads every record of path into memory. "-" reads stdin; gzip input
// is detected by magic number or ".gz" suffix.
func Load(ctx context.Context, path string) (*Reference, error) {
	ref := &Reference{seqs: map[string][]byte{}}
	err := Stream(ctx, path, func(rec Record) error {
		if _, dup := ref.seqs[rec.ID]; dup {
			return fmt.Errorf("%s: duplicate contig %q", path, rec.ID)
		}
		ref.names = append(ref.names, rec.ID)
		ref.seqs[rec.ID] = rec.Seq
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ref, nil
}

// Stream calls fn once per record. It stops at the first error from fn, a
// read error, or context cancellation.
func Stream(ctx context.Context, path string, fn func(Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return Read(ctx, rc, fn)
}

// Read parses FASTA from r.
func Read(ctx context.Context, r io.Reader, fn func(Record) error) error {
	br := bufio.NewReaderSize(r, 1<<20)
	var (
		id  string
		buf []byte
		ln  int
	)
	flush := func() error {
		if id == "" {
			return nil
		}
		rec := Record{ID: id, Seq: bytes.Clone(buf)}
		buf = buf[:0]
		return fn(rec)
	}
	for {
		line, err := br.ReadBytes('\n')
		ln++
		if err != nil && err != io.EOF {
			return err
		}
		line = bytes.TrimRight(line, "\r\n")
		if len(line) > 0 && line[0] == '>' {
			if ferr := flush(); ferr != nil {
				return ferr
			}
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			f := strings.Fields(string(line[1:]))
			if len(f) == 0 {
				return fmt.Errorf("fasta line %d: empty header", ln)
			}
			id = f[0]
		} else if len(line) > 0 {
			if id == "" {
				return fmt.Errorf("fasta line %d: sequence before first header", ln)
			}
			buf = append(buf, bytes.ToUpper(line)...)
		}
		if err == io.EOF {
			break
		}
	}
	return flush()
}

/* ---------------- small helpers ---------------- */

// multiReadCloser closes the gzip stream and the file beneath it.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}
