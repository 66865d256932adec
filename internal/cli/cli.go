// Package cli implements the interactive terminal loop: list the loaded
// records, prompt for two of them, diff every facet pair and render the
// result, until the user quits.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ryanjanoconnell/httpdiff/internal/cache"
	"github.com/ryanjanoconnell/httpdiff/internal/capture"
	"github.com/ryanjanoconnell/httpdiff/internal/compare"
	"github.com/ryanjanoconnell/httpdiff/internal/extract"
	"github.com/ryanjanoconnell/httpdiff/internal/render"
)

// Session holds the state of one interactive run. All terminal I/O goes
// through the single Run loop, so prompts and output never interleave.
type Session struct {
	records  []capture.Record
	opts     extract.Options
	in       *bufio.Scanner
	out      io.Writer
	renderer *render.Renderer
}

// New creates a session over the given records. bodies may be nil to
// disable body caching.
func New(records []capture.Record, bodies *cache.BodyCache, maxBodyBytes int, in io.Reader, out io.Writer) *Session {
	return &Session{
		records:  records,
		opts:     extract.Options{Bodies: bodies, MaxBodyBytes: maxBodyBytes},
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: render.New(out),
	}
}

// Run drives the loop until EOF, a quit command, or context cancellation.
func (s *Session) Run(ctx context.Context) error {
	s.listRecords()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		first, ok := s.prompt("first record> ")
		if !ok {
			return nil
		}
		second, ok := s.prompt("second record> ")
		if !ok {
			return nil
		}

		if err := s.compare(first, second); err != nil {
			fmt.Fprintf(s.out, "compare failed: %v\n", err)
			slog.Warn("compare failed", "first", first, "second", second, "error", err)
		}
	}
}

func (s *Session) listRecords() {
	for i, rec := range s.records {
		status := "-"
		if code, ok := rec.Status(); ok {
			status = strconv.Itoa(code)
		}
		fmt.Fprintf(s.out, "[%d] %s %s -> %s\n", i, rec.Request.Method, rec.Request.URL, status)
	}
}

// prompt reads one record index. Returns false when the user quits or
// input is exhausted.
func (s *Session) prompt(label string) (int, bool) {
	for {
		fmt.Fprint(s.out, label)
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return 0, false
		}

		line := strings.TrimSpace(s.in.Text())
		switch line {
		case "q", "quit", "exit":
			return 0, false
		case "l", "list":
			s.listRecords()
			continue
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || n >= len(s.records) {
			fmt.Fprintf(s.out, "enter a record number between 0 and %d, l to relist, or q to quit\n", len(s.records)-1)
			continue
		}
		return n, true
	}
}

func (s *Session) compare(first, second int) error {
	facets, err := extract.Facets(s.records[first], s.records[second], s.opts)
	if err != nil {
		return err
	}

	changed := false
	for _, f := range facets {
		ps := compare.Diff(f.A, f.B)
		if ps.Empty() {
			continue
		}
		changed = true
		s.renderer.Facet(f.Name, ps)
	}
	if !changed {
		fmt.Fprintf(s.out, "records %d and %d are identical across all facets\n", first, second)
	}
	return nil
}
