// Package report reads product lists and writes match results as CSV and
// SQLite, the formats batch and scheduled runs exchange with spreadsheets.
package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// ErrNoProducts is returned when a products file has no usable rows.
var ErrNoProducts = errors.New("no products found")

// Header names recognized for each input column, compared after folding
// case and treating spaces and underscores alike.
var (
	nameHeaders     = []string{"product_name", "product", "name", "description", "item"}
	idHeaders       = []string{"id", "product_id", "sku", "code"}
	quantityHeaders = []string{"quantity", "qty", "pack_quantity", "pack_size"}
)

// ReadQueries parses a products CSV. The first row is a header; the product
// name column is detected by header and falls back to the first column. Rows
// without an id column are numbered from 1.
func ReadQueries(r io.Reader) ([]domain.Query, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoProducts
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	nameCol := findColumn(header, nameHeaders)
	if nameCol < 0 {
		nameCol = 0
	}
	idCol := findColumn(header, idHeaders)
	qtyCol := findColumn(header, quantityHeaders)

	var queries []domain.Query
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row, err)
		}

		name := strings.TrimSpace(field(rec, nameCol))
		if name == "" {
			continue
		}

		q := domain.Query{ID: strings.TrimSpace(field(rec, idCol)), Name: name}
		if q.ID == "" {
			q.ID = strconv.Itoa(row)
		}
		if v := strings.TrimSpace(field(rec, qtyCol)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("row %d: invalid quantity %q", row, v)
			}
			q.Quantity = n
		}
		queries = append(queries, q)
	}

	if len(queries) == 0 {
		return nil, ErrNoProducts
	}
	return queries, nil
}

func findColumn(header, candidates []string) int {
	for _, want := range candidates {
		for i, h := range header {
			if headerKey(h) == want {
				return i
			}
		}
	}
	return -1
}

func headerKey(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.ReplaceAll(h, " ", "_")
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// FileLoader loads queries from a products CSV on every call, so edits to the
// file are picked up by the next scheduled run.
type FileLoader struct {
	Path string
}

// LoadQueries implements engine.QueryLoader.
func (l FileLoader) LoadQueries(_ context.Context) ([]domain.Query, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("opening products file: %w", err)
	}
	defer f.Close()

	qs, err := ReadQueries(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.Path, err)
	}
	return qs, nil
}

// Writer renders results as CSV rows with one price and confidence column
// per retailer.
type Writer struct {
	w         *csv.Writer
	retailers []string
	wroteHdr  bool
}

// NewWriter creates a Writer with a column pair for each retailer, in order.
func NewWriter(w io.Writer, retailers []string) *Writer {
	return &Writer{w: csv.NewWriter(w), retailers: retailers}
}

var baseColumns = []string{
	"ID",
	"Product_Name",
	"Found",
	"Confidence_Level",
	"Confidence_Score",
	"Similarity_Score",
	"Best_Retailer",
	"Matched_Product",
	"Best_Price",
	"Product_URL",
	"Match_Type",
	"Strategy",
	"Product_Key",
}

// Header returns the column names Write produces.
func (w *Writer) Header() []string {
	cols := append([]string(nil), baseColumns...)
	for _, r := range w.retailers {
		label := retailerLabel(r)
		cols = append(cols, label+"_Price", label+"_Confidence")
	}
	return append(cols, "Issues")
}

// Write appends one result row, writing the header first if needed.
func (w *Writer) Write(r *domain.MatchResult) error {
	if !w.wroteHdr {
		if err := w.w.Write(w.Header()); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		w.wroteHdr = true
	}
	if err := w.w.Write(w.row(r)); err != nil {
		return fmt.Errorf("writing row for %q: %w", r.Query.Name, err)
	}
	return nil
}

// Flush writes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	if !w.wroteHdr {
		if err := w.w.Write(w.Header()); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		w.wroteHdr = true
	}
	w.w.Flush()
	return w.w.Error()
}

func (w *Writer) row(r *domain.MatchResult) []string {
	found := "No"
	bestRetailer, matched, url := "None", "None", "None"
	bestPrice := 0.0
	if r.Found && r.Candidate != nil {
		found = "Yes"
		bestRetailer = r.Candidate.Retailer
		matched = r.Candidate.Name
		bestPrice = r.Candidate.Price
		if r.Candidate.URL != "" {
			url = r.Candidate.URL
		}
	}

	rec := []string{
		r.Query.ID,
		r.Query.Name,
		found,
		string(r.Score.Level),
		formatScore(r.Score.Confidence),
		formatScore(r.Score.Similarity),
		bestRetailer,
		matched,
		formatPrice(bestPrice),
		url,
		r.MatchType,
		string(r.Strategy),
		r.ProductKey,
	}
	for _, name := range w.retailers {
		offer, ok := r.Retailers[name]
		if !ok {
			rec = append(rec, formatPrice(0), formatScore(0))
			continue
		}
		rec = append(rec, formatPrice(offer.Price), formatScore(offer.Confidence))
	}
	return append(rec, strings.Join(r.Issues, "; "))
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// retailerLabel turns a retailer id such as "sainsburys" into a column
// prefix such as "Sainsburys".
func retailerLabel(name string) string {
	title := cases.Title(language.BritishEnglish).String(strings.ReplaceAll(name, "_", " "))
	return strings.ReplaceAll(title, " ", "_")
}

// WriteFile writes results to path, creating parent directories.
func WriteFile(path string, retailers []string, results []*domain.MatchResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path) //nolint:gosec // output path from trusted config
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	w := NewWriter(f, retailers)
	for _, r := range results {
		if err := w.Write(r); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing output file: %w", err)
	}
	return f.Close()
}

// CSVSink writes each run's results to a CSV file, replacing the previous
// run's file.
type CSVSink struct {
	Path      string
	Retailers []string
}

// SaveResults implements engine.ResultSink.
func (s CSVSink) SaveResults(_ context.Context, _ uuid.UUID, results []*domain.MatchResult) error {
	return WriteFile(s.Path, s.Retailers, results)
}
