package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, r *domain.MatchResult) error {
	tw := newTabWriter(w)
	tw.writef("Query:\t%s\n", r.Query.Name)
	if !r.Found {
		tw.writef("Result:\tNOT FOUND\n")
	} else {
		c := r.Candidate
		tw.writef("Match:\t%s\n", c.Name)
		tw.writef("Retailer:\t%s\n", c.Retailer)
		tw.writef("Price:\t£%.2f\n", c.Price)
		if c.UnitPrice != nil {
			tw.writef("Unit price:\t£%.2f/%s\n", *c.UnitPrice, c.UnitBasis)
		}
		tw.writef("Confidence:\t%.3f (%s)\n", r.Score.Confidence, r.Score.Level)
		tw.writef("Similarity:\t%.3f\n", r.Score.Similarity)
		tw.writef("Strategy:\t%s\n", r.Strategy)
		tw.writef("Match type:\t%s\n", r.MatchType)
		tw.writef("Product key:\t%s\n", r.ProductKey)
		if c.URL != "" {
			tw.writef("URL:\t%s\n", c.URL)
		}
	}
	if r.FromCache {
		tw.writef("Cached:\tyes\n")
	}
	for _, issue := range r.Issues {
		tw.writef("Issue:\t%s\n", issue)
	}
	return tw.finish()
}

func printOffers(w io.Writer, r *domain.MatchResult, retailers []string) error {
	if len(r.Retailers) == 0 {
		return nil
	}
	tw := newTabWriter(w)
	tw.writef("\nRETAILER\tPRICE\tCONFIDENCE\tLISTING\n")
	for _, name := range retailers {
		o, ok := r.Retailers[name]
		if !ok {
			continue
		}
		tw.writef("%s\t£%.2f\t%.3f\t%s\n", name, o.Price, o.Confidence, o.Name)
	}
	return tw.finish()
}

func printStats(w io.Writer, st domain.CacheStats) error {
	tw := newTabWriter(w)
	tw.writef("Entries:\t%d\n", st.Entries)
	tw.writef("Expired:\t%d\n", st.Expired)
	tw.writef("Size:\t%s\n", humanBytes(st.SizeBytes))
	if !st.Oldest.IsZero() {
		tw.writef("Oldest:\t%s\n", st.Oldest.Local().Format("2006-01-02 15:04:05"))
		tw.writef("Newest:\t%s\n", st.Newest.Local().Format("2006-01-02 15:04:05"))
	}
	return tw.finish()
}

// levelSummary counts results per confidence level in display order.
func levelSummary(results []*domain.MatchResult) string {
	counts := map[domain.ConfidenceLevel]int{}
	for _, r := range results {
		counts[r.Score.Level]++
	}
	levels := []domain.ConfidenceLevel{
		domain.ConfidenceHigh,
		domain.ConfidenceMedium,
		domain.ConfidenceLow,
		domain.ConfidenceVeryLow,
		domain.ConfidenceNotFound,
	}
	parts := make([]string, 0, len(levels))
	for _, l := range levels {
		parts = append(parts, fmt.Sprintf("%s=%d", l, counts[l]))
	}
	return strings.Join(parts, " ")
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
