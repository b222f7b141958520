// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only metrics the service exports.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects problems found during validation. Errors are
// unparseable expressions; warnings are unknown metric names.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// histogramSuffixes are appended by the client library to histogram
// metric names.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Expr parses one PromQL expression and checks its selectors against
// known.
func Expr(expr string, known map[string]bool) Result {
	var res Result

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%q: %v", expr, err))
		return res
	}

	//nolint:errcheck // the visitor never returns an error
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !knownMetric(vs.Name, known) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%q: unknown metric %s", expr, vs.Name))
		}
		return nil
	})

	return res
}

func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Exprs validates each expression in turn.
func Exprs(exprs []string, known map[string]bool) Result {
	var res Result
	for _, e := range exprs {
		res.merge(Expr(e, known))
	}
	return res
}

// Dashboard validates every query target of a built dashboard. The
// dashboard is walked through its JSON form so any panel type is covered.
func Dashboard(dash any, known map[string]bool) Result {
	data, err := json.Marshal(dash)
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("marshaling dashboard: %v", err)}}
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return Result{Errors: []string{fmt.Sprintf("decoding dashboard: %v", err)}}
	}

	var exprs []string
	collectExprs(tree, &exprs)
	if len(exprs) == 0 {
		return Result{Errors: []string{"dashboard has no query expressions"}}
	}
	return Exprs(exprs, known)
}

func collectExprs(v any, out *[]string) {
	switch t := v.(type) {
	case map[string]any:
		if e, ok := t["expr"].(string); ok && e != "" {
			*out = append(*out, e)
		}
		for _, child := range t {
			collectExprs(child, out)
		}
	case []any:
		for _, child := range t {
			collectExprs(child, out)
		}
	}
}
