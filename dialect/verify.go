package dialect

import (
	"context"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/nilsimda/topturnier/extract"
	"github.com/nilsimda/topturnier/models"
)

// Verification is the outcome of sending one page through extraction and
// generation and comparing canonical forms.
type Verification struct {
	Dialect     Dialect
	Page        models.Page
	Diagnostics []extract.Diagnostic
	Original    string
	Regenerated string
	Equal       bool
	// Diff is a unified diff of the canonical forms, empty when Equal.
	Diff string
}

// Verify extracts raw, generates it again and compares both under
// canonicalization. A mismatch is reported in the result, not as an error;
// errors mean the page could not be processed at all.
func Verify(ctx context.Context, d Dialect, raw string, diags *extract.Diagnostics) (Verification, error) {
	v := Verification{Dialect: d}

	original, err := Canonicalize(d, raw)
	if err != nil {
		return v, fmt.Errorf("failed to canonicalize original %s: %w", d, err)
	}
	v.Original = original

	if diags == nil {
		diags = extract.NewDiagnostics(nil)
	}
	page, err := Extract(d, raw, diags)
	if err != nil {
		return v, err
	}
	v.Page = page
	v.Diagnostics = diags.Entries()

	generated, err := Generate(ctx, d, page)
	if err != nil {
		return v, fmt.Errorf("failed to generate %s: %w", d, err)
	}
	regenerated, err := Canonicalize(d, generated)
	if err != nil {
		return v, fmt.Errorf("failed to canonicalize regenerated %s: %w", d, err)
	}
	v.Regenerated = regenerated

	v.Equal = original == regenerated
	if !v.Equal {
		v.Diff, err = difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(original),
			B:        difflib.SplitLines(regenerated),
			FromFile: "original",
			ToFile:   "regenerated",
			Context:  3,
		})
		if err != nil {
			return v, fmt.Errorf("failed to diff %s: %w", d, err)
		}
	}
	return v, nil
}
