package normalize

import (
	"testing"

	"github.com/p24harvest/p24harvest/internal/model"
)

func TestStripArtifacts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "squared marker", in: "150 m²", want: "150 m"},
		{name: "cubed marker", in: "2 m³", want: "2 m"},
		{name: "degree and plus-minus", in: "25° ±2", want: "25 2"},
		{name: "stray accent rune", in: "caféteria", want: "cafteria"},
		{name: "no artifacts", in: "R 2 500 000", want: "R 2 500 000"},
		{name: "empty", in: "", want: ""},
		{name: "only artifacts", in: "²³°", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := StripArtifacts(tt.in); got != tt.want {
				t.Errorf("StripArtifacts(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "squared unit", in: "150 m²", want: "150 m"},
		{name: "price untouched", in: "R 2 500 000", want: "R 2 500 000"},
		{name: "whitespace collapsed", in: "  Erf\t Size :   497 m²  ", want: "Erf Size : 497 m"},
		{name: "newlines collapsed", in: "three\nbedroom\nhouse", want: "three bedroom house"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCollapseRepeats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "identical halves folded",
			in:   "Lovely family home with a pool. Lovely family home with a pool.",
			want: "Lovely family home with a pool.",
		},
		{
			name: "paragraph repeated back-to-back with extra content",
			in:   "Spacious garden flat. Spacious garden flat. Close to schools.",
			want: "Spacious garden flat. Close to schools.",
		},
		{
			name: "repeated sentence later in text",
			in:   "North-facing stand. Fibre ready. North-facing stand.",
			want: "North-facing stand. Fibre ready.",
		},
		{
			name: "order of unique sentences preserved",
			in:   "First point. Second point. Third point.",
			want: "First point. Second point. Third point.",
		},
		{
			name: "unterminated doubled text",
			in:   "sole mandate sole mandate",
			want: "sole mandate",
		},
		{
			name: "decimal points are not sentence breaks",
			in:   "Priced at 2.5 million. Priced at 2.5 million.",
			want: "Priced at 2.5 million.",
		},
		{name: "empty", in: "", want: ""},
		{name: "single sentence", in: "One owner since 1998.", want: "One owner since 1998."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CollapseRepeats(tt.in); got != tt.want {
				t.Errorf("CollapseRepeats(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestIdempotence verifies the package contract: cleaning already-clean text
// is a no-op, for every exported function.
func TestIdempotence(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"150 m²",
		"R 2 500 000",
		"Lovely family home. Lovely family home.",
		"Spacious garden flat. Spacious garden flat. Close to schools.",
		"sole mandate sole mandate",
		"aa aa",
		"A. B. A. B.",
		"  padded   text  with\nnewlines  ",
		"Ideal starter. Fibre ready. Ideal starter. Pet friendly.",
	}

	funcs := []struct {
		name string
		fn   func(string) string
	}{
		{name: "StripArtifacts", fn: StripArtifacts},
		{name: "Clean", fn: Clean},
		{name: "Description", fn: Description},
		{name: "CollapseRepeats", fn: CollapseRepeats},
	}

	for _, f := range funcs {
		for _, in := range inputs {
			once := f.fn(in)
			twice := f.fn(once)
			if once != twice {
				t.Errorf("%s not idempotent on %q: first %q, second %q", f.name, in, once, twice)
			}
		}
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("cleans every textual field", func(t *testing.T) {
		t.Parallel()

		l := model.NewListing(" https://www.property24.com/for-sale/parkhurst/johannesburg/gauteng/11021/116043214 ")
		l.Price = " R 2 500 000 "
		l.Size = "Erf Size : 497 m²"
		l.Description = "Sunny home. Sunny home."
		l.Address = " 12  Oak Ave "
		l.Province = "Gauteng²"
		l.FeatureList = []string{" Pool ", "Garden²"}
		l.SetFeature(" Bedrooms ", " 3 ")

		Apply(l)

		if l.Price != "R 2 500 000" {
			t.Errorf("price not cleaned: %q", l.Price)
		}
		if l.Size != "Erf Size : 497 m" {
			t.Errorf("size not cleaned: %q", l.Size)
		}
		if l.Description != "Sunny home." {
			t.Errorf("description not collapsed: %q", l.Description)
		}
		if l.Address != "12 Oak Ave" {
			t.Errorf("address not cleaned: %q", l.Address)
		}
		if l.Province != "Gauteng" {
			t.Errorf("province not cleaned: %q", l.Province)
		}
		if l.FeatureList[0] != "Pool" || l.FeatureList[1] != "Garden" {
			t.Errorf("feature list not cleaned: %v", l.FeatureList)
		}
		if got := l.Features["Bedrooms"]; got != "3" {
			t.Errorf("feature map not cleaned: %v", l.Features)
		}
		if l.URL != "https://www.property24.com/for-sale/parkhurst/johannesburg/gauteng/11021/116043214" {
			t.Errorf("url not trimmed: %q", l.URL)
		}
	})

	t.Run("never drops a field", func(t *testing.T) {
		t.Parallel()

		l := model.NewListing("https://example.test/x")
		Apply(l)

		if l.Price != model.MissingValue || l.ListingNo != model.MissingValue {
			t.Errorf("placeholders must survive: %+v", l)
		}
		if l.Address != model.MissingAddress {
			t.Errorf("address placeholder must survive: %q", l.Address)
		}
		if l.FeatureList == nil {
			t.Error("feature list must stay present")
		}
	})
}
