package enhance

import "testing"

func TestNormalizeQuality(t *testing.T) {
	cases := map[string]Quality{
		"high":     QualityHigh,
		" ULTRA ":  QualityUltra,
		"standard": QualityStandard,
		"":         QualityStandard,
		"bogus":    QualityStandard,
	}
	for input, want := range cases {
		if got := NormalizeQuality(input); got != want {
			t.Fatalf("NormalizeQuality(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeStyle(t *testing.T) {
	cases := map[string]Style{
		"vivid":    StyleVivid,
		"Portrait": StylePortrait,
		"product":  StyleProduct,
		"":         StyleNatural,
		"sketchy":  StyleNatural,
	}
	for input, want := range cases {
		if got := NormalizeStyle(input); got != want {
			t.Fatalf("NormalizeStyle(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDisplayNames(t *testing.T) {
	if got := QualityUltra.DisplayName(); got != "Ultra" {
		t.Fatalf("QualityUltra.DisplayName() = %q", got)
	}
	if got := StyleProduct.DisplayName(); got != "Product" {
		t.Fatalf("StyleProduct.DisplayName() = %q", got)
	}
}
