package facultysearch

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(nil)

	got := n.Normalize("The Whales and the SHIP!")
	want := []string{stem("whales"), stem("ship")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize=%#v; want %#v", got, want)
	}

	if got := n.Normalize("the and of"); len(got) != 0 {
		t.Fatalf("stopword-only text should normalize to nothing; got %#v", got)
	}
}

func TestNormalizeSameForms(t *testing.T) {
	n := NewNormalizer(nil)
	a := n.Normalize("Researching ecology")
	b := n.Normalize("research ECOLOGY")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("inflected forms should normalize alike: %#v vs %#v", a, b)
	}
}

func TestNormalizeCustomStopwords(t *testing.T) {
	n := NewNormalizer(map[string]struct{}{"professor": {}})
	got := n.NormalizeJoined("Professor of biology")
	if got != stem("of")+" "+stem("biology") {
		t.Fatalf("NormalizeJoined=%q", got)
	}
}

func TestDefaultStopwordsFresh(t *testing.T) {
	a := DefaultStopwords()
	a["faculty"] = struct{}{}
	if _, shared := DefaultStopwords()["faculty"]; shared {
		t.Fatalf("DefaultStopwords should return a new map on every call")
	}
	for _, w := range []string{"the", "which", "between"} {
		if _, ok := a[w]; !ok {
			t.Fatalf("DefaultStopwords missing %q", w)
		}
	}
}
