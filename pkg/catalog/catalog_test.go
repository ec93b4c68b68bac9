package catalog

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/forgeboard/pkg/errors"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

func TestBuiltinEntriesAreWellFormed(t *testing.T) {
	reg := Builtin()
	if reg.Len() != 21 {
		t.Fatalf("Builtin().Len() = %d, want 21", reg.Len())
	}
	for _, e := range reg.Entries() {
		if err := errors.ValidateWidgetKey(e.Key); err != nil {
			t.Errorf("%s: %v", e.Key, err)
		}
		if e.Title == "" || e.Description == "" {
			t.Errorf("%s: missing title or description", e.Key)
		}
		for _, tr := range []tier.Tier{tier.XS, tier.Small, tier.Medium, tier.Large} {
			if e.Describe(tr) == "" {
				t.Errorf("%s: no description for %s", e.Key, tr)
			}
		}
	}
}

func TestBuiltinDefaults(t *testing.T) {
	reg := Builtin()
	tests := []struct {
		key  string
		want tier.Tier
	}{
		{"stats_value", tier.XS},
		{"identity", tier.Small},
		{"community", tier.Medium},
		{"recent_decks", tier.Large},
		{"action_log", tier.Small},
		{"no_such_widget", tier.Small},
	}
	for _, tt := range tests {
		if got := reg.DefaultTier(tt.key); got != tt.want {
			t.Errorf("DefaultTier(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestNewDropsDuplicatesAndFixesTiers(t *testing.T) {
	reg := New([]Entry{
		{Key: "a", Title: "A", DefaultTier: tier.Large},
		{Key: "a", Title: "A again"},
		{Key: "", Title: "nameless"},
		{Key: "b", Title: "B", DefaultTier: tier.Tier(99)},
	})
	if got := reg.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Keys() = %v, want [a b]", got)
	}
	if e, _ := reg.Lookup("a"); e.Title != "A" {
		t.Errorf("Lookup(a).Title = %q, want first entry", e.Title)
	}
	if got := reg.DefaultTier("b"); got != tier.Small {
		t.Errorf("DefaultTier(b) = %v, want small", got)
	}
}

func TestRendererLookup(t *testing.T) {
	custom := RenderFunc(func(data, _ any, size tier.Tier) string {
		return "custom:" + size.String()
	})
	reg := Builtin(WithRenderer("tips", custom), WithRenderer("bogus", custom))

	r, ok := reg.Renderer("tips")
	if !ok {
		t.Fatal("Renderer(tips) not found")
	}
	if got := r.Render(nil, nil, tier.Medium); got != "custom:medium" {
		t.Errorf("Render() = %q, want custom:medium", got)
	}

	r, ok = reg.Renderer("recent_decks")
	if !ok {
		t.Fatal("Renderer(recent_decks) not found")
	}
	got := r.Render(nil, nil, tier.XLarge)
	if !strings.HasPrefix(got, "Recent Decks") || !strings.Contains(got, "Full chronological deck feed.") {
		t.Errorf("placeholder Render() = %q", got)
	}

	if _, ok := reg.Renderer("bogus"); ok {
		t.Error("Renderer(bogus) should not be found")
	}
}

func TestFilter(t *testing.T) {
	reg := New([]Entry{{Key: "a"}, {Key: "b"}, {Key: "c"}})
	got := reg.Filter([]string{"c", "x", "a", "c", "y", "b"})
	if want := []string{"c", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
	if got := reg.Filter(nil); len(got) != 0 {
		t.Errorf("Filter(nil) = %v, want empty", got)
	}
}

func TestAvailable(t *testing.T) {
	reg := New([]Entry{{Key: "a"}, {Key: "b"}, {Key: "c"}})
	if got := reg.Available([]string{"b"}); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Available([b]) = %v, want [a c]", got)
	}
	if got := reg.Available([]string{"a", "b", "c"}); len(got) != 0 {
		t.Errorf("Available(all) = %v, want empty", got)
	}
}

func TestSearch(t *testing.T) {
	reg := Builtin()
	got := reg.Search("DECK")
	if len(got) == 0 {
		t.Fatal("Search(DECK) returned nothing")
	}
	for _, e := range got {
		hay := strings.ToLower(e.Key + e.Title + e.Description)
		if !strings.Contains(hay, "deck") {
			t.Errorf("Search(DECK) returned %s", e.Key)
		}
	}
	if n := len(reg.Search("  ")); n != reg.Len() {
		t.Errorf("Search(blank) = %d entries, want %d", n, reg.Len())
	}
}

func TestEntryJSON(t *testing.T) {
	e, _ := Builtin().Lookup("system_status")
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"key":"system_status"`, `"default_size":"small"`, `"xs":"Simple status dot."`} {
		if !strings.Contains(s, want) {
			t.Errorf("Marshal = %s, missing %s", s, want)
		}
	}
}
