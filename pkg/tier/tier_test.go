package tier

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/forgeboard/pkg/errors"
)

func TestTableIsTotal(t *testing.T) {
	seen := make(map[Span]Tier)
	for _, tr := range All {
		if !tr.Valid() {
			t.Fatalf("%d: Valid() = false", tr)
		}
		sp := tr.Span()
		if sp.Cols <= 0 || sp.Cols > Columns || sp.Rows <= 0 {
			t.Errorf("%s: Span() = %+v, out of grid", tr, sp)
		}
		if prev, dup := seen[sp]; dup {
			t.Errorf("%s and %s share span %+v", prev, tr, sp)
		}
		seen[sp] = tr
		if tr.Hint().MinHeightPx <= 0 {
			t.Errorf("%s: Hint().MinHeightPx = %d, want > 0", tr, tr.Hint().MinHeightPx)
		}
	}
}

func TestSpansGrowWithTier(t *testing.T) {
	for i := 1; i < len(All); i++ {
		prev, cur := All[i-1].Span(), All[i].Span()
		if cur.Cols*cur.Rows <= prev.Cols*prev.Rows {
			t.Errorf("%s area %d not larger than %s area %d",
				All[i], cur.Cols*cur.Rows, All[i-1], prev.Cols*prev.Rows)
		}
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		in   Tier
		want Tier
	}{
		{XS, Small},
		{Small, Medium},
		{Medium, Large},
		{Large, XLarge},
		{XLarge, XS},
		{Tier(42), XS},
	}
	for _, tt := range tests {
		if got := tt.in.Next(); got != tt.want {
			t.Errorf("%v.Next() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNextFullCycle(t *testing.T) {
	tr := Medium
	for i := 0; i < len(All); i++ {
		tr = tr.Next()
	}
	if tr != Medium {
		t.Errorf("five Next() calls from medium = %v, want medium", tr)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"xs", XS, false},
		{"small", Small, false},
		{"medium", Medium, false},
		{"large", Large, false},
		{"xlarge", XLarge, false},
		{"  LARGE ", Large, false},
		{"huge", XS, true},
		{"", XS, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidTier) {
				t.Errorf("Parse(%q) code = %v, want %v", tt.in, errors.GetCode(err), errors.ErrCodeInvalidTier)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, tr := range All {
		got, err := Parse(tr.String())
		if err != nil || got != tr {
			t.Errorf("Parse(%q) = %v, %v; want %v", tr.String(), got, err, tr)
		}
	}
	if got := Tier(-1).String(); got != "unknown" {
		t.Errorf("Tier(-1).String() = %q, want unknown", got)
	}
}

func TestJSONMapKeysAndValues(t *testing.T) {
	in := map[string]Tier{"recent_decks": Large, "tips": XS}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"recent_decks":"large","tips":"xs"}` {
		t.Errorf("Marshal = %s", data)
	}

	var out map[string]Tier
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out["recent_decks"] != Large || out["tips"] != XS {
		t.Errorf("Unmarshal = %v", out)
	}

	if err := json.Unmarshal([]byte(`{"tips":"huge"}`), &out); err == nil {
		t.Error("Unmarshal of unknown tier should fail")
	}
}

func TestLenient(t *testing.T) {
	got := Lenient(json.RawMessage(`{"a":"large","b":"huge","c":3,"d":"XS"}`))
	if len(got) != 2 || got["a"] != Large || got["d"] != XS {
		t.Errorf("Lenient() = %v, want map[a:large d:xs]", got)
	}
	if got := Lenient(nil); len(got) != 0 {
		t.Errorf("Lenient(nil) = %v, want empty", got)
	}
	if got := Lenient(json.RawMessage(`[1,2]`)); len(got) != 0 {
		t.Errorf("Lenient(array) = %v, want empty", got)
	}
}
