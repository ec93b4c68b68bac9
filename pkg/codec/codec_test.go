package codec

import (
	"encoding/base64"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/forgeboard/pkg/catalog"
	"github.com/matzehuels/forgeboard/pkg/errors"
	"github.com/matzehuels/forgeboard/pkg/layout"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

func testCatalog(keys ...string) *catalog.Registry {
	entries := make([]catalog.Entry, len(keys))
	for i, k := range keys {
		entries[i] = catalog.Entry{Key: k, Title: k, DefaultTier: tier.Small}
	}
	return catalog.New(entries)
}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestRoundTrip(t *testing.T) {
	cat := testCatalog("a", "b", "c")
	tests := []struct {
		name  string
		order []string
		tiers layout.Tiers
		want  []string
	}{
		{"known only", []string{"a", "b"}, layout.Tiers{"a": tier.Large}, []string{"a", "b"}},
		{"unknown filtered", []string{"zz", "c", "a"}, layout.Tiers{"c": tier.XLarge, "zz": tier.XS}, []string{"c", "a"}},
		{"empty", nil, nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := Encode(tt.order, tt.tiers)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !strings.HasPrefix(token, Marker) {
				t.Errorf("token %q does not start with %q", token, Marker)
			}
			got, err := Decode(token, cat)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(got.Order, tt.want) {
				t.Errorf("Order = %v, want %v", got.Order, tt.want)
			}
			if !reflect.DeepEqual(got.Tiers, tt.tiers.Clone()) {
				t.Errorf("Tiers = %v, want %v", got.Tiers, tt.tiers)
			}
			if got.Version != Version {
				t.Errorf("Version = %d, want %d", got.Version, Version)
			}
		})
	}
}

func TestImportScenario(t *testing.T) {
	cat := testCatalog("x")
	got, err := Decode(b64(`{"l":["x","y"],"s":{"x":"large","y":"xs","z":"small"}}`), cat)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got.Order, []string{"x"}) {
		t.Errorf("Order = %v, want [x]", got.Order)
	}
	if !reflect.DeepEqual(got.Tiers, layout.Tiers{"x": tier.Large}) {
		t.Errorf("Tiers = %v, want {x: large}", got.Tiers)
	}
	if !reflect.DeepEqual(got.Dropped, []string{"y"}) {
		t.Errorf("Dropped = %v, want [y]", got.Dropped)
	}
}

func TestDecodeAcceptedForms(t *testing.T) {
	cat := testCatalog("a", "b")
	body := `{"l":["a","b"],"s":{"b":"xs"}}`
	tests := []struct {
		name  string
		token string
	}{
		{"standard", b64(body)},
		{"whitespace", "  \n" + b64(body) + "\t"},
		{"url alphabet", base64.URLEncoding.EncodeToString([]byte(body))},
		{"no padding", base64.RawStdEncoding.EncodeToString([]byte(body))},
		{"raw json", body},
		{"aliases", b64(`{"layout":["a","b"],"widgetSizes":{"b":"xs"}}`)},
		{"stored grid shape", b64(`{"layout":{"grid":["a","b"]},"widgetSizes":{"b":"xs"}}`)},
		{"older version", b64(`{"v":0,"l":["a","b"],"s":{"b":"xs"}}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.token, cat)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(got.Order, []string{"a", "b"}) || got.Tiers["b"] != tier.XS {
				t.Errorf("Decode = %+v", got)
			}
		})
	}
}

func TestDecodeLenientTiers(t *testing.T) {
	cat := testCatalog("a", "b")
	got, err := Decode(b64(`{"l":["a","b","a"],"s":{"a":"huge","b":"MEDIUM","c":3}}`), cat)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got.Order, []string{"a", "b"}) {
		t.Errorf("Order = %v, want deduplicated [a b]", got.Order)
	}
	if !reflect.DeepEqual(got.Tiers, layout.Tiers{"b": tier.Medium}) {
		t.Errorf("Tiers = %v, want only b: medium", got.Tiers)
	}
}

func TestDecodeRejects(t *testing.T) {
	cat := testCatalog("a")
	tests := []struct {
		name  string
		token string
	}{
		{"empty", "   "},
		{"not base64", "ey!!!not-a-token"},
		{"base64 of garbage", b64("hello world")},
		{"json array", b64(`["a"]`)},
		{"missing layout", b64(`{"s":{"a":"xs"}}`)},
		{"null layout", b64(`{"l":null}`)},
		{"layout not list", b64(`{"l":"a"}`)},
		{"mixed layout", b64(`{"l":["a",1]}`)},
		{"newer version", b64(`{"v":2,"l":["a"]}`)},
		{"bad version", b64(`{"v":"one","l":["a"]}`)},
		{"broken raw json", `{"l":[`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token, cat)
			if !errors.Is(err, errors.ErrCodeInvalidShareToken) {
				t.Errorf("Decode(%q) error = %v, want INVALID_SHARE_TOKEN", tt.token, err)
			}
		})
	}
}
