package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/forgeboard/pkg/buildinfo"
	"github.com/matzehuels/forgeboard/pkg/catalog"
	"github.com/matzehuels/forgeboard/pkg/errors"
	"github.com/matzehuels/forgeboard/pkg/preset"
	"github.com/matzehuels/forgeboard/pkg/store"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

// runCLI executes one command line against a file store in dir and returns
// what it printed.
func runCLI(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)

	var out bytes.Buffer
	prev := stdout
	stdout = &out
	defer func() { stdout = prev }()

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--store", "file", "--store-path", filepath.Join(dir, "settings")}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dir, "", args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

func currentLayout(t *testing.T, dir string) layoutView {
	t.Helper()
	var v layoutView
	if err := json.Unmarshal([]byte(mustRun(t, dir, "layout", "--json")), &v); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	return v
}

func TestCatalogCommand(t *testing.T) {
	dir := t.TempDir()

	var entries []catalog.Entry
	if err := json.Unmarshal([]byte(mustRun(t, dir, "catalog", "--json")), &entries); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if len(entries) != len(catalog.Builtin().Entries()) {
		t.Errorf("catalog has %d entries, want %d", len(entries), len(catalog.Builtin().Entries()))
	}

	out := mustRun(t, dir, "catalog", "audit", "--details")
	if !strings.Contains(out, "audit") {
		t.Errorf("catalog audit output missing key:\n%s", out)
	}

	out = mustRun(t, dir, "catalog", "no-such-widget-anywhere")
	if !strings.Contains(out, "No widgets match") {
		t.Errorf("empty search output = %q", out)
	}
}

func TestLayoutCommands(t *testing.T) {
	dir := t.TempDir()

	if v := currentLayout(t, dir); !reflect.DeepEqual(v.Order, preset.Default().Order) {
		t.Errorf("initial layout = %v, want Default preset", v.Order)
	}

	out := mustRun(t, dir, "layout", "set", "stats_total", "ghost", "audit")
	if !strings.Contains(out, "Skipped unknown widget ghost") {
		t.Errorf("set output missing skip warning:\n%s", out)
	}
	mustRun(t, dir, "layout", "add", "tips")
	mustRun(t, dir, "layout", "move", "tips", "0")
	mustRun(t, dir, "layout", "size", "audit", "large")
	mustRun(t, dir, "layout", "size", "tips")

	v := currentLayout(t, dir)
	if want := []string{"tips", "stats_total", "audit"}; !reflect.DeepEqual(v.Order, want) {
		t.Errorf("Order = %v, want %v", v.Order, want)
	}
	if v.Tiers["audit"] != tier.Large || v.Tiers["tips"] != tier.Medium {
		t.Errorf("Tiers = %v", v.Tiers)
	}
	if len(v.Grid.Placements) != 3 {
		t.Errorf("grid has %d placements", len(v.Grid.Placements))
	}

	mustRun(t, dir, "layout", "remove", "stats_total")
	mustRun(t, dir, "layout", "use", "Decks Focused")
	p, _ := preset.Get("Decks Focused")
	if v := currentLayout(t, dir); !reflect.DeepEqual(v.Order, p.Order) {
		t.Errorf("after use = %v, want %v", v.Order, p.Order)
	}

	mustRun(t, dir, "layout", "reset")
	if v := currentLayout(t, dir); !reflect.DeepEqual(v.Order, preset.Default().Order) {
		t.Errorf("after reset = %v", v.Order)
	}

	if _, err := runCLI(t, dir, "", "layout", "move", "audit", "first"); err == nil {
		t.Error("move with a non-numeric index succeeded")
	}
	if _, err := runCLI(t, dir, "", "layout", "size", "audit", "huge"); !errors.Is(err, errors.ErrCodeInvalidTier) {
		t.Errorf("size huge error = %v, want INVALID_TIER", err)
	}
}

func TestSavedCommands(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "layout", "set", "stats_total", "audit")
	mustRun(t, dir, "saved", "save", "Mine")

	if _, err := runCLI(t, dir, "n\n", "saved", "save", "Mine"); !errors.Is(err, errors.ErrCodeDuplicateName) {
		t.Errorf("declined overwrite error = %v, want DUPLICATE_NAME", err)
	}
	mustRun(t, dir, "layout", "add", "tips")
	if _, err := runCLI(t, dir, "y\n", "saved", "save", "Mine"); err != nil {
		t.Errorf("confirmed overwrite: %v", err)
	}

	var entries []store.Entry
	if err := json.Unmarshal([]byte(mustRun(t, dir, "saved", "--json")), &entries); err != nil {
		t.Fatalf("decode saved: %v", err)
	}
	var found *store.Entry
	for i := range entries {
		if entries[i].Name == "Mine" {
			found = &entries[i]
		}
	}
	if found == nil || found.Namespace != store.Custom || found.Widgets != 3 {
		t.Errorf("saved entry = %+v", found)
	}

	out := mustRun(t, dir, "saved", "show", "Mine")
	if !strings.Contains(out, "Total Cards") {
		t.Errorf("show output missing widget title:\n%s", out)
	}

	mustRun(t, dir, "saved", "delete", "Mine")
	if _, err := runCLI(t, dir, "", "saved", "show", "Mine"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("show deleted error = %v, want NOT_FOUND", err)
	}
	if _, err := runCLI(t, dir, "", "saved", "delete", preset.DefaultName); !errors.Is(err, errors.ErrCodeReadOnly) {
		t.Errorf("delete preset error = %v, want READ_ONLY", err)
	}
}

func TestShareAndImport(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "layout", "set", "recent_decks", "audit")
	mustRun(t, dir, "layout", "size", "audit", "medium")

	token := strings.TrimSpace(mustRun(t, dir, "share"))
	if token == "" {
		t.Fatal("share printed no token")
	}

	other := t.TempDir()
	mustRun(t, other, "import", "Shared", token, "--use")
	v := currentLayout(t, other)
	if want := []string{"recent_decks", "audit"}; !reflect.DeepEqual(v.Order, want) {
		t.Errorf("imported order = %v, want %v", v.Order, want)
	}
	if v.Tiers["audit"] != tier.Medium {
		t.Errorf("imported tier = %v, want medium", v.Tiers["audit"])
	}

	named := strings.TrimSpace(mustRun(t, other, "share", "Shared"))
	mustRun(t, dir, "import", "Roundtrip", named, "--use")
	if v := currentLayout(t, dir); !reflect.DeepEqual(v.Order, []string{"recent_decks", "audit"}) {
		t.Errorf("re-imported order = %v", v.Order)
	}

	if _, err := runCLI(t, other, "", "import", "Bad", "not-a-token"); !errors.Is(err, errors.ErrCodeInvalidShareToken) {
		t.Errorf("bad token error = %v, want INVALID_SHARE_TOKEN", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out := mustRun(t, t.TempDir(), "version")
	if !strings.Contains(out, buildinfo.Version) {
		t.Errorf("version output = %q", out)
	}
}

func TestInvalidUserFlag(t *testing.T) {
	if _, err := runCLI(t, t.TempDir(), "", "--user", "../etc", "layout"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}
