// Package pkg provides the core libraries for Forgeboard dashboard layouts.
//
// # Overview
//
// A dashboard is an ordered list of widgets from a fixed catalog, each drawn
// at one of five size tiers and packed onto a 12-column grid. The pkg
// directory is organized into four main areas:
//
//  1. Model - [tier], [catalog], [layout] and [preset]
//  2. Interaction - [reorder] and [resize], the pointer engines
//  3. Persistence - [store] with its backends, [migrate] and [codec]
//  4. Orchestration - [session], which ties the others together
//
// # Architecture
//
// The typical data flow through Forgeboard:
//
//	Settings document (file, SQLite, Redis, MongoDB)
//	         ↓
//	    [migrate] package (legacy layouts → flat order)
//	         ↓
//	    [store] package (current layout, saved layouts, presets)
//	         ↓
//	    [session] package (edit mode, reorder and resize)
//	         ↓
//	    layout.Pack (grid placements for the CLI, editor and API)
//
// # Quick Start
//
// Open a session, change the layout and pack it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/forgeboard/pkg/session"
//	    "github.com/matzehuels/forgeboard/pkg/store"
//	    "github.com/matzehuels/forgeboard/pkg/tier"
//	)
//
//	// 1. Connect a store
//	st := store.New(store.NewMemoryBackend(), nil, nil)
//
//	// 2. Open the user's current layout
//	d, _ := session.Open(context.Background(), st, "alice")
//
//	// 3. Edit it
//	d.BeginEdit()
//	d.Add("tips")
//	d.SetTier("tips", tier.Medium)
//	d.EndEdit(context.Background())
//
//	// 4. Pack it onto the grid
//	grid := d.Grid(tier.Columns)
//
// # Main Packages
//
// [tier] - The five size tiers, their grid spans and the resize cycle.
//
// [catalog] - The widget registry: keys, titles, per-tier behavior and the
// render contract. Unknown keys are reported, never rendered.
//
// [layout] - The layout model (ordered, duplicate-free, catalog-filtered),
// tier assignments and the first-fit grid packer.
//
// [preset] - The read-only built-in layouts.
//
// [reorder] - Drag-and-drop reordering. Dragged widgets move live to the
// target under the pointer; library widgets are added on drop.
//
// [resize] - Drag-to-size with tier snapping, as an explicit state machine.
//
// [codec] - Share tokens: versioned base64 JSON of a layout.
//
// [migrate] - Normalization of every historical persisted layout shape.
//
// [store] - Per-user settings documents over a store.Backend. Memory, null
// and file backends live in the package; [store/sqlite], [store/redis] and
// [store/mongo] adapt external databases.
//
// [session] - One editing session. Mutations apply immediately; writes run in
// the background and failures reach an injected notifier.
//
// [config] - The TOML configuration file and backend selection.
//
// [observability] - Hooks for persistence, edit and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [tier]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/tier
// [catalog]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/catalog
// [layout]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/layout
// [preset]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/preset
// [reorder]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/reorder
// [resize]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/resize
// [codec]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/codec
// [migrate]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/migrate
// [store]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/store
// [session]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/session
// [config]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/observability
// [store/sqlite]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/store/sqlite
// [store/redis]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/store/redis
// [store/mongo]: https://pkg.go.dev/github.com/matzehuels/forgeboard/pkg/store/mongo
package pkg
