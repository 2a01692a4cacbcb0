// Package cli implements the kong command structs cmd/dayplan wires up,
// grounded on the teacher's internal/cli layout: one struct per subcommand,
// a shared Context carrying the store, and a Run(ctx *Context) error method
// per command.
package cli

import (
	"github.com/julianstephens/dayplan/internal/storage/sqlite"
	"github.com/julianstephens/dayplan/internal/store"
)

// Context is threaded into every command's Run method. DB is the raw sqlite
// adapter, needed only by lifecycle commands (init); everything else goes
// through the in-memory Store composer.
type Context struct {
	Store *store.Store
	DB    *sqlite.Store
}
