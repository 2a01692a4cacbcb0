package cli

import "fmt"

// InitCmd initializes the sqlite-backed store, grounded on the teacher's
// system.InitCmd (trimmed of its Postgres-to-sqlite migration path, which
// has no analogue now that Postgres is dropped — see DESIGN.md).
type InitCmd struct {
	Force bool `help:"Reinitialize even if storage already exists."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		_ = ctx.DB.Close()
	}
	if err := ctx.DB.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized dayplan storage at: %s\n", ctx.DB.GetConfigPath())
	return nil
}
