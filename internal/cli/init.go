package cli

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	stats, err := ctx.Store.Stats(ctx.Ctx)
	if err != nil {
		return err
	}
	ctx.printf("Initialized archive at: %s (schema version %d)\n", ctx.Store.Path(), stats.SchemaVersion)
	return nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	ctx.println("Checking for pending migrations...")

	n, err := ctx.Store.Migrate(ctx.Ctx, func(msg string) {
		ctx.println("  " + msg)
	})
	if err != nil {
		return err
	}

	if n == 0 {
		ctx.println("No migrations to apply. Archive is up to date.")
		return nil
	}
	ctx.printf("Successfully applied %d migration(s).\n", n)
	return nil
}
