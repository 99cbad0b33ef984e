package cli

import (
	"fmt"

	"github.com/julianstephens/archiver/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	ctx.PerformAutomaticBackup()

	if err := tui.Run(ctx.Ctx, ctx.Store, tui.Options{CascadeDelete: ctx.Config.CascadeDelete}); err != nil {
		return fmt.Errorf("interface failed: %w", err)
	}
	return nil
}
