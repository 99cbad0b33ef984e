package cli

import (
	"github.com/julianstephens/archiver/internal/projection"
)

type EntryCmd struct {
	Add    EntryAddCmd    `cmd:"" help:"Record an entry on a day."`
	Edit   EntryEditCmd   `cmd:"" help:"Replace the content of an entry."`
	Delete EntryDeleteCmd `cmd:"" help:"Delete an entry."`
}

type EntryAddCmd struct {
	Date    DayArg   `arg:"" help:"Day of the entry."`
	Content []string `arg:"" help:"Entry text."`
}

func (c *EntryAddCmd) Run(ctx *Context) error {
	entry, err := ctx.Store.AddEntry(ctx.Ctx, c.Date.Day, joinContent(c.Content))
	if err != nil {
		return err
	}
	ctx.printf("✓ Entry added to %s (id: %s)\n", entry.Day.Canonical(), entry.ID)
	return nil
}

type EntryEditCmd struct {
	ID      string   `arg:"" help:"Entry ID."`
	Content []string `arg:"" help:"New entry text."`
}

func (c *EntryEditCmd) Run(ctx *Context) error {
	entry, err := ctx.Store.UpdateEntry(ctx.Ctx, c.ID, joinContent(c.Content))
	if err != nil {
		return err
	}
	ctx.printf("✓ Entry %s updated\n", entry.ID)
	return nil
}

type EntryDeleteCmd struct {
	ID string `arg:"" help:"Entry ID."`
}

func (c *EntryDeleteCmd) Run(ctx *Context) error {
	deleted, err := ctx.Store.DeleteEntry(ctx.Ctx, c.ID)
	if err != nil {
		return err
	}
	if !deleted {
		ctx.printf("Entry %s does not exist.\n", c.ID)
		return nil
	}
	ctx.printf("✓ Entry %s deleted\n", c.ID)
	return nil
}

type SearchCmd struct {
	Term []string `arg:"" help:"Text to search for, case-insensitive."`
}

func (c *SearchCmd) Run(ctx *Context) error {
	entries, err := ctx.Store.SearchEntries(ctx.Ctx, joinContent(c.Term))
	if err != nil {
		return err
	}

	groups := projection.Group(entries)
	if len(groups) == 0 {
		ctx.println("No matching entries.")
		return nil
	}
	for i, g := range groups {
		if i > 0 {
			ctx.println()
		}
		ctx.printf("%s (%s)\n", g.Title, g.Day.Canonical())
		printEntries(ctx, g.Entries)
	}
	return nil
}
