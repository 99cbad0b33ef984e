package cli

import (
	"github.com/julianstephens/archiver/internal/constants"
	"github.com/julianstephens/archiver/internal/projection"
)

type DaysCmd struct {
	Filter string `help:"Only list days whose date contains this text." short:"f"`
}

func (c *DaysCmd) Run(ctx *Context) error {
	records, err := ctx.Store.ListDays(ctx.Ctx, c.Filter)
	if err != nil {
		return err
	}

	rows := projection.Days(records)
	if len(rows) == 0 {
		ctx.println("No days found.")
		return nil
	}
	for _, r := range rows {
		ctx.printf("  %s  %-22s %s\n", r.Key, r.Title, r.Description)
	}
	return nil
}

type DayCmd struct {
	Add    DayAddCmd    `cmd:"" help:"Register a day."`
	Delete DayDeleteCmd `cmd:"" help:"Delete a day."`
	Show   DayShowCmd   `cmd:"" help:"Show the entries of a day." default:"withargs"`
}

type DayAddCmd struct {
	Date DayArg `arg:"" help:"Day to register (YYYY-MM-DD, today, yesterday or tomorrow)."`
}

func (c *DayAddCmd) Run(ctx *Context) error {
	rec, err := ctx.Store.UpsertDay(ctx.Ctx, c.Date.Day)
	if err != nil {
		return err
	}
	ctx.printf("✓ Day %s registered (%s)\n", rec.Day.Canonical(), projection.CountLabel(rec.EntryCount))
	return nil
}

type DayDeleteCmd struct {
	Date    DayArg `arg:"" help:"Day to delete."`
	Cascade bool   `help:"Also delete the day's entries. Implied by --cascade-delete-default."`
}

func (c *DayDeleteCmd) Run(ctx *Context) error {
	cascade := c.Cascade || ctx.Config.CascadeDelete

	deleted, err := ctx.Store.DeleteDay(ctx.Ctx, c.Date.Day, cascade)
	if err != nil {
		return err
	}
	if !deleted {
		ctx.printf("Day %s is not registered.\n", c.Date.Canonical())
		return nil
	}
	ctx.printf("✓ Day %s deleted\n", c.Date.Canonical())
	return nil
}

type DayShowCmd struct {
	Date DayArg `arg:"" help:"Day to show." default:"today"`
}

func (c *DayShowCmd) Run(ctx *Context) error {
	entries, err := ctx.Store.GetEntries(ctx.Ctx, c.Date.Day)
	if err != nil {
		return err
	}

	ctx.println(projection.Header(c.Date.Day))
	ctx.println()

	rows := projection.Entries(entries)
	if len(rows) == 0 {
		ctx.println("  No entries")
		return nil
	}
	printEntries(ctx, rows)
	return nil
}

func printEntries(ctx *Context, rows []projection.EntryRow) {
	for _, r := range rows {
		marker := ""
		if r.Edited {
			marker = " " + constants.EditedMarker
		}
		ctx.printf("  %s  %s%s\n", r.Time, r.Content, marker)
		ctx.printf("         id: %s\n", r.ID)
	}
}
