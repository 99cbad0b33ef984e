package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/julianstephens/archiver/internal/backup"
	"github.com/julianstephens/archiver/internal/day"
	"github.com/julianstephens/archiver/internal/logger"
	"github.com/julianstephens/archiver/internal/storage"
	"github.com/julianstephens/archiver/internal/storage/sqlite"
)

// Config is the resolved global configuration.
type Config struct {
	Path          string
	SchemaDir     string
	Debug         bool
	CascadeDelete bool
}

// Context is passed to every command's Run method.
type Context struct {
	Ctx    context.Context
	Store  storage.Provider
	Config Config
	Out    io.Writer
	In     io.Reader
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// SchemaFS returns the scripts the archive is migrated with.
func (c *Context) SchemaFS() (fs.FS, error) {
	if c.Config.SchemaDir != "" {
		return os.DirFS(c.Config.SchemaDir), nil
	}
	return sqlite.DefaultSchema()
}

// PerformAutomaticBackup creates a snapshot and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.Path())
	if _, err := mgr.Create(c.Ctx); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// DayArg is a day on the command line. Besides YYYY-MM-DD it accepts
// "today", "yesterday" and "tomorrow".
type DayArg struct {
	day.Day
}

func (a *DayArg) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "today":
		a.Day = day.Today()
	case "yesterday":
		a.Day = day.Today().AddDays(-1)
	case "tomorrow":
		a.Day = day.Today().AddDays(1)
	default:
		d, err := day.Parse(string(text))
		if err != nil {
			return err
		}
		a.Day = d
	}
	return nil
}

func joinContent(parts []string) string {
	return strings.TrimSpace(strings.Join(parts, " "))
}

func confirm(c *Context, prompt string) (bool, error) {
	c.printf("%s [y/N]: ", prompt)

	reader := bufio.NewReader(c.In)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
