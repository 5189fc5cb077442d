package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/tracker"
)

// Context is passed to every command's Run method.
type Context struct {
	Config *config.Config
	Store  storage.Provider

	// TrackerOptions are applied after the configured location.
	TrackerOptions []tracker.Option

	Out io.Writer
	In  io.Reader

	tracker *tracker.Tracker
}

// NewContext wires the configured store to standard input and output.
func NewContext(cfg *config.Config, store storage.Provider) *Context {
	return &Context{
		Config: cfg,
		Store:  store,
		Out:    os.Stdout,
		In:     os.Stdin,
	}
}

// Tracker loads the habit collection on first use.
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}

	var opts []tracker.Option
	if c.Config != nil {
		opts = append(opts, tracker.WithLocation(c.Config.Location()))
	}
	opts = append(opts, c.TrackerOptions...)

	t, err := tracker.New(c.Store, opts...)
	if err != nil {
		return nil, err
	}
	c.tracker = t
	return t, nil
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question on the context's input. Anything but
// "y" or "yes" is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.printf("%s [y/N]: ", prompt)

	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// BackupManager returns a manager for the configured storage file. Server
// backends have no file to back up.
func (c *Context) BackupManager() (*backup.Manager, error) {
	target := c.Store.GetConfigPath()
	if !storage.DetectKind(target).IsFileBackend() {
		return nil, fmt.Errorf("backups are only supported for file storage (current target is %s)", storage.DetectKind(target))
	}

	dir := ""
	if c.Config != nil {
		dir = c.Config.BackupDir()
	}
	return backup.NewManager(target, dir), nil
}

// PerformAutomaticBackup backs up file storage when backups are enabled.
// Failures are logged and never block the caller.
func (c *Context) PerformAutomaticBackup() {
	if c.Config != nil && !c.Config.BackupsEnabled {
		return
	}
	if !storage.DetectKind(c.Store.GetConfigPath()).IsFileBackend() {
		return
	}
	if _, err := os.Stat(c.Store.GetConfigPath()); err != nil {
		return
	}

	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

var dayMap = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekdays accepts comma-separated day names or numbers (0=Sunday).
func ParseWeekdays(s string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if wd, ok := dayMap[part]; ok {
			days = append(days, int(wd))
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, num)
	}
	return days, nil
}

// FormatFrequency renders a habit's schedule, listing the days of custom
// schedules.
func FormatFrequency(h models.Habit) string {
	custom, ok := h.Schedule.(models.CustomDays)
	if !ok {
		return h.Label()
	}
	if len(custom.Days) == 0 {
		return "Custom Days (none selected)"
	}
	names := make([]string, 0, len(custom.Days))
	for _, d := range custom.Days {
		names = append(names, d.String()[:3])
	}
	return fmt.Sprintf("%s (%s)", h.Label(), strings.Join(names, ", "))
}

func (c *Context) print(args ...any) {
	fmt.Fprint(c.Out, args...)
}
