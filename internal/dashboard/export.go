package dashboard

import (
	"errors"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/matheus3301/notilog/internal/export"
	"github.com/matheus3301/notilog/internal/logs"
	"github.com/matheus3301/notilog/internal/theme"
)

// Export writes the cached (unfiltered) records of v to dir, or to the
// configured export directory when dir is empty. An empty v exports every
// variant. It returns the files written.
func (d *Dashboard) Export(v logs.Variant, dir string) ([]string, error) {
	if dir == "" {
		dir = d.exportDir
	}
	snap := d.Snapshot()

	var (
		paths []string
		err   error
	)
	if v == "" {
		paths, err = export.WriteAll(dir, snap.Collections)
	} else {
		var p string
		p, err = export.WriteFile(dir, v, snap.Collections)
		if err == nil {
			paths = []string{p}
		}
	}
	if err != nil {
		d.log.Error("export failed", zap.String("variant", string(v)), zap.String("dir", dir), zap.Error(err))
		d.notifyError("Export failed.")
		return paths, err
	}

	d.log.Info("exported", zap.Strings("files", paths))
	if len(paths) == 1 {
		d.notifySuccess("Exported " + filepath.Base(paths[0]) + ".")
	} else {
		d.notifySuccess("Exported all logs.")
	}
	return paths, nil
}

// ErrNoTheme is returned by ToggleTheme when no theme switch is configured.
var ErrNoTheme = errors.New("theme switching unavailable")

// ToggleTheme flips between light and dark. The new mode applies even when
// it could not be saved.
func (d *Dashboard) ToggleTheme() (theme.Mode, error) {
	if d.theme == nil {
		return theme.Default, ErrNoTheme
	}
	m, err := d.theme.Toggle()
	if err != nil {
		d.notifyError("Theme changed but could not be saved.")
	}
	return m, err
}

// Theme returns the active mode.
func (d *Dashboard) Theme() theme.Mode {
	if d.theme == nil {
		return theme.Default
	}
	return d.theme.Mode()
}
