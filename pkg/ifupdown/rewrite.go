package ifupdown

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/virtnode-tools/virtnode/pkg/util"
)

// FileStore is the subset of runner capabilities the rewriter needs, so the
// same rewrite works on local files and over SSH.
type FileStore interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
}

// Rewrite replaces the interfaces file at path with the bridge layout,
// keeping a timestamped backup alongside it. It returns the backup path.
// The whole state is rebuilt from the on-disk file on every call; nothing
// is persisted beyond the rewritten file itself.
func Rewrite(fs FileStore, path, bridge string, start time.Time) (string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	backup := fmt.Sprintf("%s.bak.%s", path, start.Format("20060102-150405"))
	if err := fs.WriteFile(backup, data, 0644); err != nil {
		return "", fmt.Errorf("writing backup %s: %w", backup, err)
	}

	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return backup, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.NormalizePrefix()

	util.WithStep("rewrite-interfaces").Infof("bridging %s onto %s (%s)", cfg.Iface, bridge, cfg.Address)
	if err := fs.WriteFile(path, []byte(Render(cfg, bridge)), 0644); err != nil {
		return backup, fmt.Errorf("writing %s: %w", path, err)
	}
	return backup, nil
}
