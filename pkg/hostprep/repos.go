package hostprep

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/virtnode-tools/virtnode/pkg/runner"
	"github.com/virtnode-tools/virtnode/pkg/util"
)

// keyFetchTimeout bounds the signing-key download.
const keyFetchTimeout = 30 * time.Second

// RemoveEnterpriseRepo deletes the conflicting subscription repository list
// so apt stops failing on its unauthorized endpoint.
func RemoveEnterpriseRepo(run runner.Runner, path string) error {
	if err := run.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// WriteRepoList writes the hypervisor repository list file with its single
// deb line.
func WriteRepoList(run runner.Runner, path, line string) error {
	if err := run.WriteFile(path, []byte(line), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FetchSigningKey downloads the repository signing key and places it in the
// target's keyring directory. The key is fetched by this process and written
// through the runner, so remote targets do not need outbound access
// themselves.
func FetchSigningKey(ctx context.Context, run runner.Runner, url, dest string) error {
	ctx, cancel := context.WithTimeout(ctx, keyFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building key request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: status %s", url, resp.Status)
	}
	key, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading key body: %w", err)
	}

	util.WithStep("add-hypervisor-repo").Debugf("fetched %d byte key from %s", len(key), url)
	if err := run.WriteFile(dest, key, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}
