package hostprep

import (
	"fmt"
	"regexp"

	"github.com/virtnode-tools/virtnode/pkg/runner"
	"github.com/virtnode-tools/virtnode/pkg/util"
)

// inetProtocolsRe matches the postfix inet_protocols directive, commented
// out or not. Forcing it to ipv4 avoids install-time hostname resolution
// failures when the host has no working IPv6.
var inetProtocolsRe = regexp.MustCompile(`(?m)^#?\s*inet_protocols\s*=.*$`)

const inetProtocolsLine = "inet_protocols = ipv4"

// PatchPostfix forces inet_protocols = ipv4 in the postfix main config.
// The substitution is idempotent; if no directive exists one is appended.
func PatchPostfix(run runner.Runner, path string) error {
	data, err := run.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	patched, changed := patchMainCF(data)
	if !changed {
		util.WithStep("patch-postfix").Debugf("%s already set", inetProtocolsLine)
		return nil
	}
	if err := run.WriteFile(path, patched, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func patchMainCF(data []byte) ([]byte, bool) {
	if inetProtocolsRe.Match(data) {
		patched := inetProtocolsRe.ReplaceAll(data, []byte(inetProtocolsLine))
		if string(patched) == string(data) {
			return data, false
		}
		return patched, true
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return append(data, []byte(inetProtocolsLine+"\n")...), true
}
