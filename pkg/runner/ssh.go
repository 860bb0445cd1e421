package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/virtnode-tools/virtnode/pkg/util"
)

// SSH runs commands on a remote host over one SSH connection. Sessions are
// created per call (stateless), matching how the provisioning steps expect
// independent shell-outs.
type SSH struct {
	target string
	client *ssh.Client
}

// DialSSH connects to target ("user@host" or "user@host:port") with password
// authentication and returns a runner bound to that connection.
func DialSSH(target, password string) (*SSH, error) {
	user, addr, err := splitTarget(target)
	if err != nil {
		return nil, err
	}

	config := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
		},
		// Provisioning runs against freshly installed hosts whose keys
		// are not yet known.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("SSH dial %s: %w", addr, err)
	}
	return &SSH{target: target, client: client}, nil
}

// Run executes a shell command line on the remote host.
func (s *SSH) Run(ctx context.Context, command string) ([]byte, error) {
	util.WithHost(s.target).Debugf("exec: %s", command)
	session, err := s.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("SSH session: %w", err)
	}
	defer session.Close()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			session.Close()
		case <-done:
		}
	}()
	output, err := session.CombinedOutput(command)
	close(done)
	if err != nil {
		return output, fmt.Errorf("SSH exec %q: %w", command, err)
	}
	return output, nil
}

// ReadFile returns the contents of a remote file via cat.
func (s *SSH) ReadFile(path string) ([]byte, error) {
	session, err := s.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("SSH session: %w", err)
	}
	defer session.Close()

	output, err := session.Output("cat " + shellQuote(path))
	if err != nil {
		return nil, fmt.Errorf("reading %s on %s: %w", path, s.target, err)
	}
	return output, nil
}

// WriteFile replaces a remote file by streaming data to a shell redirect,
// then applies perm with chmod.
func (s *SSH) WriteFile(path string, data []byte, perm os.FileMode) error {
	session, err := s.client.NewSession()
	if err != nil {
		return fmt.Errorf("SSH session: %w", err)
	}
	defer session.Close()

	session.Stdin = bytes.NewReader(data)
	quoted := shellQuote(path)
	cmd := fmt.Sprintf("cat > %s && chmod %o %s", quoted, perm.Perm(), quoted)
	if output, err := session.CombinedOutput(cmd); err != nil {
		return fmt.Errorf("writing %s on %s: %w (%s)", path, s.target, err, bytes.TrimSpace(output))
	}
	return nil
}

// Remove deletes a remote file. rm -f tolerates missing files.
func (s *SSH) Remove(path string) error {
	session, err := s.client.NewSession()
	if err != nil {
		return fmt.Errorf("SSH session: %w", err)
	}
	defer session.Close()

	if output, err := session.CombinedOutput("rm -f " + shellQuote(path)); err != nil {
		return fmt.Errorf("removing %s on %s: %w (%s)", path, s.target, err, bytes.TrimSpace(output))
	}
	return nil
}

// Host names the target for logging.
func (s *SSH) Host() string {
	return s.target
}

// Close shuts down the SSH connection.
func (s *SSH) Close() error {
	return s.client.Close()
}

// splitTarget parses "user@host[:port]" into user and dial address,
// defaulting the port to 22.
func splitTarget(target string) (user, addr string, err error) {
	user, host, ok := strings.Cut(target, "@")
	if !ok || user == "" || host == "" {
		return "", "", fmt.Errorf("target must be user@host, got %q", target)
	}
	if !strings.Contains(host, ":") {
		host += ":22"
	}
	return user, host, nil
}

// shellQuote wraps s in single quotes for safe interpolation into a remote
// shell command line.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
