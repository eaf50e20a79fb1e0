package hdiutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"dmglicense/internal/services"
)

// DefaultTimeout bounds one udifrez invocation.
const DefaultTimeout = 10 * time.Second

// resourceFD is the descriptor the child reads the resource plist from.
const resourceFD = "/dev/fd/3"

// Executor abstracts command execution for testability. input is made
// available to the child as file descriptor 3.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, input []byte) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps hdiutil resource editing.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs a client. A non-positive timeout uses DefaultTimeout.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("hdiutil binary required")
	}
	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{binary: binary, timeout: timeout, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Binary returns the configured hdiutil path.
func (c *Client) Binary() string {
	return c.binary
}

// AttachResources merges the resource plist into image in place.
func (c *Client) AttachResources(ctx context.Context, image string, resources []byte) error {
	if strings.TrimSpace(image) == "" {
		return services.Wrap(services.ErrValidation, "hdiutil", "udifrez", "disk image path required", nil)
	}
	if len(resources) == 0 {
		return services.Wrap(services.ErrValidation, "hdiutil", "udifrez", "no resources to attach", nil)
	}

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{"udifrez", "-xml", resourceFD, image, image}
	output, err := c.exec.Run(runCtx, c.binary, args, resources)
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "hdiutil", "udifrez", fmt.Sprintf("timed out after %s", c.timeout), err)
		}
		if detail != "" {
			return services.Wrap(services.ErrExternalTool, "hdiutil", "udifrez", detail, err)
		}
		return services.Wrap(services.ErrExternalTool, "hdiutil", "udifrez", "", err)
	}
	return nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, input []byte) ([]byte, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("resource pipe: %w", err)
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.ExtraFiles = []*os.File{r}
	err = cmd.Start()
	// The child holds its own copy of the read end.
	_ = r.Close()
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("start command: %w", err)
	}

	writeErr := make(chan error, 1)
	go func() {
		_, err := w.Write(input)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		writeErr <- err
	}()

	waitErr := cmd.Wait()
	if err := <-writeErr; err != nil && waitErr == nil {
		return out.Bytes(), fmt.Errorf("write resources: %w", err)
	}
	return out.Bytes(), waitErr
}
