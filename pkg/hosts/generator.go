package hosts

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultGeneratorBinary is the external tool that turns a layout shorthand
// such as centos7-64m-debian8-32a into a hosts file.
const DefaultGeneratorBinary = "hostsuite-hostgenerator"

const defaultGeneratorTimeout = 30 * time.Second

// Generator produces a hosts file (as YAML) from a layout shorthand.
type Generator interface {
	// Generate returns the generated hosts YAML. hypervisor, when not empty,
	// overrides the hypervisor of every generated host.
	Generate(layout, hypervisor string) ([]byte, error)
}

// ExecGenerator runs the host generator as a child process.
type ExecGenerator struct {
	// Binary defaults to DefaultGeneratorBinary and is looked up in PATH.
	Binary  string
	Timeout time.Duration
}

// NewExecGenerator returns a generator running DefaultGeneratorBinary.
func NewExecGenerator() *ExecGenerator {
	return &ExecGenerator{Binary: DefaultGeneratorBinary, Timeout: defaultGeneratorTimeout}
}

// Generate implements Generator.
func (g *ExecGenerator) Generate(layout, hypervisor string) ([]byte, error) {
	binary := g.Binary
	if binary == "" {
		binary = DefaultGeneratorBinary
	}
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = defaultGeneratorTimeout
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("host generator %s not found: %w", binary, err)
	}

	args := []string{}
	if hypervisor != "" {
		args = append(args, "--hypervisor", hypervisor)
	}
	args = append(args, layout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...) //nolint:gosec // Binary and arguments come from the run's own options
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s %s: %w", binary, strings.Join(args, " "), err)
		}
		return nil, fmt.Errorf("%s %s: %w: %s", binary, strings.Join(args, " "), err, msg)
	}
	return out, nil
}
