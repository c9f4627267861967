// Package exe runs external commands.
package exe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-logr/logr"
)

// Opt are the exec options, see https://godoc.org/os/exec#Cmd for details.
type Opt struct {
	// Dir is the working directory.
	Dir string
	// Env is the execution environment.
	Env []string
}

// Run executes 'cmd' with 'stdin', 'args' and 'options'.
// Upon completion it returns stdout and stderr.
// The command is killed when ctx is done.
func Run(ctx context.Context, log logr.Logger, options *Opt, stdin string, cmd string, args ...string) (stdout string, stderr string, err error) {
	log.V(2).Info("Run", "cmd", cmd, "args", args)

	c := exec.CommandContext(ctx, cmd, args...)

	if options != nil {
		c.Env = options.Env
		c.Dir = options.Dir
	}

	if stdin != "" {
		c.Stdin = strings.NewReader(stdin)
	}

	var sout, serr bytes.Buffer
	c.Stdout, c.Stderr = &sout, &serr
	err = c.Run()
	stdout, stderr = sout.String(), serr.String()
	log.V(3).Info("Run-result", "stderr", stderr, "stdout", stdout)
	if err != nil {
		return "", "", fmt.Errorf("%s %v: %w - %s", cmd, args, err, stderr)
	}

	return
}
