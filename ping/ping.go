package ping

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strconv"
	"time"
)

// Result classifies a single probe. Reachability and tool-availability are
// distinct failure classes: a host that is down must not look the same as an
// environment where probing is impossible.
type Result int

const (
	Reachable Result = iota
	Unreachable
	Unavailable
)

func (r Result) String() string {
	switch r {
	case Reachable:
		return "reachable"
	case Unreachable:
		return "unreachable"
	default:
		return "unavailable"
	}
}

// Prober performs a single bounded reachability check against an IPv4
// address. Implementations must not retry internally.
type Prober interface {
	Probe(ctx context.Context, ip string) Result
}

// ExecProber shells out to the platform ping utility, one echo request per
// probe with a fixed timeout.
type ExecProber struct {
	Timeout time.Duration

	binary string
}

func NewExecProber() *ExecProber {
	return &ExecProber{Timeout: 2 * time.Second, binary: "ping"}
}

func pingArgs(ip string, timeout time.Duration) []string {
	secs := int(timeout / time.Second)
	if secs < 1 {
		secs = 1
	}
	if runtime.GOOS == "windows" {
		return []string{"-n", "1", "-w", strconv.Itoa(secs * 1000), ip}
	}
	return []string{"-c", "1", "-W", strconv.Itoa(secs), ip}
}

func (p *ExecProber) Probe(ctx context.Context, ip string) Result {
	bin := p.binary
	if bin == "" {
		bin = "ping"
	}

	// One extra second over the utility's own timeout so the process is
	// killed if it ignores the flag.
	ctx, cancel := context.WithTimeout(ctx, p.Timeout+time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, pingArgs(ip, p.Timeout)...)
	err := cmd.Run()
	if err == nil {
		return Reachable
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) || ctx.Err() != nil {
		// The utility ran and reported failure, or we killed it on
		// timeout. Either way the host did not answer.
		return Unreachable
	}

	// Missing binary, permission denied, sandboxed environment.
	return Unavailable
}
