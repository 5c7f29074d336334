package format

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/blockinv/blockinv/internal/block"
)

// Scheduler is a kernel I/O elevator.
type Scheduler string

const (
	SchedulerCfq      Scheduler = "cfq"
	SchedulerDeadline Scheduler = "deadline"
	SchedulerNoop     Scheduler = "noop"
)

func ParseScheduler(s string) (Scheduler, error) {
	switch s {
	case "cfq":
		return SchedulerCfq, nil
	case "deadline":
		return SchedulerDeadline, nil
	case "noop":
		return SchedulerNoop, nil
	default:
		return "", fmt.Errorf("unknown scheduler: %s", s)
	}
}

// SetElevatorLine rewrites an rc.local-style script so the device's
// scheduler is set at boot. Any existing line mentioning the device
// is replaced; the caller owns reading and writing the file itself.
func SetElevatorLine(script, devicePath string, sched Scheduler) string {
	device := filepath.Base(devicePath)
	line := fmt.Sprintf("echo %s > /sys/block/%s/queue/scheduler", sched, device)
	return replaceLineContaining(script, device, line)
}

// WeeklyDefragLine rewrites a crontab blob with a recurring defrag
// job for the mountpoint. Filesystems with no defrag tool get an
// empty command slot, matching the historical behavior.
func WeeklyDefragLine(crontab, mountpoint string, fs block.FilesystemType, interval string) string {
	var cmd string
	switch fs {
	case block.FSExt4:
		cmd = "e4defrag"
	case block.FSBtrfs:
		cmd = "btrfs filesystem defragment -r"
	case block.FSXfs:
		cmd = "xfs_fsr"
	}
	line := fmt.Sprintf("%s %s %s", interval, cmd, mountpoint)
	return replaceLineContaining(crontab, mountpoint, line)
}

// replaceLineContaining removes the first line containing needle and
// appends the replacement at the end.
func replaceLineContaining(text, needle, replacement string) string {
	var lines []string
	if text != "" {
		lines = strings.Split(strings.TrimRight(text, "\n"), "\n")
	}
	for i, l := range lines {
		if strings.Contains(l, needle) {
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}
	lines = append(lines, replacement)
	return strings.Join(lines, "\n") + "\n"
}
