package console

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/recipegen/internal/domain"
	"github.com/hammamikhairi/recipegen/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// ANSI escape codes for terminal formatting.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	red   = "\033[31m"
	green = "\033[32m"
)

// PrintFunc is a function used to print formatted output.
// Matches the signature of fmt.Printf.
type PrintFunc func(format string, a ...interface{})

// CLINotifier writes notifications to a terminal stream with ANSI
// formatting. Used by the headless commands; the TUI raises toasts instead.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc
	color   bool
}

// NewCLINotifier creates a stream notifier. If printFn is nil, fmt.Printf
// is used. color=false drops the escape codes, for pipes and files.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc, color bool) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format, a...)
		}
	}
	return &CLINotifier{log: log, printFn: printFn, color: color}
}

// Notify prints a success notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.print(green, message)
	return nil
}

// NotifyUrgent prints an error notification in bold red.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.print(red, message)
	return nil
}

func (n *CLINotifier) print(colour, message string) {
	if !n.color {
		n.printFn("%s\n", message)
		return
	}
	n.printFn("%s%s%s%s\n", colour, bold, message, reset)
}
