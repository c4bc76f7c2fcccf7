package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if p := a.coordinator.Principal(); p != "" {
		s = p + " "
	}
	if m := a.currentMode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	printlnFn("Welcome to ghostproof CLI (type 'help' for commands)")

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
