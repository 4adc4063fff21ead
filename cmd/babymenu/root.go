package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"babymenu/internal/app"
	"babymenu/internal/config"
	"babymenu/internal/logging"
	"babymenu/internal/planner"
)

var (
	yesFlag   bool
	childFlag string
)

// openApp is the app returned by mustGetApp, closed by fatalf since
// os.Exit skips deferred calls.
var (
	openApp *app.App
	exit    = os.Exit
)

var rootCmd = &cobra.Command{
	Use:   "babymenu",
	Short: "Plan a baby's weekly food rotation",
	Long: `babymenu keeps each child's approved foods, rotates them through the
week, lets you pin a day to a specific food and records what was fed.

Configuration comes from the environment (BABYMENU_STORE, BABYMENU_DATA_PATH,
BABYMENU_DB_PATH, BABYMENU_CATEGORIES_PATH, BABYMENU_LOG_LEVEL).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "Answer yes to every confirmation")
	rootCmd.PersistentFlags().StringVar(&childFlag, "child", "", "Child to act on (number, name or id); defaults to the selected child")
}

func newContext() context.Context {
	return context.Background()
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	if openApp != nil {
		openApp.Close()
		openApp = nil
	}
	exit(1)
}

// mustGetApp loads the configuration and opens the planner. Callers close
// the returned app.
func mustGetApp() *app.App {
	cfg, err := config.NewFromEnv()
	if err != nil {
		fatalf("failed to load configuration: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, true)
	if err != nil {
		fatalf("%v", err)
	}
	a, err := app.New(newContext(), cfg, logger)
	if err != nil {
		fatalf("%v", err)
	}
	openApp = a
	return a
}

// mustGetChild resolves --child, falling back to the selected child.
func mustGetChild(ctx context.Context, svc *planner.Service) planner.Child {
	if childFlag == "" {
		child, err := svc.CurrentChild(ctx)
		if err != nil {
			fatalf("%v (add one with 'babymenu child add')", err)
		}
		return child
	}
	children, err := svc.Children(ctx)
	if err != nil {
		fatalf("%v", err)
	}
	child, ok := findChild(children, childFlag)
	if !ok {
		fatalf("no child matches %q", childFlag)
	}
	return child
}

// findChild matches a 1-based list number, an id or a case-insensitive name.
func findChild(children []planner.Child, key string) (planner.Child, bool) {
	if n, err := strconv.Atoi(key); err == nil {
		if n >= 1 && n <= len(children) {
			return children[n-1], true
		}
		return planner.Child{}, false
	}
	for _, c := range children {
		if c.ID == key || strings.EqualFold(c.Name, key) {
			return c, true
		}
	}
	return planner.Child{}, false
}

// confirmer asks question on out and reads the answer from in, unless
// --yes was given.
func confirmer(in io.Reader, out io.Writer, question string) planner.Confirm {
	if yesFlag {
		return planner.AlwaysConfirm
	}
	return func() bool {
		fmt.Fprintf(out, "%s [y/N] ", question)
		answer, _ := bufio.NewReader(in).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}
}

const recalcQuestion = "This week has manual picks. Recalculate the rest of the week with the new catalog?"
