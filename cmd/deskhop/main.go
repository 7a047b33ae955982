package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/deskhop/deskhop/internal/autostart"
	"github.com/deskhop/deskhop/internal/config"
	"github.com/deskhop/deskhop/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: deskhop daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: deskhop daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "switch":
		os.Exit(runSwitch(os.Args[2:]))
	case "prev":
		os.Exit(runPrev(os.Args[2:]))
	case "move":
		os.Exit(runMove(os.Args[2:]))
	case "pin":
		os.Exit(runPin(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "autostart":
		os.Exit(runAutostart(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskhop <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the deskhop daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  monitors            List connected monitors")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  switch <n>          Switch to desktop n (1-10)")
	fmt.Fprintln(w, "  prev                Toggle back to the previous desktop")
	fmt.Fprintln(w, "  move <n>            Move the active window to desktop n")
	fmt.Fprintln(w, "  pin                 Pin the active window on all desktops")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  autostart install   Install the login autostart entry")
	fmt.Fprintln(w, "  autostart uninstall Remove the login autostart entry")
	fmt.Fprintln(w, "  autostart status    Show whether autostart is installed")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskhop <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskhop status [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output status as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Piped output gets JSON for easy scripting.
	if *jsonOut || !term.IsTerminal(int(os.Stdout.Fd())) {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	fmt.Printf("daemon_running:   %v\n", status.DaemonRunning)
	fmt.Printf("current_desktop:  %d\n", status.CurrentDesktop)
	if status.PreviousDesktop != 0 {
		fmt.Printf("previous_desktop: %d\n", status.PreviousDesktop)
	}
	fmt.Printf("active_overlays:  %d\n", status.ActiveOverlays)
	fmt.Printf("hotkeys_bound:    %d\n", status.HotkeysBound)
	fmt.Printf("uptime_seconds:   %d\n", status.UptimeSeconds)
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskhop monitors [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List connected monitors via IPC.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output monitors as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "monitors takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	data, err := client.GetMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut || !term.IsTerminal(int(os.Stdout.Fd())) {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(string(out))
		return 0
	}

	for _, m := range data.Monitors {
		fmt.Printf("%d: %s %dx%d+%d+%d\n", m.ID, m.Name, m.Width, m.Height, m.X, m.Y)
	}
	return 0
}

func parseDesktopArg(fs *flag.FlagSet) (int, bool) {
	if fs.NArg() != 1 {
		fs.Usage()
		return 0, false
	}
	n, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid desktop number: %s\n", fs.Arg(0))
		return 0, false
	}
	return n, true
}

func runSwitch(args []string) int {
	fs := flag.NewFlagSet("switch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskhop switch <n>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Switch to desktop n (1-10).")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	n, ok := parseDesktopArg(fs)
	if !ok {
		return 2
	}

	outcome, err := ipc.NewClient().SwitchDesktop(n)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(outcome)
	return 0
}

func runPrev(args []string) int {
	fs := flag.NewFlagSet("prev", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskhop prev")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Toggle back to the most recently left desktop.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "prev takes no arguments")
		fs.Usage()
		return 2
	}

	outcome, err := ipc.NewClient().PreviousDesktop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(outcome)
	return 0
}

func runMove(args []string) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskhop move <n>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Move the active window to desktop n without following it.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	n, ok := parseDesktopArg(fs)
	if !ok {
		return 2
	}

	outcome, err := ipc.NewClient().MoveWindow(n)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(outcome)
	return 0
}

func runPin(args []string) int {
	fs := flag.NewFlagSet("pin", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskhop pin")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Pin the active window so it appears on every desktop.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "pin takes no arguments")
		fs.Usage()
		return 2
	}

	outcome, err := ipc.NewClient().PinWindow()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(outcome)
	return 0
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  deskhop config validate")
	fmt.Fprintln(w, "  deskhop config print")
}

func runConfig(args []string) int {
	if len(args) == 0 {
		printConfigUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "validate":
		path, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if _, err := config.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			return 1
		}
		fmt.Printf("%s: OK\n", path)
		return 0

	case "print":
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		os.Stdout.Write(data)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage(os.Stderr)
		return 2
	}
}

func printAutostartUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  deskhop autostart install")
	fmt.Fprintln(w, "  deskhop autostart uninstall")
	fmt.Fprintln(w, "  deskhop autostart status")
}

func runAutostart(args []string) int {
	if len(args) == 0 {
		printAutostartUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printAutostartUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "install":
		if err := autostart.Install(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		path, _ := autostart.EntryPath()
		fmt.Printf("installed %s\n", path)
		return 0

	case "uninstall":
		if err := autostart.Uninstall(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("uninstalled")
		return 0

	case "status":
		installed, err := autostart.Installed()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if installed {
			path, _ := autostart.EntryPath()
			fmt.Printf("installed (%s)\n", path)
		} else {
			fmt.Println("not installed")
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown autostart command: %s\n\n", args[0])
		printAutostartUsage(os.Stderr)
		return 2
	}
}
