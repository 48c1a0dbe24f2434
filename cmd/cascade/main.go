package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/cascade/internal/datasource"
	"github.com/vanderheijden86/cascade/pkg/cascade"
	"github.com/vanderheijden86/cascade/pkg/column"
	"github.com/vanderheijden86/cascade/pkg/config"
	"github.com/vanderheijden86/cascade/pkg/debug"
	"github.com/vanderheijden86/cascade/pkg/interaction"
	"github.com/vanderheijden86/cascade/pkg/metrics"
	"github.com/vanderheijden86/cascade/pkg/ui"
	"github.com/vanderheijden86/cascade/pkg/version"
	"github.com/vanderheijden86/cascade/pkg/watcher"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var data stringList
	flag.Var(&data, "data", "Catalog file or directory (.json, .yaml, .db); repeatable")
	columns := flag.String("columns", "", "Comma-separated column titles, value column first")
	depth := flag.Int("depth", 0, "Number of columns (default: from the catalog)")
	configPath := flag.String("config", "", "Config file (default: $XDG_CONFIG_HOME/cascade/config.yaml)")
	initFlag := flag.Bool("init", false, "Run the interactive config wizard and save the result")
	watchFlag := flag.Bool("watch", false, "Reload the catalog when its files change")
	required := flag.Bool("required", false, "Refuse to accept an empty value")
	metricsFlag := flag.Bool("metrics", false, "Print timing metrics to stderr on exit")
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	flag.Parse()

	// CPU profiling support
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: cascade [options]")
		fmt.Println("\nPick a value from a catalog through cascading category columns.")
		fmt.Println("The chosen value is printed on stdout.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("cascade %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		// Non-fatal: continue with defaults
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if *initFlag {
		if err := runInit(cfg, *configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	paths := []string(data)
	if len(paths) == 0 {
		paths = cfg.Sources.Paths
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no catalog given. Use -data or set sources.paths in the config (cascade -init).")
		os.Exit(2)
	}
	if *columns != "" {
		cfg.Sources.Columns = splitTitles(*columns)
	}
	if *depth > 0 {
		cfg.Sources.Depth = *depth
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	cat, err := datasource.LoadAll(ctx, paths)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}
	if len(cat.Items) == 0 {
		fmt.Fprintln(os.Stderr, "Catalog has no items.")
		os.Exit(1)
	}

	sched := ui.NewScheduler()
	sel, err := build(cat, cfg, sched, *required)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sel.cas.Close()

	var w *watcher.Watcher
	if *watchFlag {
		w, err = startWatcher(paths)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload disabled: %v\n", err)
		} else {
			defer w.Stop()
		}
	}
	sel.opts.Reloader = ui.NewReloader(cat, paths, w)

	m := ui.New(sel.cas, sel.handler, sel.opts)
	final, err := runTUIProgram(m)
	if *metricsFlag {
		metrics.Format(os.Stderr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running cascade: %v\n", err)
		os.Exit(1)
	}

	if v, ok := final.Chosen(); ok {
		fmt.Println(v.Value())
		return
	}
	// cancelled; os.Exit skips the deferred profile stop
	pprof.StopCPUProfile()
	os.Exit(130)
}

// app is a cascade select wired for the terminal view.
type app struct {
	cas     *cascade.Cascade
	handler *interaction.Handler
	opts    ui.Options
}

// build creates the controller, binds the catalog's sources, and prepares
// the view options. Staged insertion runs through sched.
func build(cat *datasource.Catalog, cfg config.Config, sched *ui.Scheduler, required bool) (*app, error) {
	n := cfg.Sources.Depth
	if n <= 0 {
		n = cat.Depth()
	}

	ctl := cascade.New(n,
		cascade.WithRequired(required),
		cascade.WithColumnOptions(
			column.WithScheduler(sched),
			column.WithStaging(cfg.StagingSettings()),
		),
	)
	cas, err := cascade.Bind(ctl, cat.Sources(n))
	if err != nil {
		return nil, err
	}

	titles := make([]string, n)
	for i := range titles {
		if i < len(cfg.Sources.Columns) && cfg.Sources.Columns[i] != "" {
			titles[i] = cfg.Sources.Columns[i]
		} else {
			titles[i] = cat.Title(i)
		}
	}

	return &app{
		cas:     cas,
		handler: interaction.New(cas, cfg.InteractionSettings()),
		opts: ui.Options{
			Titles:      titles,
			Label:       cat.Name,
			ColumnWidth: cfg.UI.ColumnWidth,
			MaxVisible:  cfg.UI.MaxVisible,
			HideFooter:  !cfg.HelpFooter(),
			Scheduler:   sched,
		},
	}, nil
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func runInit(cfg config.Config, path string) error {
	updated, err := config.RunWizard(cfg)
	if err != nil {
		return err
	}
	if path == "" {
		path = config.ConfigPath()
	}
	if err := config.SaveTo(updated, path); err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", path)
	return nil
}

// startWatcher watches the catalog files behind paths. Directories are
// expanded the same way the loader expands them.
func startWatcher(paths []string) (*watcher.Watcher, error) {
	sources, err := datasource.DiscoverSources(paths, datasource.DiscoveryOptions{})
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(sources))
	for _, s := range sources {
		files = append(files, s.Path)
	}
	w, err := watcher.NewWatcher(files,
		watcher.WithOnError(func(err error) { debug.Log("watcher: %v", err) }),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w, nil
}

func splitTitles(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func runTUIProgram(m ui.Model) (ui.Model, error) {
	p := tea.NewProgram(
		m,
		tea.WithOutput(os.Stderr),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set CASCADE_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("CASCADE_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	final, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		err = nil
	}
	if fm, ok := final.(ui.Model); ok {
		return fm, err
	}
	return m, err
}
