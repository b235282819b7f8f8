package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/newver/newver/internal/common/logger"
	"github.com/newver/newver/internal/common/output"
	"github.com/newver/newver/internal/config"
	"github.com/newver/newver/internal/informer"
	"github.com/newver/newver/internal/pkgid"
	"github.com/newver/newver/internal/registry"
)

var (
	// checkRegistry selects the registry for an ad-hoc check
	checkRegistry string
	// checkOwner is the package owner for namespaced registries
	checkOwner string
	// checkCurrent is the version currently in use
	checkCurrent string
	// checkInterval overrides the configured freshness interval
	checkInterval time.Duration
	// checkForce ignores cache freshness
	checkForce bool
)

var checkCmd = &cobra.Command{
	Use:   "check [entry]",
	Short: "Check watched packages for newer versions",
	Long: `Check one watch-list entry, all of them, or an ad-hoc package.

Examples:
  newver check                                   Check every watch-list entry
  newver check ripgrep                           Check one watch-list entry
  newver check --force                           Check ignoring the cache
  newver check ripgrep --registry crates \
      --current 14.0.0                           Ad-hoc check without a watch list`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkRegistry, "registry", "", "Registry for an ad-hoc check (crates, github, pypi)")
	checkCmd.Flags().StringVar(&checkOwner, "owner", "", "Package owner (required for github)")
	checkCmd.Flags().StringVar(&checkCurrent, "current", "", "Version currently in use")
	checkCmd.Flags().DurationVar(&checkInterval, "interval", 0, "Freshness interval override (e.g. 6h)")
	checkCmd.Flags().BoolVar(&checkForce, "force", false, "Ignore cache freshness and query the registry")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	inf := newInformer(cfg)

	// Ad-hoc check: --registry given means the watch list is not consulted.
	if checkRegistry != "" {
		if len(args) == 0 {
			logger.Error("ad-hoc check requires a package name")
			os.Exit(1)
		}
		if checkCurrent == "" {
			logger.Error("ad-hoc check requires --current")
			os.Exit(1)
		}

		entry := config.WatchEntry{
			Registry:       checkRegistry,
			Name:           args[0],
			Owner:          checkOwner,
			CurrentVersion: checkCurrent,
		}
		if err := config.ValidateEntry(args[0], &entry); err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}

		result, err := checkEntry(inf, entry)
		displayResults([]entryResult{{name: args[0], result: result, err: err}})
		return
	}

	watchPath, err := config.WatchListPath()
	if err != nil {
		logger.Error("resolving watch list path: %v", err)
		os.Exit(1)
	}
	watchList, err := config.LoadWatchList(watchPath)
	if err != nil {
		logger.Error("loading watch list: %v", err)
		os.Exit(1)
	}
	if err := watchList.ValidateAll(); err != nil {
		logger.Error("invalid watch list: %v", err)
		os.Exit(1)
	}

	var names []string
	if len(args) > 0 {
		if _, exists := watchList.Entries[args[0]]; !exists {
			logger.Error("entry %q not found in %s", args[0], watchPath)
			os.Exit(1)
		}
		names = args
	} else {
		for name := range watchList.Entries {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	results := make([]entryResult, 0, len(names))
	for _, name := range names {
		entry := watchList.Entries[name]
		result, err := checkEntry(inf, entry)
		results = append(results, entryResult{name: name, result: result, err: err})
	}

	displayResults(results)
}

// newInformer wires the informer from config and flags.
func newInformer(cfg *config.Config) *informer.Informer {
	client := registry.NewClient()
	client.Token = cfg.GitHub.Token

	interval := cfg.CheckInterval()
	if checkInterval > 0 {
		interval = checkInterval
	}
	if cfg.NoColor {
		output.NoColor()
	}

	return informer.New(
		informer.WithInterval(interval),
		informer.WithClient(client),
	)
}

// buildRegistry maps a watch entry onto a registry client.
func buildRegistry(client *registry.Client, e config.WatchEntry) (registry.Registry, error) {
	switch e.Registry {
	case "crates":
		return registry.NewCrates(client), nil
	case "github":
		return registry.NewGitHub(client), nil
	case "pypi":
		return registry.NewPyPI(client), nil
	case "html":
		page := registry.NewHTMLPage(client, e.URL)
		page.Selector = e.Selector
		page.XPath = e.XPath
		page.Pattern = e.Pattern
		return page, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidRegistry, e.Registry)
	}
}

// checkEntry runs one update check for a validated watch entry.
func checkEntry(inf *informer.Informer, e config.WatchEntry) (*informer.CheckResult, error) {
	reg, err := buildRegistry(inf.Client(), e)
	if err != nil {
		return nil, err
	}

	pkg := pkgid.New(e.Name)
	if e.Owner != "" {
		pkg = pkgid.NewWithOwner(e.Owner, e.Name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Debug("checking %s on %s (current %s)", pkg, reg.Name(), e.CurrentVersion)
	return inf.Check(ctx, reg, pkg, e.CurrentVersion, checkForce)
}

type entryResult struct {
	name   string
	result *informer.CheckResult
	err    error
}

// displayResults formats and displays check results.
func displayResults(results []entryResult) {
	var updatesFound int
	var errorsFound int

	fmt.Println()
	output.Header.Println("Version Check Results")
	fmt.Println()

	for _, r := range results {
		if r.err != nil {
			errorsFound++
			output.Failed.Printf("  %s: %v\n", r.name, r.err)
			continue
		}

		if r.result.HasUpdate {
			updatesFound++
			cacheIndicator := ""
			if r.result.FromCache {
				cacheIndicator = output.Sprintf(output.Dim, " (cached)")
			}
			output.UpdateAvailable.Printf("  %s: %s%s\n",
				r.name,
				output.FormatVersionChange(r.result.CurrentVersion, r.result.LatestVersion),
				cacheIndicator)
			if url := releaseURL(r.result); url != "" {
				output.Dim.Printf("      %s\n", url)
			}
		} else {
			output.UpToDate.Printf("  %s: %s (up to date)\n", r.name, r.result.CurrentVersion)
		}
	}

	fmt.Println()
	switch {
	case updatesFound > 0:
		output.PrintInfo("Found %d update(s) available", updatesFound)
	case errorsFound == len(results):
		output.PrintWarning("No check succeeded")
	default:
		output.PrintSuccess("All packages are up to date")
	}
	if errorsFound > 0 {
		output.PrintWarning("%d check(s) failed", errorsFound)
		os.Exit(1)
	}
}

// releaseURL points the user at the release page for the new version.
func releaseURL(r *informer.CheckResult) string {
	switch r.Registry {
	case "crates":
		return fmt.Sprintf("https://crates.io/crates/%s/%s", r.Package.Name, r.LatestVersion)
	case "github":
		return fmt.Sprintf("https://github.com/%s/releases/tag/v%s", r.Package, r.LatestVersion)
	case "pypi":
		return fmt.Sprintf("https://pypi.org/project/%s/%s/", r.Package.Name, r.LatestVersion)
	default:
		return ""
	}
}
