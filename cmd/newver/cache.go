package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/newver/newver/internal/cache"
	"github.com/newver/newver/internal/common/logger"
	"github.com/newver/newver/internal/common/output"
	"github.com/newver/newver/internal/config"
	"github.com/newver/newver/internal/pkgid"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset the version cache",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show <entry>",
	Short: "Show the cached version for a watch-list entry",
	Args:  cobra.ExactArgs(1),
	Run:   runCacheShow,
}

var cacheResetCmd = &cobra.Command{
	Use:   "reset <entry>",
	Short: "Recreate the cache file with the entry's current version",
	Args:  cobra.ExactArgs(1),
	Run:   runCacheReset,
}

func init() {
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheResetCmd)
	rootCmd.AddCommand(cacheCmd)
}

// entryVersionFile builds the cache entry for a named watch-list entry.
func entryVersionFile(name string) (*cache.VersionFile, config.WatchEntry) {
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

	entry, exists := watchList.Entries[name]
	if !exists {
		logger.Error("entry %q not found in %s", name, watchPath)
		os.Exit(1)
	}
	if err := config.ValidateEntry(name, &entry); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	pkg := pkgid.New(entry.Name)
	if entry.Owner != "" {
		pkg = pkgid.NewWithOwner(entry.Owner, entry.Name)
	}

	vf, err := cache.NewVersionFile(cache.PlatformResolver{}, entry.Registry, pkg, entry.CurrentVersion)
	if err != nil {
		logger.Error("building cache entry: %v", err)
		os.Exit(1)
	}

	return vf, entry
}

func runCacheShow(cmd *cobra.Command, args []string) {
	vf, _ := entryVersionFile(args[0])

	version, err := vf.ReadVersion()
	if err != nil {
		logger.Error("reading cache: %v", err)
		os.Exit(1)
	}

	age, err := vf.Age()
	if err != nil {
		logger.Error("checking cache age: %v", err)
		os.Exit(1)
	}

	output.Package.Printf("%s\n", args[0])
	output.Info.Printf("  cached version: %s\n", version)
	output.Dim.Printf("  age: %s\n", age.Round(time.Second))
	output.Dim.Printf("  file: %s\n", vf.Path())
}

func runCacheReset(cmd *cobra.Command, args []string) {
	vf, entry := entryVersionFile(args[0])

	if err := vf.Recreate(entry.CurrentVersion); err != nil {
		logger.Error("resetting cache: %v", err)
		os.Exit(1)
	}

	output.PrintSuccess("Cache for %s reset to %s", args[0], entry.CurrentVersion)
}
