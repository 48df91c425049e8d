package packagecache

import (
	"path/filepath"

	"github.com/heftdev/heft/internal/platform"
)

// cacheEntry is one static (tool, per-OS path) pair from §4.4's table.
type cacheEntry struct {
	tool string
	path func(r *platform.Resolver) []string
}

// staticCaches is the closed table of package-manager cache locations
// probed by existence. Multiple paths (e.g. cargo's registry and git
// trees) are summed under one tool entry.
var staticCaches = []cacheEntry{
	{
		tool: "npm",
		path: func(r *platform.Resolver) []string {
			switch r.OS {
			case platform.Windows:
				// npm caches under %AppData% (Roaming), not %LocalAppData%.
				return []string{filepath.Join(r.ConfigDir(), "npm-cache")}
			default:
				return []string{filepath.Join(r.Home(), ".npm")}
			}
		},
	},
	{
		tool: "pip",
		path: func(r *platform.Resolver) []string {
			switch r.OS {
			case platform.Windows:
				return []string{filepath.Join(r.CacheDir(), "pip", "Cache")}
			default:
				return []string{filepath.Join(r.CacheDir(), "pip")}
			}
		},
	},
	{
		tool: "cargo",
		path: func(r *platform.Resolver) []string {
			return []string{
				filepath.Join(r.Home(), ".cargo", "registry"),
				filepath.Join(r.Home(), ".cargo", "git"),
			}
		},
	},
	{
		tool: "yarn",
		path: func(r *platform.Resolver) []string {
			switch r.OS {
			case platform.Darwin:
				return []string{filepath.Join(r.CacheDir(), "Yarn")}
			case platform.Windows:
				return []string{filepath.Join(r.CacheDir(), "Yarn", "Cache")}
			default:
				return []string{filepath.Join(r.CacheDir(), "yarn")}
			}
		},
	},
	{
		tool: "pnpm",
		path: func(r *platform.Resolver) []string {
			switch r.OS {
			case platform.Darwin:
				return []string{filepath.Join(r.Home(), "Library", "pnpm", "store")}
			case platform.Windows:
				return []string{filepath.Join(r.CacheDir(), "pnpm", "store")}
			default:
				return []string{filepath.Join(r.Home(), ".local", "share", "pnpm", "store")}
			}
		},
	},
}
