package cmd

import (
	"github.com/heftdev/heft/internal/detector"
	"github.com/heftdev/heft/internal/detectors/container"
	"github.com/heftdev/heft/internal/detectors/ide"
	"github.com/heftdev/heft/internal/detectors/packagecache"
	"github.com/heftdev/heft/internal/detectors/project"
)

// registeredDetectors returns the detector set in a fixed registration
// order. This order is part of the final entry-ordering contract (§5): it
// never changes based on config or completion time.
func registeredDetectors() []detector.Detector {
	return []detector.Detector{
		&project.Detector{Logger: logger},
		&packagecache.Detector{Logger: logger},
		&container.Detector{Logger: logger},
		&ide.Detector{Logger: logger},
	}
}
