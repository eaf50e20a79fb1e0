// Package deps reports whether the external tools dmg-license drives are
// installed.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"dmglicense/internal/config"
	"dmglicense/internal/services"
)

// Requirement defines an external dependency dmg-license relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// AttachRequirements lists the tools needed to write resources into an image.
func AttachRequirements(cfg *config.Config) []Requirement {
	binary := config.Default().HDIUtil.Binary
	if cfg != nil {
		binary = cfg.HDIUtil.Binary
	}
	return []Requirement{{
		Name:        "hdiutil",
		Command:     binary,
		Description: "Writes license resources into UDIF disk images",
	}}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Require fails with services.ErrExternalTool naming the first missing
// mandatory dependency.
func Require(statuses []Status) error {
	for _, status := range statuses {
		if status.Available || status.Optional {
			continue
		}
		return services.Wrap(services.ErrExternalTool, "deps", status.Name, status.Detail, nil)
	}
	return nil
}
