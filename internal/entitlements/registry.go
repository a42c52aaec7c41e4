package entitlements

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// FreePlan is the fallback for unknown or missing plans.
const FreePlan = "free"

// Registry maps subscription plans to their limits. Plans ship as an
// embedded YAML file so product can tune limits without code changes.
type Registry struct {
	plans map[string]PlanLimits
	mu    sync.RWMutex
}

// NewRegistry creates a registry and loads the embedded plans file.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/plans.yaml")
	if err != nil {
		return nil, fmt.Errorf("read plans.yaml: %w", err)
	}

	var file planFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal plans.yaml: %w", err)
	}

	if _, ok := file.Plans[FreePlan]; !ok {
		return nil, fmt.Errorf("plans.yaml missing required %q plan", FreePlan)
	}

	return &Registry{plans: file.Plans}, nil
}

// Limits returns the limits for a plan, falling back to the free plan for
// unknown names.
func (r *Registry) Limits(plan string) PlanLimits {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limits, ok := r.plans[plan]; ok {
		return limits
	}
	return r.plans[FreePlan]
}

// CanCreateSharedFolders reports whether the plan includes shared folders.
func (r *Registry) CanCreateSharedFolders(plan string) bool {
	return r.Limits(plan).SharedFolders
}

// WithinFolderQuota reports whether owning one more folder stays within
// the plan's cap.
func (r *Registry) WithinFolderQuota(plan string, owned int) bool {
	limits := r.Limits(plan)
	return limits.MaxFolders == 0 || owned < limits.MaxFolders
}

// WithinVideoQuota reports whether adding one more clip to a folder stays
// within the plan's per-folder cap.
func (r *Registry) WithinVideoQuota(plan string, existing int) bool {
	limits := r.Limits(plan)
	return limits.MaxVideosPerFolder == 0 || existing < limits.MaxVideosPerFolder
}
