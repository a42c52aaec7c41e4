package entitlements

// PlanLimits describes what one subscription plan may do.
type PlanLimits struct {
	// SharedFolders gates shared folder creation entirely
	SharedFolders bool `yaml:"shared_folders"`

	// MaxFolders caps owned shared folders; 0 means unlimited
	MaxFolders int `yaml:"max_folders"`

	// MaxVideosPerFolder caps clips per folder; 0 means unlimited
	MaxVideosPerFolder int `yaml:"max_videos_per_folder"`
}

// planFile is the on-disk shape of the embedded plans.yaml
type planFile struct {
	Plans map[string]PlanLimits `yaml:"plans"`
}
