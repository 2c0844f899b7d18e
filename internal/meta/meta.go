// Package meta defines the summary record describing a processed resource
// set and its YAML manifest encoding.
package meta

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Info is the immutable summary assembled from a resource table at the end
// of a processing pass. It is what the output manifest serializes.
type Info struct {
	IsFrameworkSet  bool           `yaml:"isFrameworkApk"`
	UsesFramework   *UsesFramework `yaml:"usesFramework,omitempty"`
	SDKInfo         yaml.MapSlice  `yaml:"sdkInfo,omitempty"`
	PackageInfo     *PackageInfo   `yaml:"packageInfo,omitempty"`
	VersionInfo     VersionInfo    `yaml:"versionInfo"`
	SharedLibrary   bool           `yaml:"sharedLibrary"`
	SparseResources bool           `yaml:"sparseResources"`
}

// UsesFramework lists the framework packages a resource set depends on,
// by numeric id in ascending order.
type UsesFramework struct {
	IDs []int `yaml:"ids"`
}

// PackageInfo records manifest-package renaming. RenameManifestPackage is
// set only when the rename actually changes the name; ForcedPackageID is
// always set.
type PackageInfo struct {
	RenameManifestPackage string `yaml:"renameManifestPackage,omitempty"`
	ForcedPackageID       string `yaml:"forcedPackageId"`
}

// VersionInfo carries the manifest version fields.
type VersionInfo struct {
	VersionName string `yaml:"versionName,omitempty"`
	VersionCode string `yaml:"versionCode,omitempty"`
}

// Save writes the manifest to path as YAML.
func Save(path string, info *Info) error {
	data, err := yaml.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// Load reads a manifest previously written by Save.
func Load(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var info Info
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}
	return &info, nil
}
