package restable

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/apkforge/restable/internal/meta"
	"github.com/apkforge/restable/internal/values"
)

// sdkKeys are the SDK bounds eligible for placeholder substitution.
var sdkKeys = [...]string{"minSdkVersion", "targetSdkVersion", "maxSdkVersion"}

// AssembleMeta materializes the summary record for the output manifest.
//
// Assembly is best-effort in exactly one place: when the renamed package
// name does not resolve to a registered package, the already-known context
// id is kept instead of failing. Every other failure aborts.
func (t *Table) AssembleMeta(resolver values.Resolver, outDir string) (*meta.Info, error) {
	info := &meta.Info{
		IsFrameworkSet:  t.IsFrameworkSet(),
		SharedLibrary:   t.sharedLibrary,
		SparseResources: t.sparseResources,
	}

	if len(t.frame) > 0 {
		info.UsesFramework = t.usesFramework()
	}
	if len(t.sdkOrder) > 0 {
		info.SDKInfo = t.sdkSummary(resolver, outDir)
	}

	pkgInfo, err := t.packageSummary()
	if err != nil {
		return nil, err
	}
	info.PackageInfo = pkgInfo

	info.VersionInfo = meta.VersionInfo{
		VersionName: t.versionName,
		VersionCode: t.versionCode,
	}
	if resolved, ok := resolver.ResolveString(outDir, t.versionName); ok {
		info.VersionInfo.VersionName = resolved
	}

	return info, nil
}

// usesFramework collects framework package ids sorted ascending, so the
// dependency list is reproducible regardless of registration order.
func (t *Table) usesFramework() *meta.UsesFramework {
	ids := make([]int, 0, len(t.frame))
	for _, pkg := range t.frame {
		ids = append(ids, int(pkg.ID()))
	}
	sort.Ints(ids)
	return &meta.UsesFramework{IDs: ids}
}

// sdkSummary emits the SDK bounds in insertion order, substituting concrete
// values for the recognized keys where the resolver knows one.
func (t *Table) sdkSummary(resolver values.Resolver, outDir string) yaml.MapSlice {
	resolved := make(map[string]string, len(sdkKeys))
	for _, key := range sdkKeys {
		value, ok := t.sdkInfo[key]
		if !ok {
			continue
		}
		if concrete, ok := resolver.ResolveInteger(outDir, value); ok {
			resolved[key] = concrete
		}
	}

	out := make(yaml.MapSlice, 0, len(t.sdkOrder))
	for _, key := range t.sdkOrder {
		value := t.sdkInfo[key]
		if concrete, ok := resolved[key]; ok {
			value = concrete
		}
		out = append(out, yaml.MapItem{Key: key, Value: value})
	}
	return out
}

// packageSummary emits the rename record. No record is emitted when the
// original package name is unknown; the rename line itself is emitted only
// when the rename changes the name.
func (t *Table) packageSummary() (*meta.PackageInfo, error) {
	renamed := t.packageRenamed
	original := t.packageOriginal

	id := t.packageID
	if pkg, err := t.PackageByName(renamed); err == nil {
		id = pkg.ID()
	} else if !errors.Is(err, ErrUndefinedPackage) {
		return nil, err
	}

	if original == "" {
		return nil, nil
	}

	info := &meta.PackageInfo{ForcedPackageID: strconv.Itoa(int(id))}
	if !strings.EqualFold(renamed, original) {
		info.RenameManifestPackage = renamed
	}
	return info, nil
}
