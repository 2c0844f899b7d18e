package restable

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/apkforge/restable/internal/logging"
	"github.com/apkforge/restable/internal/resid"
)

const (
	// sharedLibraryPackageID is the package id substituted for the 0x00
	// package byte when no explicit context id has been set. Fixed
	// convention of the platform tooling; do not change.
	sharedLibraryPackageID = 2

	// frameworkPackageName is the reserved name of the platform base
	// framework, excluded from the highest-spec heuristic.
	frameworkPackageName = "android"

	// maxFrameworkPackageID bounds the platform-reserved id range [1, 63].
	maxFrameworkPackageID = 63
)

// Table is the registry of all loaded resource packages.
//
// Packages are indexed by id and by name; the two indices stay in lockstep
// because AddPackage is the only insert path and it updates both or neither.
type Table struct {
	byID   map[uint8]Package
	byName map[string]Package
	main   []Package
	frame  []Package

	loader FrameworkLoader
	log    *logging.Logger

	packageRenamed  string
	packageOriginal string
	packageID       uint8
	analysisMode    bool
	sharedLibrary   bool
	sparseResources bool

	sdkOrder []string
	sdkInfo  map[string]string

	versionName string
	versionCode string
}

// New creates an empty table with no framework loader. Lookups of unknown
// package ids fail immediately.
func New() *Table {
	return NewWithLoader(nil)
}

// NewWithLoader creates an empty table that delegates unknown package ids
// to the given framework loader.
func NewWithLoader(loader FrameworkLoader) *Table {
	return &Table{
		byID:    make(map[uint8]Package),
		byName:  make(map[string]Package),
		loader:  loader,
		log:     logging.NewNop(),
		sdkInfo: make(map[string]string),
	}
}

// SetLogger attaches a logger for registration and load events.
func (t *Table) SetLogger(log *logging.Logger) {
	if log != nil {
		t.log = log
	}
}

// AddPackage registers a package as either a main or a framework package.
// Fails with ErrDuplicateID or ErrDuplicateName without modifying the table.
func (t *Table) AddPackage(pkg Package, main bool) error {
	id := pkg.ID()
	if _, ok := t.byID[id]; ok {
		return fmt.Errorf("package id=%d: %w", id, ErrDuplicateID)
	}
	name := pkg.Name()
	if _, ok := t.byName[name]; ok {
		return fmt.Errorf("package name=%s: %w", name, ErrDuplicateName)
	}

	t.byID[id] = pkg
	t.byName[name] = pkg
	if main {
		t.main = append(t.main, pkg)
	} else {
		t.frame = append(t.frame, pkg)
	}

	t.log.Debug("package registered",
		zap.Uint8("id", id),
		zap.String("name", name),
		zap.Bool("main", main),
		zap.Int("specs", pkg.SpecCount()),
	)
	return nil
}

// PackageByID returns the package with the given id. On a miss it asks the
// framework loader, if one is configured; otherwise, or if the loader cannot
// supply the package, it fails with ErrUndefinedPackage.
func (t *Table) PackageByID(id uint8) (Package, error) {
	if pkg, ok := t.byID[id]; ok {
		return pkg, nil
	}
	if t.loader != nil {
		pkg, err := t.loader.LoadPackage(t, id)
		if err != nil {
			return nil, fmt.Errorf("package id=%d: %w: %v", id, ErrUndefinedPackage, err)
		}
		return pkg, nil
	}
	return nil, fmt.Errorf("package id=%d: %w", id, ErrUndefinedPackage)
}

// PackageByName returns the package with the given name or fails with
// ErrUndefinedPackage.
func (t *Table) PackageByName(name string) (Package, error) {
	pkg, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("package name=%s: %w", name, ErrUndefinedPackage)
	}
	return pkg, nil
}

// MainPackages returns the main packages in registration order.
func (t *Table) MainPackages() []Package {
	return t.main
}

// FrameworkPackages returns the framework packages in registration order.
func (t *Table) FrameworkPackages() []Package {
	return t.frame
}

// HighestSpecPackage selects the registered package with the most resource
// specs, skipping the platform framework package ("android"). Ids are
// scanned in ascending numeric order so ties are deterministic. When every
// package is excluded, falls back to package id 1.
func (t *Table) HighestSpecPackage() (Package, error) {
	ids := make([]int, 0, len(t.byID))
	for id := range t.byID {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	var best uint8
	var specs int
	for _, id := range ids {
		pkg := t.byID[uint8(id)]
		if pkg.SpecCount() > specs && !strings.EqualFold(pkg.Name(), frameworkPackageName) {
			specs = pkg.SpecCount()
			best = pkg.ID()
		}
	}
	if best == 0 {
		// Only the platform framework (or nothing) is loaded.
		return t.PackageByID(1)
	}
	return t.PackageByID(best)
}

// CurrentPackage resolves the package the current context refers to:
// the explicit context id when it matches a registered package, else the
// sole main package, else the HighestSpecPackage heuristic.
func (t *Table) CurrentPackage() (Package, error) {
	if pkg, ok := t.byID[t.packageID]; ok {
		return pkg, nil
	}
	if len(t.main) == 1 {
		return t.main[0], nil
	}
	return t.HighestSpecPackage()
}

// ResolveID resolves a raw 32-bit identifier to its spec.
//
// A package byte of 0x00 means a shared library is referencing its own
// resources, so the identifier is rewritten to the current context id
// before lookup (id 2 when no context id is set).
func (t *Table) ResolveID(raw uint32) (Spec, error) {
	id := resid.FromRaw(raw)
	if id.Package == 0 {
		if t.packageID == 0 {
			id.Package = sharedLibraryPackageID
		} else {
			id.Package = t.packageID
		}
	}
	return t.ResolveSpec(id)
}

// ResolveSpec resolves an already unpacked identifier to its spec.
func (t *Table) ResolveSpec(id resid.ID) (Spec, error) {
	pkg, err := t.PackageByID(id.Package)
	if err != nil {
		return nil, err
	}
	return pkg.Spec(id)
}

// ResolveValue resolves a (package, type, resource) name triple to the
// resource's default value, failing at the first missing stage.
func (t *Table) ResolveValue(pkgName, typeName, resName string) (Value, error) {
	pkg, err := t.PackageByName(pkgName)
	if err != nil {
		return nil, err
	}
	typ, err := pkg.Type(typeName)
	if err != nil {
		return nil, err
	}
	spec, err := typ.Spec(resName)
	if err != nil {
		return nil, err
	}
	return spec.Default(), nil
}

// IsFrameworkSet reports whether this resource set itself behaves as a
// framework, i.e. any main package uses an id in the platform-reserved
// range [1, 63].
func (t *Table) IsFrameworkSet() bool {
	for _, pkg := range t.main {
		if pkg.ID() > 0 && pkg.ID() <= maxFrameworkPackageID {
			return true
		}
	}
	return false
}

// SetPackageRenamed records the manifest package name after renaming.
func (t *Table) SetPackageRenamed(name string) { t.packageRenamed = name }

// SetPackageOriginal records the manifest package name before renaming.
func (t *Table) SetPackageOriginal(name string) { t.packageOriginal = name }

// SetPackageID sets the current context package id. Zero means unset.
func (t *Table) SetPackageID(id uint8) { t.packageID = id }

// SetAnalysisMode toggles analysis mode.
func (t *Table) SetAnalysisMode(on bool) { t.analysisMode = on }

// SetSharedLibrary flags the resource set as a shared library.
func (t *Table) SetSharedLibrary(on bool) { t.sharedLibrary = on }

// SetSparseResources flags the resource set as using sparse entries.
func (t *Table) SetSparseResources(on bool) { t.sparseResources = on }

// PackageRenamed returns the renamed manifest package name.
func (t *Table) PackageRenamed() string { return t.packageRenamed }

// PackageOriginal returns the original manifest package name.
func (t *Table) PackageOriginal() string { return t.packageOriginal }

// PackageID returns the current context package id (0 = unset).
func (t *Table) PackageID() uint8 { return t.packageID }

// AnalysisMode reports whether analysis mode is enabled.
func (t *Table) AnalysisMode() bool { return t.analysisMode }

// SharedLibrary reports whether the resource set is a shared library.
func (t *Table) SharedLibrary() bool { return t.sharedLibrary }

// SparseResources reports whether the resource set uses sparse entries.
func (t *Table) SparseResources() bool { return t.sparseResources }

// AddSDKInfo records one SDK bound (e.g. minSdkVersion). Insertion order is
// preserved for manifest output; setting an existing key updates it in place.
func (t *Table) AddSDKInfo(key, value string) {
	if _, ok := t.sdkInfo[key]; !ok {
		t.sdkOrder = append(t.sdkOrder, key)
	}
	t.sdkInfo[key] = value
}

// ClearSDKInfo drops all recorded SDK bounds.
func (t *Table) ClearSDKInfo() {
	t.sdkOrder = nil
	t.sdkInfo = make(map[string]string)
}

// SDKInfo returns the recorded SDK bound keys in insertion order along with
// a lookup map. The returned map is live; callers must not mutate it.
func (t *Table) SDKInfo() ([]string, map[string]string) {
	return t.sdkOrder, t.sdkInfo
}

// SetVersionName records the manifest version name.
func (t *Table) SetVersionName(name string) { t.versionName = name }

// SetVersionCode records the manifest version code.
func (t *Table) SetVersionCode(code string) { t.versionCode = code }

// VersionName returns the recorded version name.
func (t *Table) VersionName() string { return t.versionName }

// VersionCode returns the recorded version code.
func (t *Table) VersionCode() string { return t.versionCode }
