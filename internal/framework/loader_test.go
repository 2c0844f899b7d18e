package framework

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apkforge/restable/internal/restable"
)

func androidDescriptor() *Descriptor {
	return &Descriptor{
		ID:   1,
		Name: "android",
		Types: []TypeDescriptor{
			{
				ID:   0x01,
				Name: "string",
				Entries: []EntryDescriptor{
					{ID: 0x0000, Name: "ok", Value: "OK"},
					{ID: 0x0001, Name: "cancel", Value: "Cancel"},
				},
			},
		},
	}
}

func TestInstallAndLoad(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(dir, "")
	require.NoError(t, loader.Install(androidDescriptor()))

	table := restable.NewWithLoader(loader)

	// Looking up an unknown id pulls the package from the cache and
	// registers it as a framework package.
	pkg, err := table.PackageByID(1)
	require.NoError(t, err)
	assert.Equal(t, "android", pkg.Name())
	assert.Equal(t, 2, pkg.SpecCount())
	require.Len(t, table.FrameworkPackages(), 1)

	spec, err := table.ResolveID(0x01010001)
	require.NoError(t, err)
	assert.Equal(t, "cancel", spec.Name())
	assert.Equal(t, "Cancel", spec.Default().String())
}

func TestInstallWithTag(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(dir, "v34")
	require.NoError(t, loader.Install(androidDescriptor()))

	_, err := os.Stat(filepath.Join(dir, "1-v34.json.gz"))
	require.NoError(t, err)

	// A loader without the tag must not see the tagged entry.
	untagged := NewLoader(dir, "")
	_, err = untagged.LoadPackage(restable.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadPackageNotInstalled(t *testing.T) {
	loader := NewLoader(t.TempDir(), "")

	_, err := loader.LoadPackage(restable.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	// Through the table the miss surfaces as an undefined package.
	table := restable.NewWithLoader(loader)
	_, err = table.PackageByID(1)
	assert.ErrorIs(t, err, restable.ErrUndefinedPackage)
}

func TestLoadPackageCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.json.gz"), []byte("not gzip"), 0o644))

	loader := NewLoader(dir, "")
	_, err := loader.LoadPackage(restable.New(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt cache entry")
}

func TestLoadPackageIDMismatch(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(dir, "")

	desc := androidDescriptor()
	require.NoError(t, loader.Install(desc))

	// Rename the entry so the file name no longer matches the descriptor.
	require.NoError(t, os.Rename(
		filepath.Join(dir, "1.json.gz"),
		filepath.Join(dir, "2.json.gz"),
	))

	_, err := loader.LoadPackage(restable.New(), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "descriptor id=1")
}

func TestLoadFileAsMainPackage(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(dir, "")

	desc := &Descriptor{
		ID:   0x7f,
		Name: "app",
		Types: []TypeDescriptor{
			{ID: 0x01, Name: "string", Entries: []EntryDescriptor{
				{ID: 0x0000, Name: "app_name", Value: "Demo"},
			}},
		},
	}
	require.NoError(t, loader.Install(desc))

	table := restable.New()
	pkg, err := loader.LoadFile(table, filepath.Join(dir, "127.json.gz"), true)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x7f), pkg.ID())
	require.Len(t, table.MainPackages(), 1)
	assert.Empty(t, table.FrameworkPackages())
}
