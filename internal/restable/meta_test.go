package restable_test

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apkforge/restable/internal/restable"
	"github.com/apkforge/restable/internal/values"
)

func TestAssembleMetaFrameworkFlag(t *testing.T) {
	table := restable.New()
	require.NoError(t, table.AddPackage(newPkg(t, 50, "system", 5), true))

	info, err := table.AssembleMeta(values.Nop{}, "")
	require.NoError(t, err)
	assert.True(t, info.IsFrameworkSet)

	table = restable.New()
	require.NoError(t, table.AddPackage(newPkg(t, 127, "app", 5), true))

	info, err = table.AssembleMeta(values.Nop{}, "")
	require.NoError(t, err)
	assert.False(t, info.IsFrameworkSet)
}

func TestAssembleMetaUsesFramework(t *testing.T) {
	table := restable.New()
	require.NoError(t, table.AddPackage(newPkg(t, 9, "nine", 1), false))
	require.NoError(t, table.AddPackage(newPkg(t, 3, "three", 1), false))
	require.NoError(t, table.AddPackage(newPkg(t, 5, "five", 1), false))

	info, err := table.AssembleMeta(values.Nop{}, "")
	require.NoError(t, err)
	require.NotNil(t, info.UsesFramework)
	assert.Equal(t, []int{3, 5, 9}, info.UsesFramework.IDs)
}

func TestAssembleMetaNoFrameworks(t *testing.T) {
	table := restable.New()
	require.NoError(t, table.AddPackage(newPkg(t, 0x7f, "app", 1), true))

	info, err := table.AssembleMeta(values.Nop{}, "")
	require.NoError(t, err)
	assert.Nil(t, info.UsesFramework)
	assert.Nil(t, info.SDKInfo)
	assert.Nil(t, info.PackageInfo)
}

func TestAssembleMetaSDKInfo(t *testing.T) {
	table := restable.New()
	table.AddSDKInfo("minSdkVersion", "@integer/min_sdk")
	table.AddSDKInfo("targetSdkVersion", "30")

	resolver := values.Static{
		Integers: map[string]string{"@integer/min_sdk": "19"},
	}

	info, err := table.AssembleMeta(resolver, "out")
	require.NoError(t, err)

	want := yaml.MapSlice{
		{Key: "minSdkVersion", Value: "19"},
		{Key: "targetSdkVersion", Value: "30"},
	}
	assert.Equal(t, want, info.SDKInfo)
}

func TestAssembleMetaPackageInfo(t *testing.T) {
	t.Run("no original name omits package info", func(t *testing.T) {
		table := restable.New()
		table.SetPackageRenamed("com.a")

		info, err := table.AssembleMeta(values.Nop{}, "")
		require.NoError(t, err)
		assert.Nil(t, info.PackageInfo)
	})

	t.Run("unchanged name omits rename", func(t *testing.T) {
		table := restable.New()
		table.SetPackageOriginal("com.a")
		table.SetPackageRenamed("com.a")
		table.SetPackageID(0x7f)

		info, err := table.AssembleMeta(values.Nop{}, "")
		require.NoError(t, err)
		require.NotNil(t, info.PackageInfo)
		assert.Empty(t, info.PackageInfo.RenameManifestPackage)
		assert.Equal(t, "127", info.PackageInfo.ForcedPackageID)
	})

	t.Run("renamed package resolves to its id", func(t *testing.T) {
		table := restable.New()
		require.NoError(t, table.AddPackage(newPkg(t, 7, "com.b", 1), true))
		table.SetPackageOriginal("com.a")
		table.SetPackageRenamed("com.b")

		info, err := table.AssembleMeta(values.Nop{}, "")
		require.NoError(t, err)
		require.NotNil(t, info.PackageInfo)
		assert.Equal(t, "com.b", info.PackageInfo.RenameManifestPackage)
		assert.Equal(t, "7", info.PackageInfo.ForcedPackageID)
	})

	t.Run("unresolvable rename keeps context id", func(t *testing.T) {
		table := restable.New()
		table.SetPackageOriginal("com.a")
		table.SetPackageRenamed("com.gone")
		table.SetPackageID(9)

		info, err := table.AssembleMeta(values.Nop{}, "")
		require.NoError(t, err)
		require.NotNil(t, info.PackageInfo)
		assert.Equal(t, "9", info.PackageInfo.ForcedPackageID)
	})
}

func TestAssembleMetaVersionInfo(t *testing.T) {
	table := restable.New()
	table.SetVersionName("@string/version")
	table.SetVersionCode("@integer/code")

	resolver := values.Static{
		Strings:  map[string]string{"@string/version": "1.2.3"},
		Integers: map[string]string{"@integer/code": "42"},
	}

	info, err := table.AssembleMeta(resolver, "out")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", info.VersionInfo.VersionName)
	// Version codes pass through untouched.
	assert.Equal(t, "@integer/code", info.VersionInfo.VersionCode)
}

func TestAssembleMetaFlags(t *testing.T) {
	table := restable.New()
	table.SetSharedLibrary(true)
	table.SetSparseResources(true)

	info, err := table.AssembleMeta(values.Nop{}, "")
	require.NoError(t, err)
	assert.True(t, info.SharedLibrary)
	assert.True(t, info.SparseResources)
}
