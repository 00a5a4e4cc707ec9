package analyze

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/portmeta/portmeta/internal/models"
)

func TestAssembleSortsKeysAndTargets(t *testing.T) {
	m := &models.PortManifest{Name: "multi"}
	targets := TargetMap{
		"zeta":  {"z::b", "z::a"},
		"alpha": {"a::one"},
	}

	record := Assemble(m, targets, ConfigMap{}, "note")

	want := []models.PackageEntry{
		{Name: "alpha", Targets: []string{"a::one"}},
		{Name: "zeta", Targets: []string{"z::a", "z::b"}},
	}
	if diff := cmp.Diff(want, record.Packages); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}
	require.Equal(t, "note", record.Usage)
}

func TestAssembleUnionsConfigOnlyKeys(t *testing.T) {
	m := &models.PortManifest{Name: "cfg"}
	configs := ConfigMap{"widget": "Widget"}

	record := Assemble(m, TargetMap{}, configs, "note")

	require.Len(t, record.Packages, 1)
	require.Equal(t, "Widget", record.Packages[0].Name)
	require.Empty(t, record.Packages[0].Targets)
}

func TestAssembleConfigBindingOverridesDisplayName(t *testing.T) {
	m := &models.PortManifest{Name: "zlib"}
	targets := TargetMap{"zlib": {"ZLIB::ZLIB"}}
	configs := ConfigMap{"zlib": "Zlib"}

	record := Assemble(m, targets, configs, "note")

	require.Equal(t, "Zlib", record.Packages[0].Name)
}

func TestAssemblePreservesDuplicateTargets(t *testing.T) {
	m := &models.PortManifest{Name: "dup"}
	targets := TargetMap{"dup": {"dup::core", "dup::aux", "dup::core"}}

	record := Assemble(m, targets, ConfigMap{}, "note")

	require.Equal(t, []string{"dup::aux", "dup::core", "dup::core"}, record.Packages[0].Targets)
}

func TestAssembleSynthesizesUsageFromFirstSortedEntry(t *testing.T) {
	m := &models.PortManifest{Name: "zlib"}
	targets := TargetMap{"zlib": {"ZLIB::ZLIB"}}
	configs := ConfigMap{"zlib": "zlib"}

	record := Assemble(m, targets, configs, "")

	want := `The package zlib provides CMake targets:\r\n\r\n    find_package(zlib CONFIG REQUIRED)\r\n    target_link_libraries(main PRIVATE ZLIB::ZLIB)\r\n`
	require.Equal(t, want, record.Usage)
}

func TestAssembleSharedSynthesizedUsageAcrossEntries(t *testing.T) {
	m := &models.PortManifest{Name: "multi"}
	targets := TargetMap{
		"beta":  {"b::lib"},
		"alpha": {"a::lib"},
	}

	record := Assemble(m, targets, ConfigMap{}, "")

	// One note, built from the first sorted entry, shared by the record
	want := `The package multi provides CMake targets:\r\n\r\n    find_package(alpha CONFIG REQUIRED)\r\n    target_link_libraries(main PRIVATE a::lib)\r\n`
	require.Equal(t, want, record.Usage)
}

func TestAssembleNoSynthesisWithoutKeys(t *testing.T) {
	m := &models.PortManifest{Name: "empty"}

	record := Assemble(m, TargetMap{}, ConfigMap{}, "")

	require.Empty(t, record.Packages)
	require.Equal(t, "", record.Usage)
}

func TestAssembleKeepsCapturedUsage(t *testing.T) {
	m := &models.PortManifest{Name: "zlib"}
	targets := TargetMap{"zlib": {"ZLIB::ZLIB"}}

	record := Assemble(m, targets, ConfigMap{}, `custom note\n`)

	require.Equal(t, `custom note\n`, record.Usage)
}

func TestAssembleEscapesDescription(t *testing.T) {
	m := &models.PortManifest{Name: "zlib", Description: "A compression library\nwith a second line"}

	record := Assemble(m, TargetMap{}, ConfigMap{}, "")

	require.Equal(t, `A compression library\nwith a second line`, record.PortDescription)
}
