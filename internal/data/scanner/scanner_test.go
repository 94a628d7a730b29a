package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephyslab/sweepscope/internal/core/model"
)

func writeManifest(t *testing.T, dir, name string, m model.RecordingManifest) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, m.Save(path))
	return path
}

func TestScanEmptyDirectory(t *testing.T) {
	files, err := NewBundleScanner(t.TempDir()).Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanNonExistentDirectory(t *testing.T) {
	files, err := NewBundleScanner("/path/that/does/not/exist").Scan()
	require.NoError(t, err, "unreadable entries are skipped, not fatal")
	assert.Empty(t, files)
}

func TestScanFindsJSONOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "b.JSON", "sub/c.json", "raw.f32", "notes.txt"} {
		full := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("{}"), 0644))
	}

	files, err := NewBundleScanner(dir).Scan()
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestDiscoverKeepsValidManifests(t *testing.T) {
	dir := t.TempDir()

	writeManifest(t, dir, "rec-b/manifest.json", model.RecordingManifest{
		Name:          "session-b",
		SampleFile:    "samples.f32",
		Format:        model.FormatFloat32,
		TotalChannels: 4,
		SamplingRate:  30000,
	})
	writeManifest(t, dir, "rec-a/manifest.json", model.RecordingManifest{
		Name:          "session-a",
		SampleFile:    "samples.i16",
		Format:        model.FormatInt16,
		TotalChannels: 2,
		SamplingRate:  1000,
	})

	// Unrelated JSON in the tree must be skipped, not fail discovery.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"),
		[]byte(`{"theme":"dark"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"),
		[]byte(`{not json`), 0644))

	bundles, err := NewBundleScanner(dir).Discover()
	require.NoError(t, err)
	require.Len(t, bundles, 2)

	// Sorted by recording name, paths resolved relative to each manifest.
	assert.Equal(t, "session-a", bundles[0].Manifest.Name)
	assert.Equal(t, "session-b", bundles[1].Manifest.Name)
	assert.Equal(t, filepath.Join(dir, "rec-a", "samples.i16"), bundles[0].Manifest.SampleFile)
}
