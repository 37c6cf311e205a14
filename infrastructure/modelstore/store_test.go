package modelstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/promo-impact-api/internal/usecases/modeling"
)

func trainArtifact(t *testing.T, createdAt time.Time) *modeling.Artifact {
	t.Helper()

	rows, target := modeling.SyntheticDataset(100, 42)

	artifact, err := modeling.NewService().Train(rows, target, modeling.TrainOptions{
		ModelType: modeling.ModelRandomForest,
	})
	require.NoError(t, err)

	artifact.CreatedAt = createdAt
	return artifact
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	artifact := trainArtifact(t, time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))

	modelID, err := store.Save(artifact)
	require.NoError(t, err)
	assert.Equal(t, "random_forest_model_20240301_120000", modelID)

	loaded, err := store.Load(modelID)
	require.NoError(t, err)

	assert.Equal(t, artifact.ModelType, loaded.ModelType)
	assert.Equal(t, artifact.TrainingRows, loaded.TrainingRows)
	assert.Equal(t, artifact.FeatureImportance, loaded.FeatureImportance)

	// O pipeline desserializado prediz igual ao original
	rows, _ := modeling.SyntheticDataset(10, 7)
	for _, row := range rows {
		want, err := artifact.Pipeline.PredictOne(row)
		require.NoError(t, err)

		got, err := loaded.Pipeline.PredictOne(row)
		require.NoError(t, err)

		assert.InDelta(t, want, got, 1e-9)
	}
}

func TestStoreSaveWritesMetadataSidecar(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	artifact := trainArtifact(t, time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))

	modelID, err := store.Save(artifact)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "random_forest_metadata_20240301_120000.json"))
	require.NoError(t, err)

	var metadata Metadata
	require.NoError(t, json.Unmarshal(raw, &metadata))

	assert.Equal(t, modelID, metadata.ModelID)
	assert.Equal(t, modeling.ModelRandomForest, metadata.ModelType)
	assert.Equal(t, artifact.TrainingRows, metadata.TrainingRows)
	assert.NotEmpty(t, metadata.Features)
	require.NotNil(t, artifact.Metrics)
	assert.Equal(t, *artifact.Metrics, metadata.Metrics)
}

func TestStoreLoadMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("random_forest_model_20240101_000000")
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "random_forest_model_20240101_000000"+modelExtension)
	require.NoError(t, os.WriteFile(path, []byte("isso não é gob"), 0o644))

	_, err = store.Load("random_forest_model_20240101_000000")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArtifactCorrupt)

	var corrupt *CorruptError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, path, corrupt.Path)
}

func TestStoreLatestPicksNewestTrainingDate(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	older := trainArtifact(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	newer := trainArtifact(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	_, err = store.Save(older)
	require.NoError(t, err)

	newerID, err := store.Save(newer)
	require.NoError(t, err)

	_, latestID, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, newerID, latestID)
}

func TestStoreLatestFallsBackToModTime(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	artifact := trainArtifact(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	modelID, err := store.Save(artifact)
	require.NoError(t, err)

	// Sem o sidecar, a decisão cai para o mtime do .gob
	require.NoError(t, os.Remove(filepath.Join(dir, "random_forest_metadata_20240101_000000.json")))

	_, latestID, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, modelID, latestID)
}

func TestStoreLatestEmptyDir(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Latest()
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestStoreListSortedByTrainingDate(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	for _, createdAt := range []time.Time{
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	} {
		_, err := store.Save(trainArtifact(t, createdAt))
		require.NoError(t, err)
	}

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 3)

	for i := 1; i < len(list); i++ {
		assert.True(t, !list[i-1].TrainingDate.Before(list[i].TrainingDate))
	}
	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), list[0].TrainingDate)
}

func TestStoreListSkipsUnreadableSidecar(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.Save(trainArtifact(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	bad := filepath.Join(dir, "gradient_boosting_metadata_20240601_000000.json")
	require.NoError(t, os.WriteFile(bad, []byte("{quebrado"), 0o644))

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "random_forest_model_20240101_000000", list[0].ModelID)
}
