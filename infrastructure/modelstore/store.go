// Package modelstore persiste artefatos de modelo em disco: o pipeline
// serializado via gob e um sidecar JSON de metadados legível por humanos.
package modelstore

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/promo-impact-api/internal/domain"
	"github.com/vfg2006/promo-impact-api/internal/usecases/modeling"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	modelExtension    = ".gob"
	metadataExtension = ".json"
	stampLayout       = "20060102_150405"
)

// Metadata é o sidecar JSON gravado ao lado de cada artefato
type Metadata struct {
	ModelID           string                   `json:"model_id"`
	ModelType         string                   `json:"model_type"`
	TrainingDate      time.Time                `json:"training_date"`
	TrainingRows      int                      `json:"training_rows"`
	Metrics           domain.ValidationMetrics `json:"metrics"`
	Features          []string                 `json:"features"`
	FeatureImportance []modeling.FeatureWeight `json:"feature_importance"`
}

type Store interface {
	Save(artifact *modeling.Artifact) (string, error)
	Load(modelID string) (*modeling.Artifact, error)
	Latest() (*modeling.Artifact, string, error)
	List() ([]Metadata, error)
}

type fileStore struct {
	dir string
}

func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "Erro ao criar o diretório de modelos")
	}

	return &fileStore{dir: dir}, nil
}

// Save grava o artefato e seu sidecar de metadados com o mesmo carimbo de
// tempo. A escrita é em arquivo temporário seguido de rename, para que um
// leitor concorrente nunca enxergue um artefato pela metade.
func (s *fileStore) Save(artifact *modeling.Artifact) (string, error) {
	stamp := artifact.CreatedAt.Format(stampLayout)
	modelID := fmt.Sprintf("%s_model_%s", artifact.ModelType, stamp)

	modelPath := filepath.Join(s.dir, modelID+modelExtension)
	if err := s.writeModel(modelPath, artifact); err != nil {
		return "", err
	}

	metadata := Metadata{
		ModelID:           modelID,
		ModelType:         artifact.ModelType,
		TrainingDate:      artifact.CreatedAt,
		TrainingRows:      artifact.TrainingRows,
		Features:          append(append([]string{}, artifact.NumericalFeatures...), artifact.CategoricalFeatures...),
		FeatureImportance: artifact.FeatureImportance,
	}
	if artifact.Metrics != nil {
		metadata.Metrics = *artifact.Metrics
	}

	metadataPath := filepath.Join(s.dir, fmt.Sprintf("%s_metadata_%s%s", artifact.ModelType, stamp, metadataExtension))
	if err := s.writeMetadata(metadataPath, metadata); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"model_id": modelID,
		"path":     modelPath,
	}).Info("Artefato de modelo persistido")

	return modelID, nil
}

// Load desserializa o artefato identificado por modelID. Qualquer falha de
// decodificação ou artefato sem pipeline vira CorruptError.
func (s *fileStore) Load(modelID string) (*modeling.Artifact, error) {
	path := filepath.Join(s.dir, modelID+modelExtension)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrArtifactNotFound
		}
		return nil, errors.Wrap(err, "Erro ao abrir o artefato de modelo")
	}
	defer file.Close()

	var artifact modeling.Artifact
	if err := gob.NewDecoder(file).Decode(&artifact); err != nil {
		return nil, newCorruptError(path, err)
	}

	if artifact.Pipeline == nil || artifact.Pipeline.Model == nil || artifact.Pipeline.Preprocessor == nil {
		return nil, newCorruptError(path, errors.New("pipeline incompleto"))
	}

	return &artifact, nil
}

// Latest carrega o artefato mais recente do diretório, decidindo pelo
// training_date do sidecar e caindo para o mtime do arquivo quando o sidecar
// não existe. Diretório sem artefatos retorna ErrArtifactNotFound.
func (s *fileStore) Latest() (*modeling.Artifact, string, error) {
	candidates, err := s.List()
	if err != nil {
		return nil, "", err
	}

	if len(candidates) > 0 {
		artifact, err := s.Load(candidates[0].ModelID)
		if err != nil {
			return nil, "", err
		}
		return artifact, candidates[0].ModelID, nil
	}

	modelID, err := s.newestByModTime()
	if err != nil {
		return nil, "", err
	}

	artifact, err := s.Load(modelID)
	if err != nil {
		return nil, "", err
	}
	return artifact, modelID, nil
}

// List retorna os metadados dos artefatos persistidos, mais recente primeiro
func (s *fileStore) List() ([]Metadata, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*_metadata_*"+metadataExtension))
	if err != nil {
		return nil, errors.Wrap(err, "Erro ao listar os metadados de modelos")
	}

	out := make([]Metadata, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "Erro ao ler os metadados do modelo")
		}

		var metadata Metadata
		if err := json.Unmarshal(raw, &metadata); err != nil {
			logrus.WithField("path", path).Warn("Sidecar de metadados ilegível, ignorando")
			continue
		}

		out = append(out, metadata)
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].TrainingDate.After(out[b].TrainingDate)
	})

	return out, nil
}

func (s *fileStore) writeModel(path string, artifact *modeling.Artifact) error {
	tmp, err := os.CreateTemp(s.dir, ".model-*")
	if err != nil {
		return errors.Wrap(err, "Erro ao criar o arquivo temporário do artefato")
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(artifact); err != nil {
		tmp.Close()
		return errors.Wrap(err, "Erro ao serializar o artefato de modelo")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "Erro ao fechar o arquivo temporário do artefato")
	}

	return errors.Wrap(os.Rename(tmp.Name(), path), "Erro ao publicar o artefato de modelo")
}

func (s *fileStore) writeMetadata(path string, metadata Metadata) error {
	raw, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return errors.Wrap(err, "Erro ao serializar os metadados do modelo")
	}

	tmp, err := os.CreateTemp(s.dir, ".metadata-*")
	if err != nil {
		return errors.Wrap(err, "Erro ao criar o arquivo temporário de metadados")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return errors.Wrap(err, "Erro ao gravar os metadados do modelo")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "Erro ao fechar o arquivo temporário de metadados")
	}

	return errors.Wrap(os.Rename(tmp.Name(), path), "Erro ao publicar os metadados do modelo")
}

// newestByModTime escolhe o artefato de mtime mais recente quando nenhum
// sidecar de metadados sobreviveu
func (s *fileStore) newestByModTime() (string, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*_model_*"+modelExtension))
	if err != nil {
		return "", errors.Wrap(err, "Erro ao listar os artefatos de modelos")
	}
	if len(paths) == 0 {
		return "", ErrArtifactNotFound
	}

	newest := ""
	var newestTime time.Time
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = path
			newestTime = info.ModTime()
		}
	}

	if newest == "" {
		return "", ErrArtifactNotFound
	}

	return strings.TrimSuffix(filepath.Base(newest), modelExtension), nil
}
