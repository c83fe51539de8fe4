package types

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"experimentallabor.de/gertag/logger"
	"gopkg.in/yaml.v3"
)

const (
	ClassifierNaiveBayes = "naive_bayes"
	ClassifierMaxEnt     = "maxent"

	DefaultBeamSize = 1
)

type CorpusConfig struct {
	Root          string   `yaml:"root" json:"root"`
	Files         []string `yaml:"files" json:"files"`
	Columns       []string `yaml:"columns" json:"columns"`
	BeginMarker   string   `yaml:"begin_marker" json:"begin_marker"`
	EndMarker     string   `yaml:"end_marker" json:"end_marker"`
	SkipMalformed bool     `yaml:"skip_malformed" json:"skip_malformed"`
}

type TaggerConfig struct {
	Classifier string `yaml:"classifier" json:"classifier"`
	BeamSize   int    `yaml:"beam_size" json:"beam_size"`
	// TagDictionary restricts known words to the tags seen in training.
	TagDictionary bool `yaml:"tag_dictionary" json:"tag_dictionary"`
}

// Configuration describes one corpus and the tagger trained on it.
type Configuration struct {
	Name     string       `yaml:"name" json:"name"`
	FilePath string       `yaml:"-" json:"file_path"`
	Corpus   CorpusConfig `yaml:"corpus" json:"corpus"`
	Tagger   TaggerConfig `yaml:"tagger" json:"tagger"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		Corpus: CorpusConfig{
			Files: []string{"**/*.export"},
		},
		Tagger: TaggerConfig{
			Classifier: ClassifierNaiveBayes,
			BeamSize:   DefaultBeamSize,
		},
	}
}

func (cfg Configuration) Validate() error {
	if len(cfg.Corpus.Files) == 0 {
		return errors.New("corpus has no file patterns")
	}
	switch cfg.Tagger.Classifier {
	case ClassifierNaiveBayes, ClassifierMaxEnt:
	default:
		return fmt.Errorf("unknown classifier %q", cfg.Tagger.Classifier)
	}
	if cfg.Tagger.BeamSize < 1 {
		return fmt.Errorf("beam size must be positive, got %d", cfg.Tagger.BeamSize)
	}
	return nil
}

// LoadConfiguration reads a single yaml file on top of the defaults. A
// relative corpus root is resolved against the file's directory.
func LoadConfiguration(filePath string) (Configuration, error) {
	cfg := DefaultConfiguration()
	cfg.Name = strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	cfg.FilePath = filePath

	buf, err := os.ReadFile(filePath)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", filePath, err)
	}
	if cfg.Corpus.Root == "" {
		cfg.Corpus.Root = path.Dir(filePath)
	} else if !path.IsAbs(cfg.Corpus.Root) {
		cfg.Corpus.Root = path.Join(path.Dir(filePath), cfg.Corpus.Root)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", filePath, err)
	}
	return cfg, nil
}

// LoadConfigurations loads every *.yaml file of a directory. Files that fail
// to load are logged and left out.
func LoadConfigurations(dirPath string) ([]Configuration, error) {
	cfgLogger := logger.NewLogger("LoadConfigurations")

	files, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	configChan := make(chan Configuration, len(files))
	for _, f := range files {
		// Skip dirs and non-yaml files
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}

		wg.Add(1)
		go func(file os.DirEntry) {
			defer wg.Done()
			cfg, err := LoadConfiguration(path.Join(dirPath, file.Name()))
			if err != nil {
				cfgLogger.Err(err).Str("file", file.Name()).Msg("Skipping configuration")
				return
			}
			configChan <- cfg
		}(f)
	}

	go func() {
		wg.Wait()
		close(configChan)
	}()

	configs := make([]Configuration, 0, len(configChan))
	for cfg := range configChan {
		configs = append(configs, cfg)
	}
	sort.Slice(configs, func(i, j int) bool {
		return configs[i].Name < configs[j].Name
	})
	return configs, nil
}
