package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/scopeworks/fpoint/domain"
)

// Default patterns used when the caller supplies none
var defaultIncludePatterns = []string{"*.fpe.yaml", "*.fpe.yml", "*.fpe.json"}

// EstimateReaderImpl implements the EstimateReader interface
type EstimateReaderImpl struct{}

// NewEstimateReader creates a new estimate reader service
func NewEstimateReader() *EstimateReaderImpl {
	return &EstimateReaderImpl{}
}

// estimateFile is the on-disk shape of a single estimate definition.
// YAML is the primary format; JSON files parse through the same
// decoder since every JSON document is valid YAML.
type estimateFile struct {
	Project            string          `yaml:"project"`
	Name               string          `yaml:"name"`
	Version            int             `yaml:"version"`
	Status             string          `yaml:"status"`
	ProductivityFactor float64         `yaml:"productivity_factor"`
	GSC                []int           `yaml:"gsc"`
	Components         []componentFile `yaml:"components"`
}

// componentFile is the on-disk shape of one counted function
type componentFile struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	DET  int    `yaml:"det"`
	RET  int    `yaml:"ret"`
	FTR  int    `yaml:"ftr"`

	// Optional per-side counts for dual-mode inquiries
	Input  *sideFile `yaml:"input"`
	Output *sideFile `yaml:"output"`
}

type sideFile struct {
	FTR int `yaml:"ftr"`
	DET int `yaml:"det"`
}

// historyFile is the on-disk shape of a version history
type historyFile struct {
	Project  string         `yaml:"project"`
	Versions []estimateFile `yaml:"versions"`
}

// CollectEstimateFiles recursively finds estimate files in the given paths
func (r *EstimateReaderImpl) CollectEstimateFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	if len(includePatterns) == 0 {
		includePatterns = defaultIncludePatterns
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if info.IsDir() {
			dirFiles, err := r.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
			continue
		}

		// Explicit files skip the include patterns but still honor excludes
		if r.IsValidEstimateFile(path) && !matchesAny(path, excludePatterns) {
			files = append(files, path)
		}
	}

	return files, nil
}

// ReadEstimate parses a single estimate definition file
func (r *EstimateReaderImpl) ReadEstimate(path string) (*domain.Estimate, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}

	var file estimateFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, domain.NewParseError(path, err)
	}

	estimate, err := r.toEstimate(&file)
	if err != nil {
		return nil, domain.NewParseError(path, err)
	}
	return estimate, nil
}

// ReadHistory parses a version history file into estimates ordered as stored
func (r *EstimateReaderImpl) ReadHistory(path string) ([]*domain.Estimate, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}

	var file historyFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, domain.NewParseError(path, err)
	}
	if len(file.Versions) == 0 {
		return nil, domain.NewParseError(path, fmt.Errorf("history contains no versions"))
	}

	estimates := make([]*domain.Estimate, 0, len(file.Versions))
	for i := range file.Versions {
		if file.Versions[i].Project == "" {
			file.Versions[i].Project = file.Project
		}
		estimate, err := r.toEstimate(&file.Versions[i])
		if err != nil {
			return nil, domain.NewParseError(path, err)
		}
		estimates = append(estimates, estimate)
	}
	return estimates, nil
}

// IsValidEstimateFile checks if a file looks like an estimate definition
func (r *EstimateReaderImpl) IsValidEstimateFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml" || ext == ".json"
}

// FileExists checks if a file exists and returns an error if not
func (r *EstimateReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// toEstimate converts the file shape to the domain estimate
func (r *EstimateReaderImpl) toEstimate(file *estimateFile) (*domain.Estimate, error) {
	estimate := &domain.Estimate{
		ProjectID:          file.Project,
		Name:               file.Name,
		Version:            file.Version,
		Status:             domain.EstimateStatus(file.Status),
		ProductivityFactor: file.ProductivityFactor,
	}
	if estimate.Version == 0 {
		estimate.Version = 1
	}
	if estimate.Status == "" {
		estimate.Status = domain.EstimateStatusDraft
	}

	if len(file.GSC) > 0 {
		if len(file.GSC) != domain.GSCCount {
			return nil, fmt.Errorf("gsc must list exactly %d degrees of influence, got %d", domain.GSCCount, len(file.GSC))
		}
		copy(estimate.GSC[:], file.GSC)
	}

	estimate.Components = make([]domain.Component, 0, len(file.Components))
	for i := range file.Components {
		component, err := r.toComponent(&file.Components[i])
		if err != nil {
			return nil, err
		}
		estimate.Components = append(estimate.Components, component)
	}

	if err := estimate.Validate(); err != nil {
		return nil, err
	}
	return estimate, nil
}

func (r *EstimateReaderImpl) toComponent(file *componentFile) (domain.Component, error) {
	kind, err := domain.ParseComponentKind(file.Kind)
	if err != nil {
		return domain.Component{}, err
	}

	component := domain.Component{
		ID:   file.ID,
		Name: file.Name,
		Kind: kind,
		DET:  file.DET,
		RET:  file.RET,
		FTR:  file.FTR,
	}

	if file.Input != nil || file.Output != nil {
		if file.Input == nil || file.Output == nil {
			return domain.Component{}, fmt.Errorf("component %q: dual counts need both an input and an output side", component.DisplayName())
		}
		component.Dual = &domain.EQSides{
			InputFTR:  file.Input.FTR,
			InputDET:  file.Input.DET,
			OutputFTR: file.Output.FTR,
			OutputDET: file.Output.DET,
		}
	}

	return component, nil
}

// collectFromDirectory collects estimate files from a directory
func (r *EstimateReaderImpl) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() && !recursive && path != dirPath {
			return filepath.SkipDir
		}

		// Skip hidden directories and files
		if strings.HasPrefix(info.Name(), ".") && path != dirPath {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() && shouldSkipDirectory(info.Name()) {
			return filepath.SkipDir
		}

		if !info.IsDir() && r.IsValidEstimateFile(path) {
			if matchesAny(path, includePatterns) && !matchesAny(path, excludePatterns) {
				files = append(files, path)
			}
		}

		return nil
	}

	if err := filepath.Walk(dirPath, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return files, nil
}

// matchesAny checks a path against glob patterns, both by base name
// and by full path so `reports/**/*.yaml` style patterns work
func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, filepath.Base(path)); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, filepath.ToSlash(path)); matched {
			return true
		}
	}
	return false
}

// shouldSkipDirectory checks if a directory should be skipped entirely
func shouldSkipDirectory(dirName string) bool {
	skipDirs := []string{
		".git",
		".svn",
		".hg",
		"node_modules",
		"vendor",
		"build",
		"dist",
	}

	dirLower := strings.ToLower(dirName)
	for _, skipDir := range skipDirs {
		if dirLower == skipDir {
			return true
		}
	}
	return false
}
