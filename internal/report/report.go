// Package report persists the outcome of destructive operations as YAML result files.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/n2code/imgcurator/internal/cleanup"
	"github.com/n2code/imgcurator/internal/rename"
	"gopkg.in/yaml.v3"
)

const timestampLayout = "2006-01-02_15-04-05"

// Now is replaceable for deterministic output.
var Now = time.Now

type Context struct {
	Document  string `yaml:"document"`
	ImageDir  string `yaml:"imagedir"`
	Timestamp string `yaml:"timestamp"`
}

type Failure struct {
	Path  string `yaml:"path"`
	Error string `yaml:"error"`
}

type Cleanup struct {
	Context  Context   `yaml:"context"`
	Count    int       `yaml:"count"`
	Deleted  []string  `yaml:"deleted"`
	Failures []Failure `yaml:"failures,omitempty"`
}

type Mapping struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type Rename struct {
	Context     Context   `yaml:"context"`
	NewDocument string    `yaml:"newdocument"`
	Renamed     []Mapping `yaml:"renamed"`
	Replaced    []string  `yaml:"replaced,omitempty"`
}

func newContext(document string, imageDir string) Context {
	return Context{Document: document, ImageDir: imageDir, Timestamp: Now().Format(timestampLayout)}
}

func FromDelete(document string, imageDir string, result cleanup.DeleteReport) Cleanup {
	converted := Cleanup{
		Context: newContext(document, imageDir),
		Count:   result.Count,
		Deleted: append([]string{}, result.Deleted...),
	}
	for _, failure := range result.Failures {
		converted.Failures = append(converted.Failures, Failure{Path: failure.Path, Error: failure.Err.Error()})
	}
	return converted
}

func FromRename(document string, imageDir string, result rename.Report) Rename {
	converted := Rename{
		Context:     newContext(document, imageDir),
		NewDocument: result.NewDocumentPath,
		Replaced:    result.Replaced,
	}
	for _, pair := range result.Pairs {
		converted.Renamed = append(converted.Renamed, Mapping{From: pair.Source, To: pair.Target})
	}
	return converted
}

// Save writes any result as YAML, missing parent directories are created.
func Save(path string, result any) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
