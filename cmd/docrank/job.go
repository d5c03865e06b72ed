package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docrank"
	"gopkg.in/yaml.v3"
)

// Job is the input file describing an analysis run.
type Job struct {
	Persona     Persona       `json:"persona" yaml:"persona"`
	JobToBeDone JobToBeDone   `json:"job_to_be_done" yaml:"job_to_be_done"`
	Documents   []JobDocument `json:"documents" yaml:"documents"`
}

// Persona describes who the analysis is for.
type Persona struct {
	Role string `json:"role" yaml:"role"`
}

// JobToBeDone describes the task the persona is working on.
type JobToBeDone struct {
	Task string `json:"task" yaml:"task"`
}

// JobDocument names one input document.
type JobDocument struct {
	Filename string `json:"filename" yaml:"filename"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
}

// LoadJob reads a job file. Files ending in .yaml or .yml are parsed as
// YAML, everything else as JSON.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, docrank.Errorf(docrank.ENOTFOUND, "job file %q not found", path)
	} else if err != nil {
		return nil, err
	}

	var job Job
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &job)
	default:
		err = json.Unmarshal(data, &job)
	}
	if err != nil {
		return nil, docrank.Errorf(docrank.EINVALID, "parse job file %q: %v", path, err)
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// Validate returns an error if the job lists no usable documents.
func (j *Job) Validate() error {
	if len(j.Documents) == 0 {
		return docrank.Errorf(docrank.EINVALID, "no documents found in job file")
	}
	for i, d := range j.Documents {
		if strings.TrimSpace(d.Filename) == "" {
			return docrank.Errorf(docrank.EINVALID, "document %d has no filename", i+1)
		}
	}
	return nil
}

// Paths resolves the document filenames against dir.
func (j *Job) Paths(dir string) []string {
	paths := make([]string, len(j.Documents))
	for i, d := range j.Documents {
		paths[i] = filepath.Join(dir, d.Filename)
	}
	return paths
}
