// Package candidate reads uploaded candidate batches and validates them before
// they reach the scorer.
package candidate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoResumes        = errors.New("invalid data structure: 'resumes' array not found")
	ErrEmptyBatch       = errors.New("no candidate resumes found")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidResume    = errors.New("resume is not an object")
	ErrNoJobDescription = errors.New("job description is required")
	ErrNotText          = errors.New("field is not text")
)

// RequiredFields must be present on every uploaded resume.
var RequiredFields = []string{"candidateId", "firstName", "lastName", "skills", "totalExperience"}

// ScoringFields are read by the scorer and must hold text when present.
var ScoringFields = []string{"skills", "totalExperience", "relevantExperience", "profile", "currentDesignation", "interestedRole"}

type identity struct {
	CandidateID int64  `json:"candidateId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

// Load reads and parses a batch file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func Load(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candidates file %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Parse decodes a `{"resumes": [...], "job_description": "..."}` document.
// The job description is optional here; Batch.Validate enforces it.
func Parse(data []byte) (*Batch, error) {
	var doc map[string]any

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse candidates payload: %w", err)
	}

	return fromDocument(doc)
}

// ParseYAML decodes the YAML form of the batch document.
func ParseYAML(data []byte) (*Batch, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse candidates payload: %w", err)
	}

	return fromDocument(doc)
}

func fromDocument(doc map[string]any) (*Batch, error) {
	items, ok := doc["resumes"].([]any)
	if !ok {
		return nil, ErrNoResumes
	}
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}

	batch := &Batch{Resumes: make([]Candidate, 0, len(items))}
	if jd, ok := doc["job_description"].(string); ok {
		batch.JobDescription = jd
	}

	for idx, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: index %d", ErrInvalidResume, idx)
		}

		for _, field := range RequiredFields {
			if _, ok := raw[field]; !ok {
				return nil, fmt.Errorf("%w '%s' in resume %d", ErrMissingField, field, idx)
			}
		}

		c, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("resume %d: %w", idx, err)
		}
		batch.Resumes = append(batch.Resumes, c)
	}

	return batch, nil
}

// decode maps a raw resume onto Candidate. Display fields are decoded
// leniently. A record whose scoring fields are not text, or that fails to
// decode as a whole, is kept with its identity and the error stored in Malformed.
func decode(raw map[string]any) (Candidate, error) {
	var c Candidate

	err := checkScoringFields(raw)
	if err == nil {
		err = decodeInto(raw, &c)
	}
	if err != nil {
		var id identity
		if idErr := decodeInto(raw, &id); idErr != nil {
			return Candidate{}, fmt.Errorf("decode candidate identity: %w", idErr)
		}

		c = Candidate{
			CandidateID: id.CandidateID,
			FirstName:   id.FirstName,
			LastName:    id.LastName,
			Malformed:   err,
		}
		// Display fields are best effort for malformed records.
		c.Skills, _ = raw["skills"].(string)
		c.TotalExperience, _ = raw["totalExperience"].(string)
	}

	c.Raw = raw
	return c, nil
}

func checkScoringFields(raw map[string]any) error {
	for _, field := range ScoringFields {
		v, ok := raw[field]
		if !ok {
			continue
		}
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%w: '%s' holds %T", ErrNotText, field, v)
		}
	}
	return nil
}

func decodeInto(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return dec.Decode(raw)
}
