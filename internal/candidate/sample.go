package candidate

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
)

//go:embed sample.json
var sample []byte

// DefaultSampleFile is where the sample payload is written when no path is given.
const DefaultSampleFile = "candidate_sample.json"

// Sample returns the built-in example payload: three candidates and a job description.
func Sample() []byte {
	return bytes.Clone(sample)
}

// WriteSample stores the example payload at path.
func WriteSample(path string) error {
	if path == "" {
		path = DefaultSampleFile
	}

	if err := os.WriteFile(path, Sample(), 0o644); err != nil {
		return fmt.Errorf("writing sample to %q: %w", path, err)
	}
	return nil
}
