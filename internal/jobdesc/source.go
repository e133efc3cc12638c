// Package jobdesc resolves the job description a batch is ranked against.
package jobdesc

import (
	"fmt"
	"os"
	"strings"

	"github.com/spigell/cv-ranker/internal/candidate"
)

// Source lists the places a job description can come from, in order of precedence.
type Source struct {
	// File points to a plain text file with the job description.
	File string
	// Inline is a job description given via configuration or flags.
	Inline string
	// Batch is the job description shipped inside the candidates batch.
	Batch string
}

// Resolve returns the first non-blank job description of src, trimmed.
// A File that cannot be read or is blank is an error rather than a reason to
// fall through to the next source.
func Resolve(src Source) (string, error) {
	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading job description from file %q: %w", file, err)
		}

		jd := strings.TrimSpace(string(data))
		if jd == "" {
			return "", fmt.Errorf("job description file %q is empty: %w", file, candidate.ErrNoJobDescription)
		}
		return jd, nil
	}

	for _, value := range []string{src.Inline, src.Batch} {
		if jd := strings.TrimSpace(value); jd != "" {
			return jd, nil
		}
	}

	return "", candidate.ErrNoJobDescription
}
