package xlbind

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReportSpec describes an export: which datasets become sheets, the header
// keys of each, and the locale labels used for sheet titles and header cells.
//
//	labels:
//	  customers: Customers
//	  firstName: First Name
//	datasets:
//	  - name: customers
//	    headers: [firstName, lastName]
type ReportSpec struct {
	Labels   map[string]string `yaml:"labels"`
	Datasets []DatasetSpec     `yaml:"datasets"`
}

// DatasetSpec is the header specification of one dataset.
type DatasetSpec struct {
	Name    string   `yaml:"name"`
	Headers []string `yaml:"headers"`
}

// LoadReportSpec decodes and validates a YAML report spec.
func LoadReportSpec(r io.Reader) (*ReportSpec, error) {
	var spec ReportSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode report spec: empty document")
		}
		return nil, fmt.Errorf("decode report spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadReportSpecFile reads a YAML report spec from path.
func LoadReportSpecFile(path string) (*ReportSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report spec: %w", err)
	}
	defer f.Close()
	return LoadReportSpec(f)
}

// Validate rejects specs with unnamed, duplicate or header-less datasets.
func (s *ReportSpec) Validate() error {
	if len(s.Datasets) == 0 {
		return fmt.Errorf("report spec: no datasets")
	}
	seen := make(map[string]bool, len(s.Datasets))
	for i, ds := range s.Datasets {
		if ds.Name == "" {
			return fmt.Errorf("report spec: dataset %d has no name", i+1)
		}
		if seen[ds.Name] {
			return fmt.Errorf("report spec: duplicate dataset %q", ds.Name)
		}
		seen[ds.Name] = true
		if len(ds.Headers) == 0 {
			return fmt.Errorf("report spec: dataset %q has no headers", ds.Name)
		}
	}
	return nil
}

// Bind pairs the spec's datasets, in spec order, with their records.
func (s *ReportSpec) Bind(records map[string][]Exportable) []Dataset {
	sets := make([]Dataset, 0, len(s.Datasets))
	for _, ds := range s.Datasets {
		sets = append(sets, Dataset{Name: ds.Name, Headers: ds.Headers, Records: records[ds.Name]})
	}
	return sets
}

// HeaderMap returns the spec's header keys by dataset name.
func (s *ReportSpec) HeaderMap() map[string][]string {
	out := make(map[string][]string, len(s.Datasets))
	for _, ds := range s.Datasets {
		out[ds.Name] = ds.Headers
	}
	return out
}
