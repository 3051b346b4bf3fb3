// Package study models the series metadata shown in the viewer header,
// loaded from a YAML sidecar next to the slice images.
package study

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"
)

// SidecarName is the metadata file looked for inside a series directory.
const SidecarName = "study.yaml"

// Study describes the loaded study and its single displayed series.
type Study struct {
	PatientID      string    `yaml:"patientId"`
	PatientName    string    `yaml:"patientName"`
	StudyDate      string    `yaml:"studyDate"`
	Modality       string    `yaml:"modality"`
	Description    string    `yaml:"description"`
	SliceThickness float64   `yaml:"sliceThickness"`
	PixelSpacing   []float64 `yaml:"pixelSpacing"`
}

// Default returns the metadata used when no sidecar is present.
func Default() *Study {
	return &Study{
		PatientID:   "ANON",
		Modality:    "CT",
		Description: "Synthetic phantom series",
	}
}

// Load reads the sidecar from dir, falling back to Default when the file
// does not exist. Text fields arriving as raw Latin-1 bytes (the DICOM
// default character set) are transcoded to UTF-8.
func Load(dir string) (*Study, error) {
	data, err := os.ReadFile(filepath.Join(dir, SidecarName))
	if os.IsNotExist(err) {
		s := Default()
		s.Description = filepath.Base(dir)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading study sidecar: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing study sidecar: %w", err)
	}

	s.PatientName = decodeText(s.PatientName)
	s.Description = decodeText(s.Description)
	return s, nil
}

// decodeText fixes up metadata strings that are not valid UTF-8 by
// decoding them as ISO 8859-1, the DICOM default repertoire.
func decodeText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return decoded
}

// Title is the one-line header shown above the image panel.
func (s *Study) Title() string {
	switch {
	case s.Description != "" && s.Modality != "":
		return fmt.Sprintf("%s · %s", s.Modality, s.Description)
	case s.Description != "":
		return s.Description
	default:
		return s.Modality
	}
}
