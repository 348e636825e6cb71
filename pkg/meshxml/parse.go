package meshxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
)

// Parse errors. All of them are fatal for the whole document: a file with a
// broken structure or unreadable numbers is never partially processed.
var (
	ErrEmptyDocument   = errors.New("empty mesh document")
	ErrMalformedNumber = errors.New("malformed numeric attribute")
	ErrMalformedIndex  = errors.New("malformed face index")
)

func errMalformed(sentinel error, value string) error {
	return fmt.Errorf("%w: %q", sentinel, value)
}

// Parse parses an Ogre .mesh.xml document. Numeric attributes the tool
// depends on (vertex positions, face indices) are validated eagerly so a
// malformed file fails before any computation starts.
func Parse(data []byte) (*Mesh, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	var m Mesh
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing mesh xml: %w", err)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and parses a .mesh.xml file from disk.
func Load(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mesh file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// validate checks every position and face index literal in the document.
func (m *Mesh) validate() error {
	if m.SharedGeometry != nil {
		if err := validateGeometry(m.SharedGeometry); err != nil {
			return fmt.Errorf("shared geometry: %w", err)
		}
	}
	for i, s := range m.SubMeshes {
		if s.Geometry != nil {
			if err := validateGeometry(s.Geometry); err != nil {
				return fmt.Errorf("submesh %d: %w", i, err)
			}
		}
		if s.Faces == nil {
			continue
		}
		for j := range s.Faces.Faces {
			if _, err := s.Faces.Faces[j].Indices(); err != nil {
				return fmt.Errorf("submesh %d face %d: %w", i, j, err)
			}
		}
	}
	return nil
}

func validateGeometry(g *Geometry) error {
	b := g.PositionBuffer()
	if b == nil {
		return nil
	}
	for i, v := range b.Vertices {
		if _, err := v.Pos(); err != nil {
			return fmt.Errorf("vertex %d: %w", i, err)
		}
	}
	return nil
}
