// Package meshxml parses and serializes Ogre .mesh.xml geometry documents.
//
// The model is deliberately conservative about what it interprets: only
// vertex positions and face indices are ever converted to numbers, and only
// vertex normals are ever rewritten. Every other attribute is carried as the
// verbatim text it was parsed from, so a load/save cycle cannot perturb
// fields this tool does not own.
package meshxml

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Mesh is the root of an Ogre .mesh.xml document. Optional sections the
// tool never touches (skeleton links, poses, animations, LOD data) are kept
// as raw pass-through elements.
type Mesh struct {
	XMLName         xml.Name    `xml:"mesh"`
	SharedGeometry  *Geometry   `xml:"sharedgeometry"`
	SubMeshes       []*SubMesh  `xml:"submeshes>submesh"`
	SkeletonLink    *RawSection `xml:"skeletonlink"`
	BoneAssignments *RawSection `xml:"boneassignments"`
	LevelOfDetail   *RawSection `xml:"levelofdetail"`
	SubMeshNames    *RawSection `xml:"submeshnames"`
	Poses           *RawSection `xml:"poses"`
	Animations      *RawSection `xml:"animations"`
	Extremes        *RawSection `xml:"extremes"`
}

// SubMesh is one renderable group: a face list plus either its own geometry
// or a reference to the document's shared geometry.
type SubMesh struct {
	Attrs           []xml.Attr  `xml:",any,attr"`
	Faces           *FaceList   `xml:"faces"`
	Geometry        *Geometry   `xml:"geometry"`
	BoneAssignments *RawSection `xml:"boneassignments"`
}

// Attr returns the named submesh attribute, or "" when absent.
func (s *SubMesh) Attr(name string) string {
	return attrValue(s.Attrs, name)
}

// Material returns the submesh's material reference.
func (s *SubMesh) Material() string {
	return s.Attr("material")
}

// UsesSharedVertices reports whether the submesh indexes into the
// document's shared geometry instead of its own.
func (s *SubMesh) UsesSharedVertices() bool {
	return strings.EqualFold(s.Attr("usesharedvertices"), "true")
}

// Geometry holds one or more vertex buffers. Ogre may split vertex
// attributes across buffers (positions in one, normals in another).
type Geometry struct {
	VertexCount string          `xml:"vertexcount,attr,omitempty"`
	Buffers     []*VertexBuffer `xml:"vertexbuffer"`
}

// PositionBuffer returns the buffer declaring positions, falling back to
// the first buffer, or nil when the geometry has none.
func (g *Geometry) PositionBuffer() *VertexBuffer {
	if g == nil {
		return nil
	}
	for _, b := range g.Buffers {
		if b.Flag("positions") {
			return b
		}
	}
	if len(g.Buffers) > 0 {
		return g.Buffers[0]
	}
	return nil
}

// NormalBuffer returns the buffer declaring normals, or nil when none does.
func (g *Geometry) NormalBuffer() *VertexBuffer {
	if g == nil {
		return nil
	}
	for _, b := range g.Buffers {
		if b.Flag("normals") {
			return b
		}
	}
	return nil
}

// NumVertices returns the vertex count of the position buffer.
func (g *Geometry) NumVertices() int {
	if b := g.PositionBuffer(); b != nil {
		return len(b.Vertices)
	}
	return 0
}

// VertexBuffer is an ordered vertex list. Buffer-level flags such as
// "positions", "normals" or "texture_coords" are kept as raw attributes.
type VertexBuffer struct {
	Attrs    []xml.Attr `xml:",any,attr"`
	Vertices []*Vertex  `xml:"vertex"`
}

// Flag reports whether the named buffer attribute is "true".
func (b *VertexBuffer) Flag(name string) bool {
	return strings.EqualFold(attrValue(b.Attrs, name), "true")
}

// SetAttr sets the named buffer attribute, appending it when absent.
func (b *VertexBuffer) SetAttr(name, value string) {
	for i := range b.Attrs {
		if b.Attrs[i].Name.Local == name {
			b.Attrs[i].Value = value
			return
		}
	}
	b.Attrs = append(b.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// Vertex carries a position, an optional normal owned by this tool, and any
// further attributes (texture coordinates, colours, tangent space) that pass
// through untouched.
type Vertex struct {
	Position       *Position    `xml:"position"`
	Normal         *Normal      `xml:"normal"`
	Tangent        *RawElement  `xml:"tangent"`
	Binormal       *RawElement  `xml:"binormal"`
	ColourDiffuse  *RawElement  `xml:"colour_diffuse"`
	ColourSpecular *RawElement  `xml:"colour_specular"`
	Texcoords      []RawElement `xml:"texcoord"`
}

// Pos returns the vertex position as floats. A missing position element or
// missing component counts as 0, matching the Ogre tooling.
func (v *Vertex) Pos() ([3]float64, error) {
	if v.Position == nil {
		return [3]float64{}, nil
	}
	return v.Position.Floats()
}

// Position is a vertex position. Components stay as the verbatim source
// text so untouched vertices round-trip exactly.
type Position struct {
	X string `xml:"x,attr,omitempty"`
	Y string `xml:"y,attr,omitempty"`
	Z string `xml:"z,attr,omitempty"`
}

// Floats parses the position components.
func (p *Position) Floats() ([3]float64, error) {
	var out [3]float64
	for i, s := range [3]string{p.X, p.Y, p.Z} {
		f, err := parseFloatAttr(s)
		if err != nil {
			return out, err
		}
		out[i] = f
	}
	return out, nil
}

// Normal is a vertex normal, the one element this tool rewrites.
type Normal struct {
	X string `xml:"x,attr,omitempty"`
	Y string `xml:"y,attr,omitempty"`
	Z string `xml:"z,attr,omitempty"`
}

// Floats parses the normal components.
func (n *Normal) Floats() ([3]float64, error) {
	var out [3]float64
	for i, s := range [3]string{n.X, n.Y, n.Z} {
		f, err := parseFloatAttr(s)
		if err != nil {
			return out, err
		}
		out[i] = f
	}
	return out, nil
}

// FaceList is an ordered triangle list.
type FaceList struct {
	Count string `xml:"count,attr,omitempty"`
	Faces []Face `xml:"face"`
}

// Face references three vertices by buffer index. Indices stay textual for
// round-trip fidelity and are parsed on demand.
type Face struct {
	V1 string `xml:"v1,attr,omitempty"`
	V2 string `xml:"v2,attr,omitempty"`
	V3 string `xml:"v3,attr,omitempty"`
}

// Indices parses the three vertex indices. A missing attribute counts as 0,
// matching the Ogre tooling.
func (f *Face) Indices() ([3]int, error) {
	var out [3]int
	for i, s := range [3]string{f.V1, f.V2, f.V3} {
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return out, errMalformed(ErrMalformedIndex, s)
		}
		out[i] = n
	}
	return out, nil
}

// RawSection preserves a document section verbatim: its attributes and its
// entire inner XML are written back exactly as read.
type RawSection struct {
	Attrs []xml.Attr `xml:",any,attr"`
	Inner string     `xml:",innerxml"`
}

// RawElement preserves an attribute-only element verbatim.
type RawElement struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

// Attr returns the named attribute value, or "" when absent.
func (e *RawElement) Attr(name string) string {
	return attrValue(e.Attrs, name)
}

// GeometryFor resolves the geometry a submesh indexes into, honoring the
// usesharedvertices attribute.
func (m *Mesh) GeometryFor(s *SubMesh) *Geometry {
	if s.UsesSharedVertices() {
		return m.SharedGeometry
	}
	return s.Geometry
}

// TotalVertexCount returns the number of vertices across all geometries.
func (m *Mesh) TotalVertexCount() int {
	total := 0
	if m.SharedGeometry != nil {
		total += m.SharedGeometry.NumVertices()
	}
	for _, s := range m.SubMeshes {
		if s.Geometry != nil {
			total += s.Geometry.NumVertices()
		}
	}
	return total
}

// TotalFaceCount returns the number of faces across all submeshes.
func (m *Mesh) TotalFaceCount() int {
	total := 0
	for _, s := range m.SubMeshes {
		if s.Faces != nil {
			total += len(s.Faces.Faces)
		}
	}
	return total
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func parseFloatAttr(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errMalformed(ErrMalformedNumber, s)
	}
	return f, nil
}
