package normals

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/arvidr/ogremesh/pkg/meshxml"
)

// Report summarizes one recalculation run over a single document. It is a
// plain value: callers batching many files aggregate their own totals.
type Report struct {
	Submeshes        int // submeshes visited
	FacesProcessed   int // faces that contributed a normal
	DegenerateFaces  int // faces skipped for zero-area geometry
	OutOfRangeFaces  int // faces skipped for invalid vertex indices
	VerticesUpdated  int // vertices that received an averaged normal
	FallbackVertices int // vertices that received the fallback normal
}

// Warnings returns the number of recoverable conditions encountered.
func (r Report) Warnings() int {
	return r.DegenerateFaces + r.OutOfRangeFaces + r.FallbackVertices
}

// accumulator collects face-normal contributions for one vertex.
type accumulator struct {
	sum   mgl64.Vec3
	faces int
}

// bufferState is the working state for one geometry: parsed positions, one
// accumulator per vertex, and the buffer the finished normals go to.
type bufferState struct {
	positions []mgl64.Vec3
	acc       []accumulator
	normalBuf *meshxml.VertexBuffer
}

// Recalculate recomputes vertex normals for every submesh of m from its
// face data and writes the results back into the document. Positions and
// all other vertex attributes are left untouched. Faces are visited in
// document order, so identical input produces bit-identical sums. Submeshes
// sharing the document's shared geometry accumulate into one set of
// accumulators, finalized once after the last of them.
//
// Recoverable conditions (degenerate faces, out-of-range indices, vertices
// without faces) are counted in the Report and logged; only malformed
// numeric input, which Parse already rejects, yields an error. log may be
// nil.
func Recalculate(m *meshxml.Mesh, log *zap.Logger) (Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var rep Report

	var shared *bufferState
	sharedUsed := false
	if m.SharedGeometry != nil {
		st, err := newBufferState(m.SharedGeometry)
		if err != nil {
			return rep, fmt.Errorf("shared geometry: %w", err)
		}
		shared = st
	}

	for i, sm := range m.SubMeshes {
		rep.Submeshes++

		var st *bufferState
		switch {
		case sm.UsesSharedVertices():
			st = shared
			sharedUsed = st != nil
		case sm.Geometry != nil:
			var err error
			st, err = newBufferState(sm.Geometry)
			if err != nil {
				return rep, fmt.Errorf("submesh %d: %w", i, err)
			}
		}
		if st == nil || st.normalBuf == nil {
			log.Warn("submesh has no geometry", zap.Int("submesh", i))
			continue
		}

		accumulateFaces(st, sm, i, &rep, log)

		if !sm.UsesSharedVertices() {
			finalize(st, &rep)
		}
	}

	if sharedUsed {
		finalize(shared, &rep)
	}
	return rep, nil
}

// newBufferState parses the geometry's positions and picks the buffer that
// will receive normals: the one already declaring them, otherwise the
// position buffer itself.
func newBufferState(g *meshxml.Geometry) (*bufferState, error) {
	buf := g.PositionBuffer()
	if buf == nil {
		return &bufferState{}, nil
	}

	positions := make([]mgl64.Vec3, len(buf.Vertices))
	for i, v := range buf.Vertices {
		p, err := v.Pos()
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		positions[i] = mgl64.Vec3(p)
	}

	normalBuf := g.NormalBuffer()
	if normalBuf == nil {
		normalBuf = buf
	}

	return &bufferState{
		positions: positions,
		acc:       make([]accumulator, len(positions)),
		normalBuf: normalBuf,
	}, nil
}

// accumulateFaces adds each valid face's normal to the accumulators of its
// three vertices. Invalid faces are skipped and counted, never fatal.
func accumulateFaces(st *bufferState, sm *meshxml.SubMesh, submesh int, rep *Report, log *zap.Logger) {
	if sm.Faces == nil {
		return
	}
	for fi := range sm.Faces.Faces {
		// Indices were validated at parse time; the error path here only
		// guards against documents built programmatically.
		idx, err := sm.Faces.Faces[fi].Indices()
		if err != nil {
			rep.OutOfRangeFaces++
			log.Warn("unreadable face skipped",
				zap.Int("submesh", submesh), zap.Int("face", fi), zap.Error(err))
			continue
		}

		if !inBounds(idx, len(st.positions)) {
			rep.OutOfRangeFaces++
			log.Warn("face index out of range",
				zap.Int("submesh", submesh), zap.Int("face", fi),
				zap.Ints("indices", idx[:]), zap.Int("vertices", len(st.positions)))
			continue
		}

		n, ok := FaceNormal(st.positions[idx[0]], st.positions[idx[1]], st.positions[idx[2]])
		if !ok {
			rep.DegenerateFaces++
			log.Debug("degenerate face skipped",
				zap.Int("submesh", submesh), zap.Int("face", fi))
			continue
		}

		for _, vi := range idx {
			st.acc[vi].sum = st.acc[vi].sum.Add(n)
			st.acc[vi].faces++
		}
		rep.FacesProcessed++
	}
}

func inBounds(idx [3]int, n int) bool {
	for _, i := range idx {
		if i < 0 || i >= n {
			return false
		}
	}
	return true
}

// finalize turns accumulated sums into unit normals and writes them into
// the target buffer. Vertices without contributions get FallbackNormal.
// The report only counts vertices whose normal was actually stored: a
// split-buffer geometry whose normals buffer is shorter than its position
// buffer has nowhere to put the surplus results.
func finalize(st *bufferState, rep *Report) {
	for i := range st.acc {
		n := FallbackNormal
		updated := st.acc[i].faces > 0
		if updated {
			n = normalizeOrFallback(st.acc[i].sum)
		}
		if !writeNormal(st.normalBuf, i, n) {
			continue
		}
		if updated {
			rep.VerticesUpdated++
		} else {
			rep.FallbackVertices++
		}
	}
	if len(st.acc) > 0 {
		st.normalBuf.SetAttr("normals", "true")
	}
}

// writeNormal stores n on vertex i, inserting a normal element when the
// vertex lacks one. It reports whether the buffer has such a vertex.
func writeNormal(buf *meshxml.VertexBuffer, i int, n mgl64.Vec3) bool {
	if i >= len(buf.Vertices) {
		return false
	}
	v := buf.Vertices[i]
	if v.Normal == nil {
		v.Normal = &meshxml.Normal{}
	}
	v.Normal.X, v.Normal.Y, v.Normal.Z = Format(n)
	return true
}
