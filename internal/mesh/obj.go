package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Load reads a Wavefront OBJ file. Only v and f records are consumed;
// texture/normal references in face tokens are ignored. Face normals are
// computed after loading.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mesh: %w", err)
	}
	defer f.Close()

	m := &Mesh{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			for i := 1; i <= 3; i++ {
				val, err := strconv.ParseFloat(fields[i], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				m.Points = append(m.Points, val)
			}
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			count := 0
			for _, tok := range fields[1:] {
				vid, err := parseFaceVertex(tok, len(m.Points)/3)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				m.FaceVertIndices = append(m.FaceVertIndices, vid)
				count++
			}
			m.FaceVertCounts = append(m.FaceVertCounts, count)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mesh: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mesh %s: %w", path, err)
	}
	m.ComputeFaceNormals()
	return m, nil
}

// parseFaceVertex resolves one face token ("7", "7/2", "7//3", "-1") to
// a zero-based vertex index.
func parseFaceVertex(tok string, numVerts int) (int, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad face vertex %q: %w", tok, err)
	}
	if v < 0 {
		v = numVerts + v // negative indices count from the end
	} else {
		v-- // OBJ indices are one-based
	}
	if v < 0 || v >= numVerts {
		return 0, fmt.Errorf("face vertex %q out of range", tok)
	}
	return v, nil
}

// Save writes the mesh as a Wavefront OBJ file.
func Save(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating mesh file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for v := 0; v < m.NumVerts(); v++ {
		p := m.Point(v)
		fmt.Fprintf(w, "v %g %g %g\n", p.X, p.Y, p.Z)
	}
	idx := 0
	for _, count := range m.FaceVertCounts {
		w.WriteString("f")
		for i := 0; i < count; i++ {
			fmt.Fprintf(w, " %d", m.FaceVertIndices[idx+i]+1)
		}
		w.WriteByte('\n')
		idx += count
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing mesh file: %w", err)
	}
	return nil
}
