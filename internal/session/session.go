// Package session persists recorded guide placements. The on-disk format
// is the version-2 JSON schema shared with the Maya-side exporter, so
// files written here load there and vice versa.
package session

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mgear-dev/mgear/pkg/placement"
)

// FormatVersion is the placement file schema written by Save.
const FormatVersion = 2

// DefaultSampleCount is the number of surface vertices recorded per
// guide when the caller does not override it.
const DefaultSampleCount = 32

// GuideRecord is one guide's topology-relative placement.
type GuideRecord struct {
	Name            string    `json:"name"`
	NodeMatrix      []float64 `json:"node_matrix"`
	RefMatrix       []float64 `json:"ref_matrix"`
	MirrorRefMatrix []float64 `json:"mr_ref_matrix"`
	VertIDs         []int     `json:"vert_ids"`
	MirrorVertIDs   []int     `json:"mr_vert_ids"`
}

// Placement is a recorded session: every guide's record plus the order
// in which the hierarchy was crawled.
type Placement struct {
	Version     int           `json:"version"`
	SampleCount int           `json:"sample_count"`
	Hierarchy   []string      `json:"ordered_hierarchy"`
	Guides      []GuideRecord `json:"guides"`
}

// FromResults packs recorder outputs into a Placement. names supplies
// the guide order; nodeMatrices is the flat G*16 buffer of original
// guide world matrices.
func FromResults(names []string, nodeMatrices []float64,
	primary placement.PrimaryResult, mirror placement.MirrorResult,
	sampleCount int) *Placement {

	p := &Placement{
		Version:     FormatVersion,
		SampleCount: sampleCount,
		Hierarchy:   names,
		Guides:      make([]GuideRecord, len(names)),
	}
	for g := range names {
		p.Guides[g] = GuideRecord{
			Name:            names[g],
			NodeMatrix:      append([]float64{}, nodeMatrices[g*16:(g+1)*16]...),
			RefMatrix:       append([]float64{}, primary.RefMatrices[g*16:(g+1)*16]...),
			MirrorRefMatrix: append([]float64{}, mirror.RefMatrices[g*16:(g+1)*16]...),
			VertIDs:         append([]int{}, primary.VertIDs[g*sampleCount:(g+1)*sampleCount]...),
			MirrorVertIDs:   append([]int{}, mirror.VertIDs[g*sampleCount:(g+1)*sampleCount]...),
		}
	}
	return p
}

// Flatten unpacks the records back into the flat buffers the reposition
// solver consumes.
func (p *Placement) Flatten() (nodeMatrices, refMatrices, mrRefMatrices []float64, vertIDs, mrVertIDs []int) {
	g := len(p.Guides)
	n := p.SampleCount
	nodeMatrices = make([]float64, 0, g*16)
	refMatrices = make([]float64, 0, g*16)
	mrRefMatrices = make([]float64, 0, g*16)
	vertIDs = make([]int, 0, g*n)
	mrVertIDs = make([]int, 0, g*n)

	for _, rec := range p.Guides {
		nodeMatrices = append(nodeMatrices, rec.NodeMatrix...)
		refMatrices = append(refMatrices, rec.RefMatrix...)
		mrRefMatrices = append(mrRefMatrices, rec.MirrorRefMatrix...)
		vertIDs = append(vertIDs, rec.VertIDs...)
		mrVertIDs = append(mrVertIDs, rec.MirrorVertIDs...)
	}
	return
}

// Validate checks buffer lengths against the sample count.
func (p *Placement) Validate() error {
	if p.Version != FormatVersion {
		return fmt.Errorf("unsupported placement version %d (want %d); legacy single-vertex files cannot be replayed", p.Version, FormatVersion)
	}
	if p.SampleCount < 1 {
		return fmt.Errorf("invalid sample count %d", p.SampleCount)
	}
	for _, rec := range p.Guides {
		if len(rec.NodeMatrix) != 16 || len(rec.RefMatrix) != 16 || len(rec.MirrorRefMatrix) != 16 {
			return fmt.Errorf("guide %q: matrices must have 16 elements", rec.Name)
		}
		if len(rec.VertIDs) != p.SampleCount || len(rec.MirrorVertIDs) != p.SampleCount {
			return fmt.Errorf("guide %q: vertex lists must have %d entries", rec.Name, p.SampleCount)
		}
	}
	return nil
}

// Save writes the placement as indented JSON.
func Save(path string, p *Placement) error {
	data, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding placement: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing placement: %w", err)
	}
	return nil
}

// Load reads and validates a placement file.
func Load(path string) (*Placement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading placement: %w", err)
	}
	var p Placement
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding placement %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("placement %s: %w", path, err)
	}
	return &p, nil
}
