/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"log/slog"
	"slices"

	"infcanvas/internal/vector"
)

// ID identifies a registered node. IDs start at 1 and are never reused; the
// zero ID means "not registered".
type ID uint64

// Row is one spatial index entry. Bounds are canvas-global.
type Row struct {
	ID     ID
	Bounds vector.Bounds
}

// Registry is the canvas arena: it owns the id allocator, the id -> node map
// and the flat spatial index used for hit tests and drag-select.
type Registry struct {
	log   *slog.Logger
	next  ID
	nodes map[ID]*Node
	rows  []Row
}

func NewRegistry(l *slog.Logger) *Registry {
	if l == nil {
		l = slog.Default()
	}
	return &Registry{log: l, next: 1, nodes: map[ID]*Node{}}
}

// Register assigns the next id to n and adds its cached bounds to the index.
func (r *Registry) Register(n *Node) ID {
	if n.id != 0 {
		r.log.Error("node already registered", "id", n.id, "name", n.Name)
		return n.id
	}
	id := r.next
	r.next++
	n.id = id
	r.nodes[id] = n
	r.rows = append(r.rows, Row{ID: id, Bounds: n.bounds})
	return id
}

// Unregister drops the node and every index row carrying its id. It reports
// false for unknown ids.
func (r *Registry) Unregister(id ID) bool {
	if _, ok := r.nodes[id]; !ok {
		return false
	}
	delete(r.nodes, id)
	r.rows = slices.DeleteFunc(r.rows, func(row Row) bool { return row.ID == id })
	return true
}

// Update replaces the index rows for id with a single row holding b.
func (r *Registry) Update(id ID, b vector.Bounds) bool {
	if _, ok := r.nodes[id]; !ok {
		return false
	}
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Bounds = b
			return true
		}
	}
	r.rows = append(r.rows, Row{ID: id, Bounds: b})
	return true
}

// Lookup resolves id. Stale ids report false.
func (r *Registry) Lookup(id ID) (*Node, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// BoundsOf returns the indexed bounds for id.
func (r *Registry) BoundsOf(id ID) (vector.Bounds, bool) {
	for _, row := range r.rows {
		if row.ID == id {
			return row.Bounds, true
		}
	}
	return vector.Bounds{}, false
}

// At returns the ids whose bounds contain the global point p, in index order.
func (r *Registry) At(p vector.Pt) []ID {
	return r.query(func(b vector.Bounds) bool { return b.ContainsPoint(p) })
}

// Overlapping returns the ids whose bounds overlap region.
func (r *Registry) Overlapping(region vector.Bounds) []ID {
	return r.query(func(b vector.Bounds) bool { return region.Overlaps(b) })
}

// ContainedBy returns the ids whose bounds lie fully inside region.
func (r *Registry) ContainedBy(region vector.Bounds) []ID {
	return r.query(func(b vector.Bounds) bool { return region.Contains(b) })
}

func (r *Registry) query(match func(vector.Bounds) bool) []ID {
	var out []ID
	for _, row := range r.rows {
		if match(row.Bounds) {
			out = append(out, row.ID)
		}
	}
	return out
}

// Rows returns a copy of the spatial index.
func (r *Registry) Rows() []Row { return slices.Clone(r.rows) }

// IDs returns every registered id in ascending order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (r *Registry) Len() int { return len(r.nodes) }

// NextID is the id the next Register call will hand out.
func (r *Registry) NextID() ID { return r.next }
