package netviz

import (
	"image/color"
	"math/rand"
	"sort"

	"github.com/rdvisser/socionet/pkg/vistable"
)

// Scene owns every live entity: nodes, links, packages and the group
// palette. Entities enter and leave only through the ingestion API below,
// driven by the external data tables. Links and packages hold non-owning
// references to their endpoint nodes.
type Scene struct {
	opts   *Options
	groups *Groups

	Nodes    []*Node
	Links    []*Link
	Packages []*Package

	// Source tables retained from the last Set* call, so timestamp
	// filters can rebuild the visible subset from scratch.
	nodeTable    *vistable.Table
	linkTable    *vistable.Table
	packageTable *vistable.Table
}

func NewScene(opts *Options) *Scene {
	return &Scene{opts: opts, groups: NewGroups()}
}

func (s *Scene) Groups() *Groups { return s.groups }

// --- node ingestion ---

// SetNodes replaces the node collection with the rows of t, in row order.
func (s *Scene) SetNodes(t *vistable.Table) error {
	s.nodeTable = t
	s.Nodes = nil
	return s.ingestNodes(t.Rows(), t.Has("id"), t.Has("value"))
}

// AddNodes merges the rows of t into the existing collection.
func (s *Scene) AddNodes(t *vistable.Table) error {
	return s.ingestNodes(t.Rows(), t.Has("id"), t.Has("value"))
}

func (s *Scene) ingestNodes(rows []vistable.Row, hasID, hasValue bool) error {
	if !hasID {
		return &MissingColumnError{Kind: "nodes", Column: "id"}
	}
	for _, row := range rows {
		if err := s.applyNodeRow(row); err != nil {
			return err
		}
	}
	if hasValue {
		s.scaleNodeRadii()
	}
	return nil
}

func (s *Scene) applyNodeRow(row vistable.Row) error {
	id, ok := row.Str("id")
	if !ok {
		return &InvalidArgumentError{Reason: "node row has no id value"}
	}
	action := "update"
	if a, ok := row.Str("action"); ok {
		action = a
	}
	switch action {
	case "create":
		n := s.newNode(id, row)
		if _, i := s.findNode(id); i >= 0 {
			s.Nodes[i] = n
		} else {
			s.Nodes = append(s.Nodes, n)
		}
	case "update":
		if n, _ := s.findNode(id); n != nil {
			n.apply(row)
		} else {
			s.Nodes = append(s.Nodes, s.newNode(id, row))
		}
	case "delete":
		_, i := s.findNode(id)
		if i < 0 {
			return &NotFoundError{Kind: "node", ID: id}
		}
		s.Nodes = append(s.Nodes[:i], s.Nodes[i+1:]...)
		s.dropDependents(id)
	default:
		return &InvalidActionError{Action: action}
	}
	return nil
}

func (s *Scene) newNode(id string, row vistable.Row) *Node {
	n := &Node{
		ID:     id,
		Radius: s.opts.NodeRadiusMin,
		X:      float64(s.opts.Width)/2 + (rand.Float64()-0.5)*float64(s.opts.Width)/2,
		Y:      float64(s.opts.Height)/2 + (rand.Float64()-0.5)*float64(s.opts.Height)/2,
	}
	n.apply(row)
	return n
}

func (s *Scene) findNode(id string) (*Node, int) {
	for i, n := range s.Nodes {
		if n.ID == id {
			return n, i
		}
	}
	return nil, -1
}

// dropDependents cascade-deletes links and packages whose endpoint node
// was removed, so no entity is ever left holding a dangling reference.
func (s *Scene) dropDependents(nodeID string) {
	links := s.Links[:0]
	for _, l := range s.Links {
		if l.FromID != nodeID && l.ToID != nodeID {
			links = append(links, l)
		}
	}
	s.Links = links
	pkgs := s.Packages[:0]
	for _, p := range s.Packages {
		if p.FromID != nodeID && p.ToID != nodeID {
			pkgs = append(pkgs, p)
		}
	}
	s.Packages = pkgs
}

// --- link ingestion ---

func (s *Scene) SetLinks(t *vistable.Table) error {
	s.linkTable = t
	s.Links = nil
	return s.ingestLinks(t.Rows(), t.Has("from") && t.Has("to"), t.Has("value"), t)
}

func (s *Scene) AddLinks(t *vistable.Table) error {
	return s.ingestLinks(t.Rows(), t.Has("from") && t.Has("to"), t.Has("value"), t)
}

func (s *Scene) ingestLinks(rows []vistable.Row, hasKeys, hasValue bool, t *vistable.Table) error {
	if !hasKeys {
		col := "from"
		if t.Has("from") {
			col = "to"
		}
		return &MissingColumnError{Kind: "links", Column: col}
	}
	for _, row := range rows {
		if err := s.applyLinkRow(row); err != nil {
			return err
		}
	}
	if hasValue {
		s.scaleLinkWidths()
	}
	return nil
}

func (s *Scene) applyLinkRow(row vistable.Row) error {
	action := "create"
	if a, ok := row.Str("action"); ok {
		action = a
	}
	id, hasID := row.Str("id")
	switch action {
	case "create":
		l, err := s.newLink(id, hasID, row)
		if err != nil {
			return err
		}
		if i := s.findLink(id, hasID); i >= 0 {
			s.Links[i] = l
		} else {
			s.Links = append(s.Links, l)
		}
	case "update":
		if i := s.findLink(id, hasID); i >= 0 {
			l := s.Links[i]
			l.apply(row)
			return s.relinkEndpoints(l, row)
		}
		l, err := s.newLink(id, hasID, row)
		if err != nil {
			return err
		}
		s.Links = append(s.Links, l)
	case "delete":
		i := s.findLink(id, hasID)
		if i < 0 {
			return &NotFoundError{Kind: "link", ID: id}
		}
		s.Links = append(s.Links[:i], s.Links[i+1:]...)
	default:
		return &InvalidActionError{Action: action}
	}
	return nil
}

func (s *Scene) newLink(id string, hasID bool, row vistable.Row) (*Link, error) {
	fromID, okF := row.Str("from")
	toID, okT := row.Str("to")
	if !okF || !okT {
		return nil, &InvalidArgumentError{Reason: "link row has no from/to value"}
	}
	from, _ := s.findNode(fromID)
	if from == nil {
		return nil, &NotFoundError{Kind: "node", ID: fromID}
	}
	to, _ := s.findNode(toID)
	if to == nil {
		return nil, &NotFoundError{Kind: "node", ID: toID}
	}
	l := &Link{
		ID: id, HasID: hasID,
		FromID: fromID, ToID: toID,
		From: from, To: to,
		Width:     s.opts.LinkWidthMin,
		Length:    s.opts.LinksDefaultLength,
		Stiffness: s.opts.Physics.Stiffness,
		Color:     color.RGBA{43, 124, 233, 255},
	}
	l.apply(row)
	return l, nil
}

func (s *Scene) relinkEndpoints(l *Link, row vistable.Row) error {
	if fromID, ok := row.Str("from"); ok && fromID != l.FromID {
		from, _ := s.findNode(fromID)
		if from == nil {
			return &NotFoundError{Kind: "node", ID: fromID}
		}
		l.FromID, l.From = fromID, from
	}
	if toID, ok := row.Str("to"); ok && toID != l.ToID {
		to, _ := s.findNode(toID)
		if to == nil {
			return &NotFoundError{Kind: "node", ID: toID}
		}
		l.ToID, l.To = toID, to
	}
	return nil
}

func (s *Scene) findLink(id string, hasID bool) int {
	if !hasID {
		return -1
	}
	for i, l := range s.Links {
		if l.HasID && l.ID == id {
			return i
		}
	}
	return -1
}

// --- package ingestion ---

func (s *Scene) SetPackages(t *vistable.Table) error {
	s.packageTable = t
	s.Packages = nil
	return s.ingestPackages(t.Rows(), t.Has("from") && t.Has("to"), t.Has("value"), t)
}

func (s *Scene) AddPackages(t *vistable.Table) error {
	return s.ingestPackages(t.Rows(), t.Has("from") && t.Has("to"), t.Has("value"), t)
}

func (s *Scene) ingestPackages(rows []vistable.Row, hasKeys, hasValue bool, t *vistable.Table) error {
	if !hasKeys {
		col := "from"
		if t.Has("from") {
			col = "to"
		}
		return &MissingColumnError{Kind: "packages", Column: col}
	}
	for _, row := range rows {
		if err := s.applyPackageRow(row); err != nil {
			return err
		}
	}
	if hasValue {
		s.scalePackageRadii()
	}
	return nil
}

func (s *Scene) applyPackageRow(row vistable.Row) error {
	action := "create"
	if a, ok := row.Str("action"); ok {
		action = a
	}
	id, hasID := row.Str("id")
	switch action {
	case "create":
		p, err := s.newPackage(id, hasID, row)
		if err != nil {
			return err
		}
		if i := s.findPackage(id, hasID); i >= 0 {
			s.Packages[i] = p
		} else {
			s.Packages = append(s.Packages, p)
		}
	case "update":
		if i := s.findPackage(id, hasID); i >= 0 {
			s.Packages[i].apply(row)
			return nil
		}
		p, err := s.newPackage(id, hasID, row)
		if err != nil {
			return err
		}
		s.Packages = append(s.Packages, p)
	case "delete":
		i := s.findPackage(id, hasID)
		if i < 0 {
			return &NotFoundError{Kind: "package", ID: id}
		}
		s.Packages = append(s.Packages[:i], s.Packages[i+1:]...)
	default:
		return &InvalidActionError{Action: action}
	}
	return nil
}

func (s *Scene) newPackage(id string, hasID bool, row vistable.Row) (*Package, error) {
	fromID, okF := row.Str("from")
	toID, okT := row.Str("to")
	if !okF || !okT {
		return nil, &InvalidArgumentError{Reason: "package row has no from/to value"}
	}
	from, _ := s.findNode(fromID)
	if from == nil {
		return nil, &NotFoundError{Kind: "node", ID: fromID}
	}
	to, _ := s.findNode(toID)
	if to == nil {
		return nil, &NotFoundError{Kind: "node", ID: toID}
	}
	p := &Package{
		ID: id, HasID: hasID,
		FromID: fromID, ToID: toID,
		From: from, To: to,
		Radius:       s.opts.PackageRadiusMin,
		Duration:     s.opts.PackageDuration,
		AutoProgress: true,
		Color:        color.RGBA{43, 124, 233, 255},
	}
	p.apply(row)
	return p, nil
}

func (s *Scene) findPackage(id string, hasID bool) int {
	if !hasID {
		return -1
	}
	for i, p := range s.Packages {
		if p.HasID && p.ID == id {
			return i
		}
	}
	return -1
}

// --- value-range scaling ---

// valueRange returns the spread of supplied values; ok is false when there
// is nothing to scale (no values, or min == max, which would divide by
// zero and is skipped defensively).
func valueRange(values []float64) (min, max float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, min != max
}

func scaleValue(v, min, max, outMin, outMax float64) float64 {
	return outMin + (v-min)/(max-min)*(outMax-outMin)
}

func (s *Scene) scaleNodeRadii() {
	var values []float64
	for _, n := range s.Nodes {
		if n.HasValue {
			values = append(values, n.Value)
		}
	}
	min, max, ok := valueRange(values)
	if !ok {
		return
	}
	for _, n := range s.Nodes {
		if n.HasValue && !n.RadiusFixed {
			n.setScaledRadius(scaleValue(n.Value, min, max, s.opts.NodeRadiusMin, s.opts.NodeRadiusMax))
		}
	}
}

func (s *Scene) scaleLinkWidths() {
	var values []float64
	for _, l := range s.Links {
		if l.HasValue {
			values = append(values, l.Value)
		}
	}
	min, max, ok := valueRange(values)
	if !ok {
		return
	}
	for _, l := range s.Links {
		if l.HasValue && !l.WidthFixed {
			l.setScaledWidth(scaleValue(l.Value, min, max, s.opts.LinkWidthMin, s.opts.LinkWidthMax))
		}
	}
}

func (s *Scene) scalePackageRadii() {
	var values []float64
	for _, p := range s.Packages {
		if p.HasValue {
			values = append(values, p.Value)
		}
	}
	min, max, ok := valueRange(values)
	if !ok {
		return
	}
	for _, p := range s.Packages {
		if p.HasValue && !p.RadiusFixed {
			p.setScaledRadius(scaleValue(p.Value, min, max, s.opts.PackageRadiusMin, s.opts.PackageRadiusMax))
		}
	}
}

// --- timestamp filtering ---

// FilterNodes rebuilds the visible node set from the retained source table,
// keeping rows with no timestamp or a timestamp at or before ts. Only
// meaningful when the nodes were loaded with SetNodes.
func (s *Scene) FilterNodes(ts float64) error {
	if s.nodeTable == nil {
		return nil
	}
	s.Nodes = nil
	return s.ingestNodes(rowsUpTo(s.nodeTable, ts), s.nodeTable.Has("id"), s.nodeTable.Has("value"))
}

func (s *Scene) FilterLinks(ts float64) error {
	if s.linkTable == nil {
		return nil
	}
	s.Links = nil
	t := s.linkTable
	return s.ingestLinks(rowsUpTo(t, ts), t.Has("from") && t.Has("to"), t.Has("value"), t)
}

func (s *Scene) FilterPackages(ts float64) error {
	if s.packageTable == nil {
		return nil
	}
	s.Packages = nil
	t := s.packageTable
	return s.ingestPackages(rowsUpTo(t, ts), t.Has("from") && t.Has("to"), t.Has("value"), t)
}

func rowsUpTo(t *vistable.Table, ts float64) []vistable.Row {
	var rows []vistable.Row
	for _, row := range t.Rows() {
		if v, ok := row.Num("timestamp"); ok && v > ts {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// TimestampRange scans all retained tables for the smallest and largest
// timestamp. ok is false when no row carries one.
func (s *Scene) TimestampRange() (start, end float64, ok bool) {
	for _, t := range []*vistable.Table{s.nodeTable, s.linkTable, s.packageTable} {
		if t == nil {
			continue
		}
		for _, row := range t.Rows() {
			v, has := row.Num("timestamp")
			if !has {
				continue
			}
			if !ok || v < start {
				start = v
			}
			if !ok || v > end {
				end = v
			}
			ok = true
		}
	}
	return start, end, ok
}

// Timestamps returns the sorted distinct timestamps across all retained
// tables, for slider stepping.
func (s *Scene) Timestamps() []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, t := range []*vistable.Table{s.nodeTable, s.linkTable, s.packageTable} {
		if t == nil {
			continue
		}
		for _, row := range t.Rows() {
			if v, ok := row.Num("timestamp"); ok && !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Float64s(out)
	return out
}

// --- selection ---

// Selection returns the indices of the selected nodes, in node order.
func (s *Scene) Selection() []int {
	var sel []int
	for i, n := range s.Nodes {
		if n.Selected {
			sel = append(sel, i)
		}
	}
	return sel
}

// SetSelection replaces the selection with the given node indices.
func (s *Scene) SetSelection(indices []int) error {
	for _, i := range indices {
		if i < 0 || i >= len(s.Nodes) {
			return &InvalidArgumentError{Reason: "selection index out of range"}
		}
	}
	for _, n := range s.Nodes {
		n.Selected = false
	}
	for _, i := range indices {
		s.Nodes[i].Selected = true
	}
	return nil
}

func (s *Scene) ClearSelection() (changed bool) {
	for _, n := range s.Nodes {
		if n.Selected {
			n.Selected = false
			changed = true
		}
	}
	return changed
}

// selectNode applies click semantics: exclusive selection by default,
// membership toggle when additive. It reports whether the selection set
// actually changed, so callers fire their change event only when it did.
func (s *Scene) selectNode(n *Node, additive bool) (changed bool) {
	if additive {
		n.Selected = !n.Selected
		return true
	}
	for _, other := range s.Nodes {
		if other != n && other.Selected {
			other.Selected = false
			changed = true
		}
	}
	if !n.Selected {
		n.Selected = true
		changed = true
	}
	return changed
}
