// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package infer

import "sort"

// elementSegment is the path segment used for array members.
const elementSegment = "[]"

// observation holds the statistics gathered for one field path.
type observation struct {
	depth   int
	present int // times the path was visited, nulls included
	nulls   int
	counts  [numKinds]int
	objects int // times the value was an expanded object
	opaque  bool

	examples       []any
	hasInt         bool
	intMin, intMax int64

	order    []string
	children map[string]*observation

	// elem collects array members under the union and first strategies.
	elem   *observation
	sealed bool

	// variants collects array members by shape under the all strategy.
	variantOrder []string
	variants     map[string]*observation
	elemNulls    int
}

func newObservation(depth int) *observation {
	return &observation{depth: depth}
}

func (o *observation) child(name string, depth int) *observation {
	if o.children == nil {
		o.children = make(map[string]*observation)
	}
	c, ok := o.children[name]
	if !ok {
		c = newObservation(depth)
		o.children[name] = c
		o.order = append(o.order, name)
	}
	return c
}

func (o *observation) element(depth int) *observation {
	if o.elem == nil {
		o.elem = newObservation(depth)
	}
	return o.elem
}

func (o *observation) variant(key string, depth int) *observation {
	if o.variants == nil {
		o.variants = make(map[string]*observation)
	}
	v, ok := o.variants[key]
	if !ok {
		v = newObservation(depth)
		o.variants[key] = v
		o.variantOrder = append(o.variantOrder, key)
	}
	return v
}

func (o *observation) addExample(v any) {
	if len(o.examples) >= MaxExamples {
		return
	}
	for _, ex := range o.examples {
		if ex == v {
			return
		}
	}
	o.examples = append(o.examples, v)
}

func (o *observation) trackInt(i int64) {
	if !o.hasInt {
		o.hasInt = true
		o.intMin, o.intMax = i, i
		return
	}
	o.intMin = min(o.intMin, i)
	o.intMax = max(o.intMax, i)
}

// Accumulator folds sample records into per-path statistics.
// It is not safe for concurrent use; each inference run owns one.
type Accumulator struct {
	opts    Options
	root    *observation
	records int
}

// NewAccumulator returns an empty Accumulator. Invalid options are rejected
// before any record is processed.
func NewAccumulator(opts Options) (*Accumulator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Accumulator{opts: opts, root: newObservation(0)}, nil
}

// Options returns the options the Accumulator was created with.
func (a *Accumulator) Options() Options {
	return a.opts
}

// Records returns the number of records observed so far.
func (a *Accumulator) Records() int {
	return a.records
}

// Observe folds one top-level record. Members are visited in sorted key
// order so that the order of keys inside a record never matters; the first
// record that introduces a path fixes its position in the output.
func (a *Accumulator) Observe(record map[string]any) {
	a.records++
	a.root.present++
	a.root.counts[kindObject]++
	a.root.objects++
	a.observeMembers(a.root, record, 1)
}

func (a *Accumulator) observeMembers(parent *observation, m map[string]any, depth int) {
	for _, key := range sortedKeys(m) {
		a.observeValue(parent.child(key, depth), m[key], depth)
	}
}

func (a *Accumulator) observeValue(obs *observation, v any, depth int) {
	obs.present++
	kind, scalar := classify(v)
	if kind == kindNull {
		obs.nulls++
		return
	}
	obs.counts[kind]++

	switch kind {
	case kindObject:
		if depth >= a.opts.MaxDepth {
			obs.opaque = true
			return
		}
		obs.objects++
		a.observeMembers(obs, scalar.(map[string]any), depth+1)
	case kindArray:
		if depth >= a.opts.MaxDepth {
			obs.opaque = true
			return
		}
		a.observeElements(obs, scalar.([]any), depth+1)
	case kindInteger:
		obs.trackInt(scalar.(int64))
		obs.addExample(scalar)
	default:
		obs.addExample(scalar)
	}
}

func (a *Accumulator) observeElements(arr *observation, items []any, depth int) {
	switch a.opts.ArrayHandling {
	case ArrayAll:
		for _, item := range items {
			kind, scalar := classify(item)
			if kind == kindNull {
				arr.elemNulls++
				continue
			}
			a.observeValue(arr.variant(shapeKey(kind, scalar), depth), item, depth)
		}
		return
	case ArrayFirst:
		if arr.sealed || len(items) == 0 {
			return
		}
		arr.sealed = true
	}

	elem := arr.element(depth)
	for _, item := range items {
		a.observeValue(elem, item, depth)
	}
}

// Paths returns every discovered field path in discovery order. Array
// members appear under the "[]" segment.
func (a *Accumulator) Paths() []string {
	var paths []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}
	var walk func(obs *observation, prefix string)
	walk = func(obs *observation, prefix string) {
		for _, name := range obs.order {
			path := name
			if prefix != "" {
				path = prefix + "." + name
			}
			add(path)
			walk(obs.children[name], path)
		}
		elemPath := prefix + "." + elementSegment
		if obs.elem != nil {
			add(elemPath)
			walk(obs.elem, elemPath)
		}
		if len(obs.variantOrder) > 0 {
			add(elemPath)
			for _, key := range obs.variantOrder {
				walk(obs.variants[key], elemPath)
			}
		}
	}
	walk(a.root, "")
	return paths
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
