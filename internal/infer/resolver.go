// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package infer

import (
	"fmt"
	"math"
	"slices"

	"github.com/akrishnanDG/schema-infer-plugin/internal/schema"
)

// Resolver turns accumulated statistics into a schema tree.
type Resolver struct {
	opts      Options
	namespace string
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithNamespace sets the namespace recorded on resolved schemas.
func WithNamespace(ns string) ResolverOption {
	return func(r *Resolver) {
		r.namespace = ns
	}
}

// NewResolver returns a Resolver applying the given policies.
func NewResolver(opts Options, ropts ...ResolverOption) (*Resolver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	r := &Resolver{opts: opts}
	for _, o := range ropts {
		o(r)
	}
	return r, nil
}

// Resolve builds the schema tree for everything acc has observed.
// totalRecords is the number of sampled records; it only matters when it
// exceeds acc.Records(), for instance when some samples could not be
// parsed and therefore never reached the Accumulator.
//
// Resolve never fails: conflicting evidence is settled by policy.
func (r *Resolver) Resolve(acc *Accumulator, name string, totalRecords int) *schema.InferredSchema {
	total := max(totalRecords, acc.Records())
	return &schema.InferredSchema{
		Name:        name,
		Namespace:   r.namespace,
		Description: "Auto-generated schema for " + name,
		Fields:      r.resolveMembers(acc.root, total),
	}
}

func (r *Resolver) resolveMembers(parent *observation, parentCount int) []schema.SchemaField {
	fields := make([]schema.SchemaField, 0, len(parent.order))
	for _, name := range parent.order {
		fields = append(fields, r.resolveField(name, parent.children[name], parentCount))
	}
	return fields
}

func (r *Resolver) resolveField(name string, obs *observation, parentCount int) schema.SchemaField {
	kind, confidence, description := r.dominantKind(obs)

	absent := max(parentCount-obs.present, 0)
	nullable, required := r.nullability(obs.nulls, absent, obs.present)

	examples := slices.Clone(obs.examples)
	field := schema.SchemaField{
		Name: name,
		Type: schema.FieldType{
			Kind:       kind,
			Nullable:   nullable,
			Confidence: confidence,
			Examples:   examples,
			Wide:       obs.hasInt && (obs.intMin < math.MinInt32 || obs.intMax > math.MaxInt32),
		},
		Required:    required,
		Description: description,
		Examples:    examples,
	}

	switch kind {
	case schema.KindObject:
		if obs.opaque {
			field.Opaque = true
			break
		}
		field.Fields = r.resolveMembers(obs, obs.objects)
	case schema.KindArray:
		if obs.opaque {
			field.Opaque = true
			break
		}
		r.resolveElements(&field, obs)
	}
	return field
}

// dominantKind picks the resolved kind of a path. Integers are widened to
// floats when both were seen; a kind below the confidence threshold falls
// back to string.
func (r *Resolver) dominantKind(obs *observation) (schema.Kind, float64, string) {
	counts := obs.counts
	if counts[kindInteger] > 0 && counts[kindFloat] > 0 {
		counts[kindFloat] += counts[kindInteger]
		counts[kindInteger] = 0
	}

	nonNull := 0
	for k := kindBoolean; k < numKinds; k++ {
		nonNull += counts[k]
	}
	if nonNull == 0 {
		return schema.KindString, 0, "only null values observed"
	}

	dominant, best := kindString, 0
	for _, k := range dominanceOrder {
		if counts[k] > best {
			dominant, best = k, counts[k]
		}
	}

	confidence := float64(best) / float64(nonNull)
	if confidence < r.opts.ConfidenceThreshold {
		return schema.KindString, confidence, fmt.Sprintf(
			"mixed types observed: %s at confidence %.2f is below threshold %.2f",
			dominant.schemaKind(), confidence, r.opts.ConfidenceThreshold)
	}
	return dominant.schemaKind(), confidence, ""
}

func (r *Resolver) nullability(nulls, absent, present int) (nullable, required bool) {
	switch r.opts.NullHandling {
	case NullRequired:
		return nulls > 0, true
	case NullIgnore:
		return false, present > 0
	default:
		missing := nulls > 0 || absent > 0
		return missing, !missing
	}
}

func (r *Resolver) resolveElements(field *schema.SchemaField, arr *observation) {
	if r.opts.ArrayHandling == ArrayAll {
		r.resolveVariants(field, arr)
		return
	}
	if arr.elem == nil {
		field.Element = unknownElement(field.Name)
		return
	}
	elem := r.resolveField(field.Name, arr.elem, arr.elem.present)
	elem.Required = true
	field.Element = &elem
}

func (r *Resolver) resolveVariants(field *schema.SchemaField, arr *observation) {
	if len(arr.variantOrder) == 0 {
		field.Element = unknownElement(field.Name)
		if arr.elemNulls > 0 {
			field.Element.Type.Nullable, _ = r.nullability(arr.elemNulls, 0, arr.elemNulls)
		}
		return
	}

	nullable, _ := r.nullability(arr.elemNulls, 0, arr.elemNulls)
	variants := make([]schema.SchemaField, 0, len(arr.variantOrder))
	dominant, best := 0, -1
	for i, key := range arr.variantOrder {
		obs := arr.variants[key]
		v := r.resolveField(field.Name, obs, obs.present)
		v.Required = true
		v.Type.Nullable = nullable
		variants = append(variants, v)
		if obs.present > best {
			dominant, best = i, obs.present
		}
	}

	elem := variants[dominant]
	field.Element = &elem
	if len(variants) > 1 {
		field.Variants = variants
	}
}

func unknownElement(name string) *schema.SchemaField {
	return &schema.SchemaField{
		Name:        name,
		Type:        schema.FieldType{Kind: schema.KindString},
		Required:    true,
		Description: "no elements observed",
	}
}
