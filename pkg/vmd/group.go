package vmd

import "sort"

// MotionGroup is every keyframe of one bone, ordered by frame.
type MotionGroup struct {
	Name    string
	Motions []Motion
}

// MorphGroup is every keyframe of one morph, ordered by frame.
type MorphGroup struct {
	Name   string
	Morphs []Morph
}

// GroupMotions partitions motions by bone name. Groups appear in the order
// their name is first seen; within a group samples are stably sorted by
// frame, so duplicate frames keep their recorded order. The input slice is
// not modified.
func GroupMotions(motions []Motion) []MotionGroup {
	index := make(map[string]int)
	var groups []MotionGroup
	for _, m := range motions {
		i, ok := index[m.BoneName]
		if !ok {
			i = len(groups)
			index[m.BoneName] = i
			groups = append(groups, MotionGroup{Name: m.BoneName})
		}
		groups[i].Motions = append(groups[i].Motions, m)
	}
	for _, g := range groups {
		s := g.Motions
		sort.SliceStable(s, func(a, b int) bool { return s[a].Frame < s[b].Frame })
	}
	return groups
}

// GroupMorphs partitions morphs by morph name with the same ordering rules
// as GroupMotions.
func GroupMorphs(morphs []Morph) []MorphGroup {
	index := make(map[string]int)
	var groups []MorphGroup
	for _, m := range morphs {
		i, ok := index[m.MorphName]
		if !ok {
			i = len(groups)
			index[m.MorphName] = i
			groups = append(groups, MorphGroup{Name: m.MorphName})
		}
		groups[i].Morphs = append(groups[i].Morphs, m)
	}
	for _, g := range groups {
		s := g.Morphs
		sort.SliceStable(s, func(a, b int) bool { return s[a].Frame < s[b].Frame })
	}
	return groups
}
