// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package crossproject measures how consistent other projects' tokens are
// with the current project's.
package crossproject

import (
	"sort"

	"github.com/tfctl/tokctl/internal/comparator"
	"github.com/tfctl/tokctl/internal/log"
	"github.com/tfctl/tokctl/internal/tokens"
)

// Score weights.
const (
	commonWeight     = 100
	uniqueWeight     = 50
	differenceWeight = 30
)

// Project is a named token map to compare against.
type Project struct {
	Name   string
	Tokens tokens.TokenMap
}

// TokenValueDifference is a shared key whose values disagree.
type TokenValueDifference struct {
	Key          string  `json:"key"`
	CurrentValue any     `json:"currentValue"`
	ProjectValue any     `json:"projectValue"`
	Difference   float64 `json:"difference"`
}

// Comparison is the result for one project. Key lists are sorted.
type Comparison struct {
	ProjectName      string                 `json:"projectName"`
	ProjectTokens    tokens.TokenMap        `json:"projectTokens"`
	CommonTokens     []string               `json:"commonTokens"`
	UniqueToProject  []string               `json:"uniqueToProject"`
	UniqueToCurrent  []string               `json:"uniqueToCurrent"`
	ValueDifferences []TokenValueDifference `json:"valueDifferences"`
	ConsistencyScore float64                `json:"consistencyScore"`
}

// Compare compares current with each project independently.
func Compare(current tokens.TokenMap, projects []Project) []Comparison {
	out := make([]Comparison, 0, len(projects))
	for _, p := range projects {
		out = append(out, compareOne(current, p))
	}
	return out
}

func compareOne(current tokens.TokenMap, p Project) Comparison {
	c := Comparison{
		ProjectName:      p.Name,
		ProjectTokens:    p.Tokens,
		CommonTokens:     []string{},
		UniqueToProject:  []string{},
		UniqueToCurrent:  []string{},
		ValueDifferences: []TokenValueDifference{},
	}

	for _, k := range current.Keys() {
		if _, ok := p.Tokens[k]; ok {
			c.CommonTokens = append(c.CommonTokens, k)
		} else {
			c.UniqueToCurrent = append(c.UniqueToCurrent, k)
		}
	}
	for _, k := range p.Tokens.Keys() {
		if _, ok := current[k]; !ok {
			c.UniqueToProject = append(c.UniqueToProject, k)
		}
	}

	for _, k := range c.CommonTokens {
		cv, pv := current[k], p.Tokens[k]
		if comparator.StrictEqual(cv, pv) {
			continue
		}
		c.ValueDifferences = append(c.ValueDifferences, TokenValueDifference{
			Key:          k,
			CurrentValue: cv,
			ProjectValue: pv,
			Difference:   comparator.Distance(cv, pv),
		})
	}

	c.ConsistencyScore = Score(len(c.CommonTokens), len(c.UniqueToCurrent), len(c.UniqueToProject), len(c.ValueDifferences))
	log.Debugf("crossproject: %s common=%d unique=%d/%d diffs=%d score=%.2f",
		p.Name, len(c.CommonTokens), len(c.UniqueToCurrent), len(c.UniqueToProject),
		len(c.ValueDifferences), c.ConsistencyScore)

	return c
}

// Score is the consistency score in [0,100]. An empty union scores 0.
func Score(common, uniqueToCurrent, uniqueToProject, differences int) float64 {
	union := common + uniqueToCurrent + uniqueToProject
	if union == 0 {
		return 0
	}

	commonRatio := float64(common) / float64(union)
	uniquePenalty := float64(uniqueToCurrent+uniqueToProject) / float64(union)
	differencePenalty := float64(differences) / float64(max(common, 1))

	score := commonRatio*commonWeight - uniquePenalty*uniqueWeight - differencePenalty*differenceWeight
	return min(max(score, 0), 100)
}

// ByScore sorts comparisons, most consistent first.
func ByScore(cs []Comparison) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].ConsistencyScore > cs[j].ConsistencyScore
	})
}
