package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"journal-workflow/models"

	"github.com/BurntSushi/toml"
)

// LengthRule is the minimum character count for a recommendation's free text.
type LengthRule struct {
	Summary       int `toml:"summary"`
	Justification int `toml:"justification"`
}

type WorkflowPolicy struct {
	// RequireUpstreamRecommendations blocks accept, reject and request_revisions from
	// under_review until every downstream assignment has filed.
	RequireUpstreamRecommendations bool                  `toml:"require_upstream_recommendations"`
	MinLengths                     map[string]LengthRule `toml:"min_lengths"`
}

func DefaultPolicy() WorkflowPolicy {
	return WorkflowPolicy{
		MinLengths: map[string]LengthRule{
			string(models.RoleAreaEditor):    {Summary: 20, Justification: 50},
			string(models.RoleEditorInChief): {Summary: 20},
		},
	}
}

// LoadPolicy overlays the TOML file at path on DefaultPolicy. A missing file yields the defaults.
func LoadPolicy(path string) (WorkflowPolicy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return policy, nil
	}

	md, err := toml.DecodeFile(path, &policy)
	if err != nil {
		return WorkflowPolicy{}, fmt.Errorf("decode workflow policy %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return WorkflowPolicy{}, fmt.Errorf("workflow policy %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := policy.validate(); err != nil {
		return WorkflowPolicy{}, fmt.Errorf("workflow policy %s: %w", path, err)
	}
	return policy, nil
}

func (p WorkflowPolicy) validate() error {
	for role, rule := range p.MinLengths {
		if !models.UserRole(role).Valid() || role == string(models.RoleAuthor) {
			return fmt.Errorf("min_lengths: %q is not a recommending role", role)
		}
		if rule.Summary < 0 || rule.Justification < 0 {
			return fmt.Errorf("min_lengths.%s: lengths must not be negative", role)
		}
	}
	return nil
}

// MinLengthFor returns the rule for role. Summaries are never allowed to be empty.
func (p WorkflowPolicy) MinLengthFor(role models.UserRole) LengthRule {
	rule := p.MinLengths[string(role)]
	if rule.Summary < 1 {
		rule.Summary = 1
	}
	return rule
}
