package domain

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var builtinRules []byte

type Rule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Response string   `yaml:"response"`
}

type ruleFile struct {
	Rules   []Rule `yaml:"rules"`
	Default string `yaml:"default"`
}

// Responder maps a message to a canned reply through an ordered rule table.
type Responder struct {
	rules    []Rule
	fallback string
}

// ParseRules builds a Responder from a YAML rule table.
func ParseRules(data []byte) (*Responder, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse chatbot rules: %w", err)
	}
	if strings.TrimSpace(f.Default) == "" {
		return nil, errors.New("chatbot rules: default response is required")
	}

	rules := make([]Rule, 0, len(f.Rules))
	for i, r := range f.Rules {
		if strings.TrimSpace(r.Response) == "" {
			return nil, fmt.Errorf("chatbot rule %d (%s): response is required", i, r.Name)
		}
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 {
			return nil, fmt.Errorf("chatbot rule %d (%s): at least one keyword is required", i, r.Name)
		}
		r.Keywords = kws
		rules = append(rules, r)
	}
	return &Responder{rules: rules, fallback: f.Default}, nil
}

// DefaultResponder uses the rule table compiled into the binary.
func DefaultResponder() (*Responder, error) {
	return ParseRules(builtinRules)
}

// Match returns the first rule with a keyword contained in message, ignoring case.
func (r *Responder) Match(message string) (Rule, bool) {
	lower := strings.ToLower(message)
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule, true
			}
		}
	}
	return Rule{}, false
}

func (r *Responder) Respond(message string) string {
	if rule, ok := r.Match(message); ok {
		return rule.Response
	}
	return r.fallback
}

func (r *Responder) Default() string { return r.fallback }

func (r *Responder) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}
