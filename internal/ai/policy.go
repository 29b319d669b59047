package ai

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/talgya/upkeep/internal/engine"
	"github.com/talgya/upkeep/internal/world"
)

// Category is one of the four candidate lists, in evaluation order.
type Category uint8

const (
	CategoryUpgrade Category = iota
	CategoryTrain
	CategoryMove
	CategoryShoot

	numCategories = 4
)

var categoryNames = [numCategories]string{"upgrade", "train", "move", "shoot"}

func (c Category) String() string {
	if int(c) < numCategories {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", c)
}

// ParseCategory resolves a category name.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown AI category %q", s)
}

// Rule gates or biases one category. When is an expr condition over Env; an
// empty condition always holds. Every rule on a category must hold for the
// category to be considered, and the biases of all its rules add up.
type Rule struct {
	Category string `mapstructure:"category" json:"category"`
	When     string `mapstructure:"when" json:"when"`
	Bias     int    `mapstructure:"bias" json:"bias"`
}

// Env is what rule conditions can see.
type Env struct {
	Turn       int
	Units      int
	EnemyUnits int
	Tiles      int
	Available  map[string]int
	Shortages  []string
}

type compiledRule struct {
	name     string
	category Category
	bias     int
	program  *vm.Program // nil when the rule has no condition
}

// Policy is a compiled rule set.
type Policy struct {
	rules []compiledRule
}

// DefaultPolicy enables every category with no bias.
func DefaultPolicy() *Policy {
	return &Policy{}
}

// NewPolicy compiles rules. A rule that does not compile fails the whole set.
func NewPolicy(rules []Rule) (*Policy, error) {
	p := &Policy{}
	for i, r := range rules {
		cat, err := ParseCategory(r.Category)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		cr := compiledRule{
			name:     fmt.Sprintf("%s#%d", cat, i),
			category: cat,
			bias:     r.Bias,
		}
		if r.When != "" {
			prog, err := expr.Compile(r.When, expr.Env(Env{}), expr.AsBool())
			if err != nil {
				return nil, fmt.Errorf("compile rule %q: %w", cr.name, err)
			}
			cr.program = prog
		}
		p.rules = append(p.rules, cr)
	}
	return p, nil
}

// Len returns the number of compiled rules.
func (p *Policy) Len() int {
	return len(p.rules)
}

// Choose returns the best action for player under this policy.
func (p *Policy) Choose(g Game, player world.Player) engine.Intent {
	if g.Current() != player {
		return engine.Intent{Kind: engine.IntentPass}
	}

	b := g.Board()
	enabled, bias := p.evaluate(buildEnv(g, b, player))

	var cs []candidate
	for _, c := range candidates(g, b, player) {
		if !enabled[c.category] {
			continue
		}
		c.score += bias[c.category]
		cs = append(cs, c)
	}

	top, ok := best(cs)
	if !ok {
		return engine.Intent{Kind: engine.IntentPass}
	}
	slog.Debug("ai choice", "player", player, "intent", top.intent, "category", top.category, "score", top.score)
	return top.intent
}

func (p *Policy) evaluate(env Env) (enabled [numCategories]bool, bias [numCategories]int) {
	for i := range enabled {
		enabled[i] = true
	}
	for _, r := range p.rules {
		if r.program != nil {
			result, err := vm.Run(r.program, env)
			if err != nil {
				slog.Warn("ai rule condition error", "rule", r.name, "error", err)
				enabled[r.category] = false
				continue
			}
			if match, ok := result.(bool); !ok || !match {
				enabled[r.category] = false
				continue
			}
		}
		bias[r.category] += r.bias
	}
	return enabled, bias
}

func buildEnv(g Game, b *world.Board, p world.Player) Env {
	env := Env{
		Turn:      g.Turn(),
		Units:     len(b.UnitsOf(p)),
		Tiles:     len(b.TilesOf(p)),
		Available: make(map[string]int, world.NumResources),
	}
	for _, u := range b.Units() {
		if u.Owner != p && u.Owner != world.PlayerNone {
			env.EnemyUnits++
		}
	}
	ledger := g.Economy(p)
	for _, r := range world.Resources() {
		env.Available[r.String()] = ledger.Available[r]
	}
	for _, r := range ledger.Shortages() {
		env.Shortages = append(env.Shortages, r.String())
	}
	return env
}
