// Package transform implements the condition-gated rewrite chain that
// adapts a resolved source-dialect tree to the target dialect's
// semantics: index-base conversion, implicit-cast insertion, UDF
// transport and fallback, alias re-attachment.
//
// Rules mutate call nodes in place or construct replacements; the walker
// drives them over the tree. Rule instances may carry per-conversion
// state, so each conversion constructs a fresh chain.
package transform

import "github.com/sqlshift/sqlshift/ir"

// Rule is a single condition→rewrite unit operating on one call-shaped
// node. Condition must be read-only with respect to the tree; Rewrite may
// mutate the node in place or return a replacement.
type Rule interface {
	Name() string

	// Condition reports whether the rule applies to node. A returned
	// error is fatal to the conversion (e.g. a type derivation the rule
	// requires failed against every enclosing scope).
	Condition(node ir.Expr, ctx *Context) (bool, error)

	// Rewrite returns the replacement for node, which may be node itself
	// mutated in place.
	Rewrite(node ir.Expr, ctx *Context) (ir.Expr, error)
}

// Chain is an ordered sequence of rules. Each rule is applied to the
// output of the previous one, so later rules see and build on earlier
// rewrites. The order is load-bearing: cast insertion runs before
// redundant-cast removal, and UDF fallback runs after transport so a
// missing transport mapping degrades instead of being masked.
type Chain struct {
	rules []Rule
}

func NewChain(rules ...Rule) *Chain {
	return &Chain{rules: rules}
}

// Apply runs every rule in order against node, threading each rule's
// output into the next.
func (c *Chain) Apply(node ir.Expr, ctx *Context) (ir.Expr, error) {
	for _, r := range c.rules {
		ok, err := r.Condition(node, ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		next, err := r.Rewrite(node, ctx)
		if err != nil {
			return nil, err
		}
		ctx.noteApplied(r.Name())
		node = next
	}
	return node, nil
}
