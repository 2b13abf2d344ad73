package transform

import (
	"fmt"

	"github.com/sqlshift/sqlshift/ir"
)

// Walker drives the chain over a tree, outermost-first: the chain runs on
// a node before the walker descends into the (possibly replaced) node's
// current children. Top-down order is what lets the alias rule identify
// the outermost projection; the remaining rules only inspect the current
// node and its operands, so ancestor order does not affect them.
type Walker struct {
	chain *Chain
	ctx   *Context
}

func NewWalker(chain *Chain, ctx *Context) *Walker {
	return &Walker{chain: chain, ctx: ctx}
}

// Rewrite applies the chain over the tree rooted at node and returns the
// rewritten root. The tree is mutated in place; the returned root differs
// from node only when a rule replaced the root itself.
func (w *Walker) Rewrite(node ir.Node) (ir.Node, error) {
	switch n := node.(type) {
	case ir.Expr:
		return w.rewriteExpr(n)
	case *ir.Table:
		return n, nil
	}
	return nil, fmt.Errorf("transform: unsupported node %T", node)
}

func (w *Walker) rewriteExpr(node ir.Expr) (ir.Expr, error) {
	if sel, ok := node.(*ir.Select); ok {
		w.ctx.EnterSelect(sel)
	}

	out := node
	switch node.(type) {
	case *ir.Call, *ir.Case, *ir.Select:
		var err error
		out, err = w.chain.Apply(node, w.ctx)
		if err != nil {
			return nil, err
		}
	}

	// Descend into the children of the rewritten node, not the original:
	// a replacement's operands still need their own pass, but the
	// replacement itself is not re-run through the chain.
	if err := w.walkChildren(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (w *Walker) walkChildren(node ir.Expr) error {
	switch n := node.(type) {
	case *ir.Call:
		for i, operand := range n.Operands {
			replaced, err := w.rewriteExpr(operand)
			if err != nil {
				return err
			}
			n.SetOperand(i, replaced)
		}
	case *ir.Case:
		if n.Operand != nil {
			replaced, err := w.rewriteExpr(n.Operand)
			if err != nil {
				return err
			}
			n.Operand = replaced
		}
		for i, when := range n.Whens {
			replaced, err := w.rewriteExpr(when)
			if err != nil {
				return err
			}
			n.Whens[i] = replaced
		}
		for i, then := range n.Thens {
			replaced, err := w.rewriteExpr(then)
			if err != nil {
				return err
			}
			n.Thens[i] = replaced
		}
		if n.Else != nil {
			replaced, err := w.rewriteExpr(n.Else)
			if err != nil {
				return err
			}
			n.Else = replaced
		}
	case *ir.Select:
		for i, item := range n.Projection {
			replaced, err := w.rewriteExpr(item)
			if err != nil {
				return err
			}
			n.Projection[i] = replaced
		}
		if sub, ok := n.From.(*ir.Subquery); ok {
			replaced, err := w.rewriteExpr(sub.Select)
			if err != nil {
				return err
			}
			if inner, ok := replaced.(*ir.Select); ok {
				sub.Select = inner
			}
		}
		if n.Where != nil {
			replaced, err := w.rewriteExpr(n.Where)
			if err != nil {
				return err
			}
			n.Where = replaced
		}
		for i, g := range n.GroupBy {
			replaced, err := w.rewriteExpr(g)
			if err != nil {
				return err
			}
			n.GroupBy[i] = replaced
		}
		if n.Having != nil {
			replaced, err := w.rewriteExpr(n.Having)
			if err != nil {
				return err
			}
			n.Having = replaced
		}
		for i := range n.OrderBy {
			replaced, err := w.rewriteExpr(n.OrderBy[i].Expr)
			if err != nil {
				return err
			}
			n.OrderBy[i].Expr = replaced
		}
		if n.Limit != nil {
			replaced, err := w.rewriteExpr(n.Limit)
			if err != nil {
				return err
			}
			n.Limit = replaced
		}
	case *ir.Subquery:
		replaced, err := w.rewriteExpr(n.Select)
		if err != nil {
			return err
		}
		if inner, ok := replaced.(*ir.Select); ok {
			n.Select = inner
		}
	}
	return nil
}
