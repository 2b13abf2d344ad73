package transform

import (
	"strings"

	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
)

// DefaultDatetimeFormat is the format pattern used when FROM_UNIXTIME is
// called without an explicit one.
const DefaultDatetimeFormat = "yyyy-MM-dd HH:mm:ss"

// FromUnixtimeRule expands epoch-to-timestamp conversion for the target
// dialect, where the bare timestamp is not directly displayable as a
// string: FROM_UNIXTIME(e) becomes
// FORMAT_DATETIME(FROM_UNIXTIME(e), 'yyyy-MM-dd HH:mm:ss'), and a
// two-argument call keeps its supplied format.
type FromUnixtimeRule struct {
	// Inner calls this instance synthesized; they carry the same operator
	// name, so the condition must skip them when the walker descends into
	// the replacement.
	synthesized map[*ir.Call]struct{}
}

func NewFromUnixtimeRule() *FromUnixtimeRule {
	return &FromUnixtimeRule{synthesized: make(map[*ir.Call]struct{})}
}

func (r *FromUnixtimeRule) Name() string { return "FromUnixtime" }

func (r *FromUnixtimeRule) Condition(node ir.Expr, ctx *Context) (bool, error) {
	call, ok := node.(*ir.Call)
	if !ok || !strings.EqualFold(call.Op.Name(), "from_unixtime") {
		return false, nil
	}
	if _, mine := r.synthesized[call]; mine {
		return false, nil
	}
	return len(call.Operands) == 1 || len(call.Operands) == 2, nil
}

func (r *FromUnixtimeRule) Rewrite(node ir.Expr, ctx *Context) (ir.Expr, error) {
	call := node.(*ir.Call)

	fromUnixtime := function.NewScalar("from_unixtime", function.Exactly(1), ir.Timestamp())
	formatDatetime := function.NewScalar("format_datetime", function.Exactly(2), ir.Varchar())

	inner := ir.NewCall(fromUnixtime, call.Operand(0))
	r.synthesized[inner] = struct{}{}

	format := ir.Expr(ir.NewStringLiteral(DefaultDatetimeFormat))
	if len(call.Operands) == 2 {
		format = call.Operand(1)
	}
	return ir.NewCall(formatDatetime, inner, format), nil
}
