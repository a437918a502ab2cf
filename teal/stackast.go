package teal

// ExprKind discriminates the stack-AST expression tree's leaf and internal
// node kinds.
type ExprKind uint8

const (
	ExprArg ExprKind = iota
	ExprConstInt
	ExprConstBytes
	ExprUnknown
	ExprOp
)

// Expr is one node of the symbolic expression tree a basic block's stack
// effect is reconstructed into: a leaf (a stack-input placeholder, a
// literal, or an unresolved reference) or an opcode application over its
// operand subtrees.
type Expr struct {
	Kind     ExprKind
	ArgIndex int    // meaningful for ExprArg: "the i-th value from the stack at block entry"
	IntVal   int64  // meaningful for ExprConstInt
	BytesVal []byte // meaningful for ExprConstBytes
	Reason   string // meaningful for ExprUnknown
	Op       string // meaningful for ExprOp
	Field    Field  // set for txn/gtxn/itxn/*_get op nodes, nil otherwise
	Args     []*Expr
}

func argExpr(i int) *Expr          { return &Expr{Kind: ExprArg, ArgIndex: i} }
func constIntExpr(v int64) *Expr   { return &Expr{Kind: ExprConstInt, IntVal: v} }
func unknownExpr(reason string) *Expr { return &Expr{Kind: ExprUnknown, Reason: reason} }
func opExpr(op string, field Field, args ...*Expr) *Expr {
	return &Expr{Kind: ExprOp, Op: op, Field: field, Args: args}
}

// BlockAST is the reconstructed stack effect of one basic block: how many
// values it nets-consumes from the stack as it entered, and the expression
// trees for each value it leaves on the stack at exit (bottom to top).
type BlockAST struct {
	Consumed int
	Outputs  []*Expr
}

// BranchFact is one "equation" linking a basic block's exit condition to
// the lattice-relevant fact that holds on a specific successor edge: the
// block's condition expression must equal (ExpectZero) or not equal zero
// for control to reach Successor. Dataflow analyses consult these to
// refine per-edge state.
type BranchFact struct {
	Successor  *BasicBlock
	Cond       *Expr
	ExpectZero bool
}

// stackEffect reports how many values an instruction pops from and pushes
// onto the stack. Unknown/unlisted opcodes default to (0, 1): conservative,
// since downstream consumers treat unresolved facts as top anyway.
func stackEffect(ins Instruction) (pops, pushes int) {
	switch v := ins.(type) {
	case *Label, *Pragma, *IntcBlock, *BytecBlock, *Callsub, *Retsub:
		return 0, 0
	case *Err:
		return 0, 0
	case *Return:
		return 1, 0
	case *BranchUnconditional:
		return 0, 0
	case *BranchIfZero, *BranchIfNonZero:
		return 1, 0
	case *Switch, *MatchIns:
		return 1, 0
	case *Txn:
		if v.Field.IsIndexed() && v.Field.Index == -1 {
			return 1, 1
		}
		return 0, 1
	case *Gtxn:
		pops := 0
		if v.Group == -1 {
			pops++
		}
		if v.Field.IsIndexed() && v.Field.Index == -1 {
			pops++
		}
		return pops, 1
	case *Itxn:
		if v.Field.IsIndexed() && v.Field.Index == -1 {
			return 1, 1
		}
		return 0, 1
	case *AssetHoldingGet:
		return 2, 2
	case *AssetParamsGet, *AppParamsGet, *AcctParamsGet:
		return 1, 2
	case *Method:
		return 0, 0
	case *Generic:
		return genericArity(v.Op)
	}
	return 0, 1
}

// genericArityTable covers the common catch-all opcodes. Unlisted opcodes
// default to (0, 1) in stackEffect.
var genericArityTable = map[string][2]int{
	"int": {0, 1}, "byte": {0, 1}, "addr": {0, 1},
	"+": {2, 1}, "-": {2, 1}, "*": {2, 1}, "/": {2, 1}, "%": {2, 1},
	"<": {2, 1}, ">": {2, 1}, "<=": {2, 1}, ">=": {2, 1},
	"==": {2, 1}, "!=": {2, 1}, "&&": {2, 1}, "||": {2, 1},
	"!": {1, 1}, "~": {1, 1}, "bitlen": {1, 1}, "not": {1, 1},
	"dup": {1, 2}, "dup2": {2, 4}, "pop": {1, 0}, "swap": {2, 2}, "select": {3, 1},
	"store": {1, 0}, "load": {0, 1}, "gload": {0, 1}, "gloads": {1, 1},
	"arg": {0, 1}, "args": {1, 1}, "global": {0, 1},
	"gaid": {0, 1}, "gaids": {1, 1},
	"sha256": {1, 1}, "keccak256": {1, 1}, "sha512_256": {1, 1},
	"ed25519verify": {3, 1}, "ecdsa_verify": {5, 1},
	"concat": {2, 1}, "substring": {1, 1}, "substring3": {3, 1},
	"getbyte": {2, 1}, "setbyte": {3, 1},
	"itob": {1, 1}, "btoi": {1, 1}, "len": {1, 1},
	"extract": {1, 1}, "extract3": {3, 1},
	"box_get": {1, 2}, "box_put": {2, 0}, "box_del": {1, 1}, "box_len": {1, 2},
	"app_global_get": {1, 1}, "app_global_put": {2, 0},
	"app_local_get": {2, 1}, "app_local_put": {3, 0}, "app_opted_in": {2, 1},
	"min_balance": {1, 1}, "balance": {1, 1},
	"itxn_begin": {0, 0}, "itxn_submit": {0, 0}, "itxn_field": {1, 0},
	"log": {1, 0}, "assert": {1, 0},
}

func genericArity(op string) (int, int) {
	if a, ok := genericArityTable[op]; ok {
		return a[0], a[1]
	}
	return 0, 1
}

// instructionField extracts the Field carried by a field-bearing
// instruction, for use as Expr.Field on its op node.
func instructionField(ins Instruction) Field {
	switch v := ins.(type) {
	case *Txn:
		return v.Field
	case *Gtxn:
		return v.Field
	case *Itxn:
		return v.Field
	case *AssetHoldingGet:
		return v.Field
	case *AssetParamsGet:
		return v.Field
	case *AppParamsGet:
		return v.Field
	case *AcctParamsGet:
		return v.Field
	}
	return nil
}

// Driver owns the two memoization caches the stack AST
// builder and dataflow framework share: the stack-AST cache and the
// equation (branch-fact) cache. Both are fields of the driver rather than
// module-level state, and are cleared once dataflow analysis completes, so
// a future per-analysis-task parallelization only needs to give each task
// its own Driver.
type Driver struct {
	astCache map[*BasicBlock]*BlockAST
	eqCache  map[*BasicBlock][]BranchFact
}

// NewDriver returns a Driver with empty caches.
func NewDriver() *Driver {
	return &Driver{
		astCache: map[*BasicBlock]*BlockAST{},
		eqCache:  map[*BasicBlock][]BranchFact{},
	}
}

// Clear drops both memoization caches. Call once dataflow analysis is done;
// the caches are large and unneeded by any downstream consumer.
func (d *Driver) Clear() {
	d.astCache = map[*BasicBlock]*BlockAST{}
	d.eqCache = map[*BasicBlock][]BranchFact{}
}

// BlockAST returns (building and memoizing on first use) the stack AST for
// b.
func (d *Driver) BlockAST(b *BasicBlock) *BlockAST {
	if ast, ok := d.astCache[b]; ok {
		return ast
	}
	ast, facts := buildBlockAST(b)
	d.astCache[b] = ast
	d.eqCache[b] = facts
	return ast
}

// BranchFacts returns (building and memoizing on first use) the per-edge
// branch facts for b.
func (d *Driver) BranchFacts(b *BasicBlock) []BranchFact {
	if facts, ok := d.eqCache[b]; ok {
		return facts
	}
	d.BlockAST(b)
	return d.eqCache[b]
}

// buildBlockAST simulates the block's instructions over a virtual stack
// seeded with nothing: any pop past the bottom of what the block itself
// produced synthesizes an arg() placeholder representing a value supplied
// by the block's predecessors, and increments the net-consumed counter.
func buildBlockAST(b *BasicBlock) (*BlockAST, []BranchFact) {
	var stack []*Expr
	consumed := 0

	pop := func() *Expr {
		if len(stack) == 0 {
			e := argExpr(consumed)
			consumed++
			return e
		}
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return e
	}

	var lastCond *Expr
	for _, ins := range b.Instructions {
		pops, pushes := stackEffect(ins)
		args := make([]*Expr, pops)
		for i := pops - 1; i >= 0; i-- {
			args[i] = pop()
		}

		var produced *Expr
		switch v := ins.(type) {
		case *Generic:
			produced = genericExpr(v, args)
		default:
			field := instructionField(ins)
			produced = opExpr(ins.Mnemonic(), field, args...)
		}

		if pushes == 0 {
			if pops > 0 {
				// A consumer with no output (bz, bnz, pop, assert, ...):
				// the value it tested is the top of stack it popped.
				lastCond = args[pops-1]
			}
			continue
		}
		stack = append(stack, produced)
		for i := 1; i < pushes; i++ {
			stack = append(stack, unknownExpr("multi-push opcode "+ins.Mnemonic()))
		}
		lastCond = produced
	}

	ast := &BlockAST{Consumed: consumed, Outputs: stack}

	var facts []BranchFact
	switch ins := b.Exit().(type) {
	case *BranchIfZero:
		if len(b.Next) == 2 {
			facts = append(facts,
				BranchFact{Successor: b.Next[0], Cond: lastCond, ExpectZero: true},
				BranchFact{Successor: b.Next[1], Cond: lastCond, ExpectZero: false},
			)
		}
	case *BranchIfNonZero:
		if len(b.Next) == 2 {
			facts = append(facts,
				BranchFact{Successor: b.Next[0], Cond: lastCond, ExpectZero: false},
				BranchFact{Successor: b.Next[1], Cond: lastCond, ExpectZero: true},
			)
		}
	case *Switch, *MatchIns:
		// Selector-driven multi-way branch: each successor corresponds to
		// one label, but without tracking the selector's concrete domain
		// we can't assign a distinct equality fact per edge; leave
		// unrefined (sound, just imprecise).
		_ = ins
	}

	return ast, facts
}

func genericExpr(ins *Generic, args []*Expr) *Expr {
	switch ins.Op {
	case "int":
		if len(ins.Args) == 1 {
			if v, err := parseTealInt(ins.Args[0]); err == nil {
				return constIntExpr(v)
			}
		}
		return unknownExpr("malformed int literal")
	case "byte", "addr":
		if len(ins.Args) == 1 {
			return &Expr{Kind: ExprConstBytes, BytesVal: []byte(ins.Args[0])}
		}
		return unknownExpr("malformed byte literal")
	}
	return opExpr(ins.Op, nil, args...)
}
