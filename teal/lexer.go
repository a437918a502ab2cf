package teal

import (
	"crypto/sha512"
	"encoding/hex"
	"strconv"
	"strings"
)

// parseTealInt parses a TEAL numeric immediate: 0x-prefixed hex, 0-prefixed
// octal, or decimal. The bare string "0" is decimal zero, not octal, since
// octal parsing of an empty remainder would otherwise be ambiguous.
func parseTealInt(s string) (int64, error) {
	switch {
	case strings.HasPrefix(s, "0x"):
		return strconv.ParseInt(s[2:], 16, 64)
	case s == "0":
		return 0, nil
	case strings.HasPrefix(s, "0") && len(s) > 1:
		return strconv.ParseInt(s, 8, 64)
	default:
		return strconv.ParseInt(s, 10, 64)
	}
}

// parseLine translates one source line into zero or one instruction
// records. lineIdx is the 0-based line counter, used only for error
// reporting; the caller assigns the 1-based Instruction.Line once parsing
// succeeds. Blank lines and comment-only lines return (nil, nil).
func parseLine(line string, lineIdx int) (Instruction, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}

	// A bare "label:" with no other tokens is a label declaration.
	if strings.HasSuffix(trimmed, ":") && !strings.ContainsAny(trimmed, " \t") {
		return &Label{Name: strings.TrimSuffix(trimmed, ":")}, nil
	}

	fields := strings.Fields(trimmed)
	op := fields[0]
	args := fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, op))

	meta := lookupOpMeta(op)
	base := InsBase{Version: meta.MinVersion, Mode: meta.Mode}

	switch op {
	case "#pragma":
		if len(args) != 2 || args[0] != "version" {
			return nil, newParseError(lineIdx, "malformed #pragma directive: %q", trimmed)
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, newParseError(lineIdx, "malformed pragma version: %q", args[1])
		}
		return &Pragma{InsBase: base, ProgramVersion: v}, nil

	case "b":
		return requireOneArg(lineIdx, args, func(a string) Instruction {
			return &BranchUnconditional{InsBase: base, Target: a}
		})
	case "bz":
		return requireOneArg(lineIdx, args, func(a string) Instruction {
			return &BranchIfZero{InsBase: base, Target: a}
		})
	case "bnz":
		return requireOneArg(lineIdx, args, func(a string) Instruction {
			return &BranchIfNonZero{InsBase: base, Target: a}
		})
	case "switch":
		if len(args) == 0 {
			return nil, newParseError(lineIdx, "switch requires at least one label")
		}
		return &Switch{InsBase: base, Targets: append([]string{}, args...)}, nil
	case "match":
		if len(args) == 0 {
			return nil, newParseError(lineIdx, "match requires at least one label")
		}
		return &MatchIns{InsBase: base, Targets: append([]string{}, args...)}, nil
	case "err":
		return &Err{InsBase: base}, nil
	case "return":
		return &Return{InsBase: base}, nil
	case "callsub":
		return requireOneArg(lineIdx, args, func(a string) Instruction {
			return &Callsub{InsBase: base, Target: a}
		})
	case "retsub":
		return &Retsub{InsBase: base}, nil

	case "intcblock":
		consts := make([]int64, 0, len(args))
		for _, a := range args {
			v, err := parseTealInt(a)
			if err != nil {
				return nil, newParseError(lineIdx, "malformed int constant %q: %s", a, err)
			}
			consts = append(consts, v)
		}
		return &IntcBlock{InsBase: base, Constants: consts}, nil
	case "bytecblock":
		consts := make([][]byte, 0, len(args))
		for _, a := range args {
			consts = append(consts, []byte(a))
		}
		return &BytecBlock{InsBase: base, Constants: consts}, nil

	case "txn", "txna":
		field, err := parseFieldArgs(args, false)
		if err != nil {
			return nil, newParseError(lineIdx, "%s", err)
		}
		if field.Kind == FieldApplicationID {
			base.Comments = append(base.Comments, "ApplicationID is 0 in Creation Txn")
		}
		return &Txn{InsBase: base, Field: field}, nil
	case "txnas":
		field, err := parseFieldArgs(args, true)
		if err != nil {
			return nil, newParseError(lineIdx, "%s", err)
		}
		return &Txn{InsBase: base, Field: field}, nil

	case "gtxn", "gtxna", "gtxnas":
		return parseGtxn(lineIdx, base, op, args, false)
	case "gtxns", "gtxnsa", "gtxnsas":
		return parseGtxn(lineIdx, base, op, args, true)

	case "itxn", "itxna":
		field, err := parseFieldArgs(args, false)
		if err != nil {
			return nil, newParseError(lineIdx, "%s", err)
		}
		return &Itxn{InsBase: base, Field: field}, nil

	case "asset_holding_get":
		return requireOneArg(lineIdx, args, func(a string) Instruction {
			kind, ok := lookupAssetHoldingField(a)
			if !ok {
				return nil
			}
			return &AssetHoldingGet{InsBase: base, Field: kind}
		})
	case "asset_params_get":
		return requireOneArg(lineIdx, args, func(a string) Instruction {
			kind, ok := lookupAssetParamsField(a)
			if !ok {
				return nil
			}
			return &AssetParamsGet{InsBase: base, Field: kind}
		})
	case "app_params_get":
		return requireOneArg(lineIdx, args, func(a string) Instruction {
			kind, ok := lookupAppParamsField(a)
			if !ok {
				return nil
			}
			return &AppParamsGet{InsBase: base, Field: kind}
		})
	case "acct_params_get":
		return requireOneArg(lineIdx, args, func(a string) Instruction {
			kind, ok := lookupAcctParamsField(a)
			if !ok {
				return nil
			}
			return &AcctParamsGet{InsBase: base, Field: kind}
		})

	case "method":
		sig := rest
		selector := sha512.Sum512_256([]byte(sig))
		var sel [4]byte
		copy(sel[:], selector[:4])
		base.Comments = append(base.Comments, "method-selector: "+hex.EncodeToString(sel[:]))
		return &Method{InsBase: base, Signature: sig, Selector: sel}, nil
	}

	return &Generic{InsBase: base, Op: op, Args: args}, nil
}

func requireOneArg(lineIdx int, args []string, build func(string) Instruction) (Instruction, error) {
	if len(args) != 1 {
		return nil, newParseError(lineIdx, "expected exactly one argument, got %d", len(args))
	}
	ins := build(args[0])
	if ins == nil {
		return nil, newParseError(lineIdx, "unrecognized argument %q", args[0])
	}
	return ins, nil
}

// parseFieldArgs parses the already-tokenized arguments of a txn/itxn-family
// opcode: args[0] is the field name, and for the five indexed array fields
// args[1] is the literal index (absent or ignored when useStack is set,
// since the *as opcode forms take the index from the stack instead).
func parseFieldArgs(args []string, useStack bool) (TransactionField, error) {
	if len(args) == 0 {
		return TransactionField{}, newCoreError("missing transaction field")
	}
	tok := args[0]
	if len(args) > 1 {
		tok = args[0] + args[1]
	}
	return parseTransactionField(tok, useStack)
}

func parseGtxn(lineIdx int, base InsBase, op string, args []string, groupFromStack bool) (Instruction, error) {
	group := -1
	fieldArgs := args
	if !groupFromStack {
		if len(args) == 0 {
			return nil, newParseError(lineIdx, "%s requires a group index", op)
		}
		g, err := parseTealInt(args[0])
		if err != nil {
			return nil, newParseError(lineIdx, "malformed group index %q: %s", args[0], err)
		}
		group = int(g)
		fieldArgs = args[1:]
	}
	useStack := strings.HasSuffix(op, "as")
	field, err := parseTransactionField(strings.Join(fieldArgs, " "), useStack)
	if err != nil {
		return nil, newParseError(lineIdx, "%s", err)
	}
	return &Gtxn{InsBase: base, Group: group, Field: field}, nil
}

func lookupAssetHoldingField(name string) (AssetHoldingField, bool) {
	for k, v := range assetHoldingNames {
		if v == name {
			return k, true
		}
	}
	return 0, false
}

func lookupAssetParamsField(name string) (AssetParamsField, bool) {
	for k, v := range assetParamsNames {
		if v == name {
			return k, true
		}
	}
	return 0, false
}

func lookupAppParamsField(name string) (AppParamsField, bool) {
	for k, v := range appParamsNames {
		if v == name {
			return k, true
		}
	}
	return 0, false
}

func lookupAcctParamsField(name string) (AcctParamsField, bool) {
	for k, v := range acctParamsNames {
		if v == name {
			return k, true
		}
	}
	return 0, false
}
