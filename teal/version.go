package teal

import "fmt"

// opMeta is the version/mode metadata attached to an instruction at parse
// time, looked up by opcode mnemonic.
type opMeta struct {
	MinVersion int
	Mode       Mode
}

// opcodeTable is a representative slice of the real TEAL opcode reference:
// enough to exercise every path that depends on version or mode, not an
// exhaustive transcription of the whole language.
var opcodeTable = map[string]opMeta{
	"err":               {1, ModeAny},
	"return":            {2, ModeAny},
	"callsub":           {4, ModeAny},
	"retsub":            {4, ModeAny},
	"b":                 {2, ModeAny},
	"bz":                {2, ModeAny},
	"bnz":               {1, ModeAny},
	"switch":            {8, ModeAny},
	"match":             {8, ModeAny},
	"intcblock":         {1, ModeAny},
	"bytecblock":        {1, ModeAny},
	"txn":               {1, ModeAny},
	"txna":              {2, ModeAny},
	"txnas":             {5, ModeAny},
	"gtxn":              {1, ModeAny},
	"gtxna":             {2, ModeAny},
	"gtxnas":            {5, ModeAny},
	"gtxns":             {3, ModeAny},
	"gtxnsa":            {3, ModeAny},
	"gtxnsas":           {5, ModeAny},
	"itxn":              {5, ModeAny},
	"itxna":             {5, ModeAny},
	"itxn_begin":        {5, ModeStateful},
	"itxn_submit":       {5, ModeStateful},
	"itxn_field":        {5, ModeStateful},
	"asset_holding_get": {2, ModeAny},
	"asset_params_get":  {2, ModeAny},
	"app_params_get":    {5, ModeAny},
	"acct_params_get":   {6, ModeAny},
	"method":            {4, ModeAny},
	"log":               {5, ModeStateful},
	"app_global_get":    {2, ModeStateful},
	"app_global_put":    {2, ModeStateful},
	"app_local_get":     {2, ModeStateful},
	"app_local_put":     {2, ModeStateful},
	"app_opted_in":      {2, ModeStateful},
	"balance":           {2, ModeStateful},
	"min_balance":       {3, ModeStateful},
	"box_get":           {8, ModeStateful},
	"box_put":           {8, ModeStateful},
	"box_del":           {8, ModeStateful},
	"box_len":           {8, ModeStateful},
	"arg":               {1, ModeStateless},
	"args":              {5, ModeStateless},
	"ed25519verify":     {1, ModeAny},
	"ecdsa_verify":      {5, ModeAny},
	"gload":             {4, ModeStateful},
	"gloads":            {4, ModeStateful},
	"gaid":              {4, ModeStateful},
	"gaids":             {4, ModeStateful},
}

func lookupOpMeta(mnemonic string) opMeta {
	if m, ok := opcodeTable[mnemonic]; ok {
		return m
	}
	return opMeta{MinVersion: 1, Mode: ModeAny}
}

// fieldMinVersion reports the minimum program version required for a field
// attached to an instruction, or 0 if the instruction carries no field.
func fieldMinVersion(ins Instruction) (int, bool) {
	switch v := ins.(type) {
	case *Txn:
		return v.Field.MinVersion(), true
	case *Gtxn:
		return v.Field.MinVersion(), true
	case *Itxn:
		return v.Field.MinVersion(), true
	case *AssetHoldingGet:
		return v.Field.MinVersion(), true
	case *AssetParamsGet:
		return v.Field.MinVersion(), true
	case *AppParamsGet:
		return v.Field.MinVersion(), true
	case *AcctParamsGet:
		return v.Field.MinVersion(), true
	}
	return 0, false
}

// detectMode returns the program's execution mode: the first non-ModeAny
// instruction mode wins; if none, ModeAny.
func detectMode(instructions []Instruction) Mode {
	for _, ins := range instructions {
		if ins.Header().Mode != ModeAny {
			return ins.Header().Mode
		}
	}
	return ModeAny
}

// verifyVersion checks every instruction's (and its field's) minimum
// version against the program's declared version, and flags a mode
// conflict if both stateful-only and stateless-only instructions appear.
// It never aborts parsing: every finding becomes a non-fatal Diagnostic.
func verifyVersion(instructions []Instruction, programVersion int) []Diagnostic {
	var diags []Diagnostic
	var statefulIns, statelessIns []Instruction

	for _, ins := range instructions {
		h := ins.Header()
		if programVersion < h.Version {
			diags = append(diags, Diagnostic{
				Line: h.Line,
				Msg: fmt.Sprintf("%s instruction is not supported in TEAL version %d, it is supported from version %d",
					ins.Mnemonic(), programVersion, h.Version),
			})
		} else if fv, ok := fieldMinVersion(ins); ok && programVersion < fv {
			diags = append(diags, Diagnostic{
				Line: h.Line,
				Msg: fmt.Sprintf("%s field is not supported in TEAL version %d, it is supported from version %d",
					ins.String(), programVersion, fv),
			})
		}

		switch h.Mode {
		case ModeStateful:
			statefulIns = append(statefulIns, ins)
		case ModeStateless:
			statelessIns = append(statelessIns, ins)
		}
	}

	if len(statefulIns) > 0 && len(statelessIns) > 0 {
		msg := "program contains instructions specific to both Application and Signature mode:\n"
		msg += "  Signature-only:\n"
		for _, ins := range statelessIns {
			msg += fmt.Sprintf("    %d: %s\n", ins.Header().Line, ins.String())
		}
		msg += "  Application-only:\n"
		for _, ins := range statefulIns {
			msg += fmt.Sprintf("    %d: %s\n", ins.Header().Line, ins.String())
		}
		diags = append(diags, Diagnostic{Line: instructions[0].Header().Line, Msg: msg})
	}

	return diags
}
