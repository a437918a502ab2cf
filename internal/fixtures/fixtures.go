// Package fixtures holds TEAL source snippets shared across the teal
// package's tests, so a scenario used by more than one test (a version
// mismatch, a mode conflict, an empty subroutine called twice) is written
// down once.
package fixtures

// EmptySubroutineCalledTwice calls a no-op subroutine from two call sites.
const EmptySubroutineCalledTwice = `#pragma version 6
txn ApplicationID
callsub empty
callsub empty
int 1
return

empty:
retsub
`

// ModeConflict mixes a stateless-only and a stateful-only instruction.
const ModeConflict = `#pragma version 6
arg 0
balance
int 1
return
`

// VersionMismatch uses an opcode newer than its declared pragma version.
const VersionMismatch = "#pragma version 4\nint 1\nlog\n"

// SingleBranch is the smallest program with a real conditional: three
// blocks, one of them unreachable from the entry except through the
// branch.
const SingleBranch = `#pragma version 6
txn ApplicationID
bz fail
int 1
return
fail:
err
`
