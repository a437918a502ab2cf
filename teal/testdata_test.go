package teal

import (
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// multiProgramFixtures bundles several TEAL programs and their expected
// block counts into one txtar archive rather than a bespoke multi-file
// test format.
var multiProgramFixtures = []byte(`
-- empty-signature.teal --
#pragma version 6
int 1
return
-- want-blocks.txt --
1
-- single-branch.teal --
#pragma version 6
txn ApplicationID
bz fail
int 1
return
fail:
err
-- want-blocks.txt --
3
`)

func TestTxtarFixtures(t *testing.T) {
	ar := txtar.Parse(multiProgramFixtures)

	var name string
	for _, f := range ar.Files {
		switch {
		case strings.HasSuffix(f.Name, ".teal"):
			name = f.Name
		case f.Name == "want-blocks.txt":
			want, err := strconv.Atoi(strings.TrimSpace(string(f.Data)))
			if err != nil {
				t.Fatalf("malformed want-blocks.txt for %s: %s", name, err)
			}
			p, err := ParseTeal(string(txtarFileFor(ar, name)), ParseOptions{ContractName: name})
			if err != nil {
				t.Fatalf("ParseTeal(%s): unexpected error: %s", name, err)
			}
			if len(p.Blocks) != want {
				t.Errorf("%s: len(Blocks) = %d, want %d", name, len(p.Blocks), want)
			}
		}
	}
}

func txtarFileFor(ar *txtar.Archive, name string) []byte {
	for _, f := range ar.Files {
		if f.Name == name {
			return f.Data
		}
	}
	return nil
}
