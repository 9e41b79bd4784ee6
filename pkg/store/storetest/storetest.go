// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.rambutan.dev/pkg/store/storedefs"
)

var (
	cmds     = []string{"(+ 1 2)", "(defun f (x) x)", "(f 1)", "'(a b)"}
	wantSeqs = []int{1, 2, 3, 4}
)

// TestCmd tests the command history functionality of a Store.
func TestCmd(t *testing.T, store storedefs.Store) {
	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() -> (%v, %v), want (1, nil)", startSeq, err)
	}

	// AddCmd
	for i, cmd := range cmds {
		seq, err := store.AddCmd(cmd)
		if seq != wantSeqs[i] || err != nil {
			t.Errorf("store.AddCmd(%v) -> (%v, %v), want (%v, nil)",
				cmd, seq, err, wantSeqs[i])
		}
	}

	endSeq, err := store.NextCmdSeq()
	wantedEndSeq := startSeq + len(cmds)
	if endSeq != wantedEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() -> (%v, %v), want (%v, nil)",
			endSeq, err, wantedEndSeq)
	}

	// Cmd
	for i, wantCmd := range cmds {
		cmd, err := store.Cmd(i + startSeq)
		if cmd != wantCmd || err != nil {
			t.Errorf("store.Cmd(%v) -> (%v, %v), want (%v, nil)",
				i, cmd, err, wantCmd)
		}
	}

	// RecentCmds
	recent, err := store.RecentCmds(2)
	wantRecent := []storedefs.Cmd{{Text: cmds[2], Seq: 3}, {Text: cmds[3], Seq: 4}}
	if diff := cmp.Diff(wantRecent, recent); diff != "" || err != nil {
		t.Errorf("store.RecentCmds(2) -> err %v, diff (-want +got):\n%s", err, diff)
	}
	all, err := store.RecentCmds(-1)
	if len(all) != len(cmds) || err != nil {
		t.Errorf("store.RecentCmds(-1) -> (%v, %v), want %d commands", all, err, len(cmds))
	}

	// DelCmd
	if err := store.DelCmd(1); err != nil {
		t.Error("Failed to remove cmd")
	}
	if seq, err := store.Cmd(1); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.Cmd(1) -> (%v, %v), want (%v, %v)",
			seq, err, "", storedefs.ErrNoMatchingCmd)
	}
	// Sequence numbers are not reused.
	if seq, _ := store.AddCmd("x"); seq != 5 {
		t.Errorf("store.AddCmd after DelCmd -> %v, want 5", seq)
	}
}

// TestVar tests the shared variable functionality of a Store.
func TestVar(t *testing.T, store storedefs.Store) {
	const varname = "foo"
	const value1 = "lorem ipsum"
	const value2 = `("a" 1)`

	// Getting an nonexistent variable should return ErrNoVar.
	_, err := store.Var(varname)
	if err != storedefs.ErrNoVar {
		t.Error("want ErrNoVar, got", err)
	}

	// Setting a variable for the first time creates it.
	err = store.SetVar(varname, value1)
	if err != nil {
		t.Error("want no error, got", err)
	}
	v, err := store.Var(varname)
	if v != value1 || err != nil {
		t.Errorf("want %q and no error, got %q and %v", value1, v, err)
	}

	// Setting an existing variable updates its value.
	err = store.SetVar(varname, value2)
	if err != nil {
		t.Error("want no error, got", err)
	}
	v, err = store.Var(varname)
	if v != value2 || err != nil {
		t.Errorf("want %q and no error, got %q and %v", value2, v, err)
	}

	if err := store.SetVar("bar", "1"); err != nil {
		t.Error("want no error, got", err)
	}
	names, err := store.VarNames()
	if diff := cmp.Diff([]string{"bar", varname}, names); diff != "" || err != nil {
		t.Errorf("store.VarNames() -> err %v, diff (-want +got):\n%s", err, diff)
	}

	// After deleting a variable, access to it cause ErrNoVar.
	err = store.DelVar(varname)
	if err != nil {
		t.Error("want no error, got", err)
	}
	_, err = store.Var(varname)
	if err != storedefs.ErrNoVar {
		t.Error("want ErrNoVar, got", err)
	}
	if err := store.DelVar(varname); err != nil {
		t.Error("deleting a nonexistent variable: want no error, got", err)
	}
}
