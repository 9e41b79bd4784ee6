package store_test

import (
	"path/filepath"
	"testing"

	"src.rambutan.dev/pkg/store"
	"src.rambutan.dev/pkg/store/storetest"
)

func TestCmd(t *testing.T) {
	storetest.TestCmd(t, store.MustTempStore(t))
}

func TestVar(t *testing.T) {
	storetest.TestVar(t, store.MustTempStore(t))
}

func TestNewStore_PersistsAcrossOpens(t *testing.T) {
	dbname := filepath.Join(t.TempDir(), "db")
	s, err := store.NewStore(dbname)
	if err != nil {
		t.Fatal(err)
	}
	s.AddCmd("(+ 1 2)")
	s.SetVar("x", "1")
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = store.NewStore(dbname)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if cmd, err := s.Cmd(1); cmd != "(+ 1 2)" || err != nil {
		t.Errorf("Cmd(1) -> (%q, %v) after reopening", cmd, err)
	}
	if v, err := s.Var("x"); v != "1" || err != nil {
		t.Errorf("Var(x) -> (%q, %v) after reopening", v, err)
	}
}

func TestNewStore_BadPath(t *testing.T) {
	_, err := store.NewStore(filepath.Join(t.TempDir(), "no", "such", "dir", "db"))
	if err == nil {
		t.Errorf("NewStore with a bad path returns nil error")
	}
}
