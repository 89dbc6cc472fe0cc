package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWritesConstants(t *testing.T) {
	out := filepath.Join(t.TempDir(), "params.go")
	if err := run(15, out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	src := string(data)
	for _, want := range []string{
		"K = 15",
		"RotBits = 5", // ceil(log2(29))
		"type Word = uint32",
		"type LmerWord = uint32", // 30 - 5 = 25 bits
		"DO NOT EDIT",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated file missing %q", want)
		}
	}
}

func TestRunRejectsBadK(t *testing.T) {
	out := filepath.Join(t.TempDir(), "params.go")
	for _, k := range []int{0, -3, 4, 32, 33, 64} {
		if err := run(k, out); err == nil {
			t.Errorf("K=%d accepted", k)
		}
	}
}

func TestSelectType(t *testing.T) {
	cases := []struct {
		bits  int
		typ   string
		width int
	}{
		{2, "uint8", 8},
		{8, "uint8", 8},
		{9, "uint16", 16},
		{30, "uint32", 32},
		{33, "uint64", 64},
		{62, "uint64", 64},
	}
	for _, tc := range cases {
		typ, width := selectType(tc.bits)
		if typ != tc.typ || width != tc.width {
			t.Errorf("selectType(%d) = (%s, %d), want (%s, %d)", tc.bits, typ, width, tc.typ, tc.width)
		}
	}
}
