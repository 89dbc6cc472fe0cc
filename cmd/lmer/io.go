package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/natefinch/atomic"
)

// sortedKeys returns the keys of a set in increasing order.
func sortedKeys(set map[uint64]struct{}) []uint64 {
	keys := make([]uint64, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// writeInts writes newline-delimited decimal integers atomically.
func writeInts(path string, vals []uint64) error {
	var buf bytes.Buffer
	for _, v := range vals {
		buf.WriteString(strconv.FormatUint(v, 10))
		buf.WriteByte('\n')
	}
	return writeBytes(path, buf.Bytes())
}

func writeBytes(path string, data []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// readInts reads newline-delimited decimal integers, skipping blank
// lines.
func readInts(path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var vals []uint64
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if text == "" {
			continue
		}
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		vals = append(vals, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return vals, nil
}
