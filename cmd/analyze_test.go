package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/etnz/pnlyzer"
)

func TestParsePercentiles(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "empty selects default", input: "", want: nil},
		{name: "plain list", input: "10,50,90", want: []int{10, 50, 90}},
		{name: "spaces tolerated", input: " 25, 75 ", want: []int{25, 75}},
		{name: "not a number", input: "10,abc", wantErr: true},
		{name: "out of range high", input: "100", wantErr: true},
		{name: "out of range low", input: "0", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parsePercentiles(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parsePercentiles(%q) = %v, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePercentiles(%q) failed: %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("parsePercentiles(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestLocateChunksModes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chunk_1.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	// auto mode scans the directory
	chunks, err := locateChunks(true, dir, nil)
	if err != nil || len(chunks) != 1 {
		t.Errorf("auto mode: chunks=%v err=%v, want the one discovered chunk", chunks, err)
	}

	// explicit mode resolves the argument list
	chunks, err = locateChunks(false, dir, []string{path})
	if err != nil || len(chunks) != 1 {
		t.Errorf("explicit mode: chunks=%v err=%v, want the one named chunk", chunks, err)
	}

	// mixing both is a usage error
	if _, err := locateChunks(true, dir, []string{path}); err == nil {
		t.Error("auto mode with an explicit list must fail")
	}

	// no files at all
	if _, err := locateChunks(false, dir, nil); !errors.Is(err, pnlyzer.ErrNoChunksFound) {
		t.Errorf("explicit mode without files: err=%v, want ErrNoChunksFound", err)
	}
}
