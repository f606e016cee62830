package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vcrobe/guic/trace"
)

// TestInspectStateStruct verifies the state schema extracted from a
// component's Go file, including `default` field tags.
func TestInspectStateStruct(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	src := "package demo\n\n" +
		"type CounterState struct {\n" +
		"\tCount int    `default:\"5\"`\n" +
		"\tLabel string `default:\"items\"`\n" +
		"\tRatio float64\n" +
		"\tOpen  bool `default:\"true\"`\n" +
		"}\n"
	path := filepath.Join(dir, "counter.go")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	// Act
	schema, err := inspectStateStruct(path, "Counter")

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := StateSchema{
		{Name: "count", Kind: trace.KindInt, Default: 5},
		{Name: "label", Kind: trace.KindString, Default: "items"},
		{Name: "ratio", Kind: trace.KindDouble, Default: 0.0},
		{Name: "open", Kind: trace.KindBool, Default: true},
	}
	if len(schema) != len(want) {
		t.Fatalf("Expected %d fields, got %d: %v", len(want), len(schema), schema)
	}
	for i, w := range want {
		if schema[i] != w {
			t.Errorf("Field %d: expected %+v, got %+v", i, w, schema[i])
		}
	}
}

// TestInspectStateStruct_MissingStruct verifies a file without the expected
// state struct reports it.
func TestInspectStateStruct_MissingStruct(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "other.go")
	if err := os.WriteFile(path, []byte("package demo\n\ntype Other struct{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := inspectStateStruct(path, "Counter")

	if err == nil {
		t.Fatal("Expected an error for the missing state struct")
	}
}

// TestDefaultValue_ZeroValues verifies untagged fields fall back to kind zero
// values.
func TestDefaultValue_ZeroValues(t *testing.T) {
	tests := []struct {
		kind trace.Kind
		want any
	}{
		{trace.KindString, ""},
		{trace.KindInt, 0},
		{trace.KindSize, uint64(0)},
		{trace.KindDouble, 0.0},
		{trace.KindBool, false},
	}
	for _, tc := range tests {
		if got := defaultValue(tc.kind, ""); got != tc.want {
			t.Errorf("defaultValue(%v): expected %v (%T), got %v (%T)", tc.kind, tc.want, tc.want, got, got)
		}
	}
}
