package project

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// --- Labels ---

func TestBlockKind_Tag(t *testing.T) {
	tests := []struct {
		kind BlockKind
		want string
	}{
		{BlockOB, "OB"},
		{BlockFB, "FB"},
		{BlockFC, "FC"},
		{BlockGlobalDB, "DB"},
		{BlockInstanceDB, "DB"},
		{BlockArrayDB, "DB"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Tag(); got != tt.want {
				t.Errorf("Tag() = %q, want %q", got, tt.want)
			}
		})
	}
}

type fakeBlock struct {
	kind     BlockKind
	number   int
	language string
}

func (b fakeBlock) Name() string         { return "b" }
func (b fakeBlock) Kind() Kind           { return KindBlock }
func (b fakeBlock) Parent() Node         { return nil }
func (b fakeBlock) BlockKind() BlockKind { return b.kind }
func (b fakeBlock) Number() int          { return b.number }
func (b fakeBlock) Language() string     { return b.language }

func TestBlockTag(t *testing.T) {
	tests := []struct {
		block fakeBlock
		want  string
	}{
		{fakeBlock{BlockOB, 1, "LAD"}, "OB1, LAD"},
		{fakeBlock{BlockFC, 200, "FBD"}, "FC200, FBD"},
		{fakeBlock{BlockInstanceDB, 101, "DB"}, "DB101, DB"},
		{fakeBlock{BlockGlobalDB, 210, ""}, "DB210"},
	}
	for _, tt := range tests {
		if got := BlockTag(tt.block); got != tt.want {
			t.Errorf("BlockTag(%v) = %q, want %q", tt.block, got, tt.want)
		}
	}
}

func TestBlockKind_Valid(t *testing.T) {
	if !BlockArrayDB.Valid() {
		t.Error("ArrayDB should be valid")
	}
	if BlockKind("SFC").Valid() {
		t.Error("SFC should not be valid")
	}
}

func TestTypeKind_Tag(t *testing.T) {
	if got := TypeStruct.Tag(); got != "UDT" {
		t.Errorf("PlcStruct tag = %q, want UDT", got)
	}
	if got := TypeEnum.Tag(); got != "PlcEnum" {
		t.Errorf("PlcEnum tag = %q, want PlcEnum", got)
	}
}

func TestKind_String(t *testing.T) {
	if KindSystemGroup.String() != "SystemGroup" {
		t.Errorf("KindSystemGroup = %s", KindSystemGroup)
	}
	if Kind(99).String() != "Unknown" {
		t.Errorf("Kind(99) = %s, want Unknown", Kind(99))
	}
}

// --- Errors ---

func TestNotFound_MatchesSentinel(t *testing.T) {
	err := NotFound("block", "Motors/FB_Motor")
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("NotFound should match ErrNotFound")
	}
	if !strings.Contains(err.Error(), `"Motors/FB_Motor"`) {
		t.Errorf("message should quote the path: %s", err)
	}
}

func TestInvalidPattern_MatchesSentinel(t *testing.T) {
	err := InvalidPattern("[a", errors.New("missing closing ]"))
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatal("InvalidPattern should match ErrInvalidPattern")
	}
}

func TestWrap_PassesExpectedKinds(t *testing.T) {
	for _, err := range []error{
		NotFound("device", "PLC_1"),
		InvalidPattern("(", errors.New("bad")),
		ErrAdapterUnavailable,
		fmt.Errorf("opening: %w", ErrAdapterUnavailable),
	} {
		if got := Wrap("ResolveDevice", err, "devicePath", "x"); got != err {
			t.Errorf("Wrap(%v) = %v, want unchanged", err, got)
		}
	}
}

func TestWrap_AnnotatesUnexpected(t *testing.T) {
	cause := errors.New("COM object released")
	err := Wrap("ResolveBlock", cause, "softwarePath", "PLC_1", "blockPath", "Main")

	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("want *OpError, got %T", err)
	}
	if !errors.Is(err, cause) {
		t.Error("OpError should unwrap to its cause")
	}
	want := `ResolveBlock(softwarePath="PLC_1", blockPath="Main"): COM object released`
	if err.Error() != want {
		t.Errorf("Error() = %s\nwant       %s", err, want)
	}

	if again := Wrap("Outer", err); again != err {
		t.Error("an OpError should not be wrapped twice")
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap("op", nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}
}
