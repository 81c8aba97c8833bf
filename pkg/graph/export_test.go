package graph

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestExportWireStripsLayout(t *testing.T) {
	src := testBlock("src", "", TypeNumber)
	src.Callback = "sin(t)"
	dst := testBlock("dst", TypeNumber, "")
	out, in := endpoints(&src, &dst)
	g := Graph{
		Blocks: []Block{src, dst},
		Edges:  []Edge{{ID: NewEdgeID(), Type: TypeNumber, Output: out, Input: in, MidPoints: []float64{0.5, 0.3, 0.7}}},
	}

	data, err := MarshalWire(&g)
	if err != nil {
		t.Fatalf("MarshalWire failed: %v", err)
	}

	if !gjson.ValidBytes(data) {
		t.Fatal("wire payload is not valid JSON")
	}

	// Presentational fields never cross the wire.
	for _, path := range []string{
		"blocks.0.position", "blocks.0.size", "blocks.0.color",
		"blocks.0.mirrored", "edges.0.midPoints",
	} {
		if gjson.GetBytes(data, path).Exists() {
			t.Errorf("wire payload leaks %s", path)
		}
	}

	if got := gjson.GetBytes(data, "blocks.0.callbackString").String(); got != "sin(t)" {
		t.Errorf("callbackString = %q, want %q", got, "sin(t)")
	}
	if got := gjson.GetBytes(data, "edges.0.output.blockID").String(); got != src.ID.String() {
		t.Errorf("output blockID = %q, want %q", got, src.ID)
	}
	if got := gjson.GetBytes(data, "edges.0.input.portID").String(); got != dst.InputPorts[0].ID.String() {
		t.Errorf("input portID = %q, want %q", got, dst.InputPorts[0].ID)
	}
}

func TestExportWirePortShape(t *testing.T) {
	b := testBlock("b", TypeNumber, TypeNumber)
	b.InputPorts[0].InitialValue = NumberValue(3.5)
	g := Graph{Blocks: []Block{b}}

	data, err := MarshalWire(&g)
	if err != nil {
		t.Fatalf("MarshalWire failed: %v", err)
	}

	if got := gjson.GetBytes(data, "blocks.0.inputPorts.0.type").String(); got != "number" {
		t.Errorf("port type = %q, want %q", got, "number")
	}
	if got := gjson.GetBytes(data, "blocks.0.inputPorts.0.initialValue").Float(); got != 3.5 {
		t.Errorf("initialValue = %v, want 3.5", got)
	}

	// A block with no edges still emits empty port arrays, not null.
	if !gjson.GetBytes(data, "blocks.0.outputPorts").IsArray() {
		t.Error("outputPorts is not an array")
	}
}
