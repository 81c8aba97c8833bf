package graph

import "testing"

func TestEdgeValidate(t *testing.T) {
	valid := Edge{
		ID:     NewEdgeID(),
		Type:   TypeNumber,
		Output: Endpoint{BlockID: "b1", PortID: "p1"},
		Input:  Endpoint{BlockID: "b2", PortID: "p2"},
	}

	tests := []struct {
		name    string
		mutate  func(*Edge)
		wantErr bool
	}{
		{"valid", func(e *Edge) {}, false},
		{"empty id", func(e *Edge) { e.ID = "" }, true},
		{"bad type", func(e *Edge) { e.Type = "complex" }, true},
		{"missing output block", func(e *Edge) { e.Output.BlockID = "" }, true},
		{"missing input port", func(e *Edge) { e.Input.PortID = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid.Clone()
			tt.mutate(&e)
			err := e.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEdgeTouches(t *testing.T) {
	e := Edge{
		Output: Endpoint{BlockID: "b1", PortID: "p1"},
		Input:  Endpoint{BlockID: "b2", PortID: "p2"},
	}
	if !e.Touches("b1") || !e.Touches("b2") {
		t.Error("edge does not report its own endpoints")
	}
	if e.Touches("b3") {
		t.Error("edge reports an unrelated block")
	}
}

func TestValueTypeCompatible(t *testing.T) {
	tests := []struct {
		a, b ValueType
		want bool
	}{
		{TypeNumber, TypeNumber, true},
		{TypeNumber, TypeString, false},
		{TypeAny, TypeString, true},
		{TypeBoolean, TypeAny, true},
		{TypeAny, TypeAny, true},
	}
	for _, tt := range tests {
		if got := tt.a.Compatible(tt.b); got != tt.want {
			t.Errorf("%s.Compatible(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSelectionToggle(t *testing.T) {
	var s SelectionSet

	s = s.Toggle(KindBlock, "b1")
	if !s.Contains(KindBlock, "b1") {
		t.Fatal("toggle did not add")
	}
	s = s.Toggle(KindEdge, "e1")
	if len(s) != 2 {
		t.Fatalf("selection = %v, want 2 items", s)
	}
	s = s.Toggle(KindBlock, "b1")
	if s.Contains(KindBlock, "b1") || len(s) != 1 {
		t.Errorf("selection = %v, want b1 toggled out", s)
	}
}

func TestSelectionSoleHelpers(t *testing.T) {
	one := SelectionSet{{Kind: KindBlock, ID: "b1"}}
	if id, ok := one.SoleBlock(); !ok || id != "b1" {
		t.Errorf("SoleBlock = (%v, %v)", id, ok)
	}
	if _, ok := one.SoleEdge(); ok {
		t.Error("SoleEdge on a block selection")
	}

	two := SelectionSet{{Kind: KindBlock, ID: "b1"}, {Kind: KindBlock, ID: "b2"}}
	if _, ok := two.SoleBlock(); ok {
		t.Error("SoleBlock on a multi selection")
	}
}
