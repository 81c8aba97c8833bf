package graph

import (
	"testing"

	"github.com/dshills/blockcanvas/pkg/geometry"
)

func gainTemplate() *BlockTemplate {
	return &BlockTemplate{
		Name:        "gain",
		Description: "Multiplies its input by a constant",
		Category:    "math",
		Tags:        []string{"math", "linear"},
		InputPorts:  []PortSpec{{Name: "in", Type: TypeNumber}},
		OutputPorts: []PortSpec{{Name: "out", Type: TypeNumber}},
		MetaParameters: map[string]string{
			"k": "1.0",
		},
		Callback: "k * in",
	}
}

func TestInstantiateBlock(t *testing.T) {
	tmpl := gainTemplate()
	pos := geometry.Vector2{X: 40, Y: -20}

	b := InstantiateBlock(tmpl, pos)

	if b.ID == "" {
		t.Error("block has no id")
	}
	if b.Name != tmpl.Name || b.Callback != tmpl.Callback {
		t.Errorf("template fields not copied: %+v", b)
	}
	if b.Position != pos {
		t.Errorf("position = %v, want %v", b.Position, pos)
	}
	if b.Size != DefaultBlockSize {
		t.Errorf("size = %v, want %v", b.Size, DefaultBlockSize)
	}
	if b.Mirrored {
		t.Error("new block should not be mirrored")
	}
	if len(b.InputPorts) != 1 || len(b.OutputPorts) != 1 {
		t.Fatalf("ports = (%d, %d), want (1, 1)", len(b.InputPorts), len(b.OutputPorts))
	}
	if b.InputPorts[0].ID == "" || b.OutputPorts[0].ID == "" {
		t.Error("ports have no ids")
	}
}

func TestInstantiateBlockFreshIDs(t *testing.T) {
	tmpl := gainTemplate()

	a := InstantiateBlock(tmpl, geometry.Vector2{})
	b := InstantiateBlock(tmpl, geometry.Vector2{})

	if a.ID == b.ID {
		t.Error("two instantiations share a block id")
	}
	if a.InputPorts[0].ID == b.InputPorts[0].ID {
		t.Error("two instantiations share an input port id")
	}
	if a.OutputPorts[0].ID == b.OutputPorts[0].ID {
		t.Error("two instantiations share an output port id")
	}
}

func TestInstantiateBlockDeepCopiesMetaParameters(t *testing.T) {
	tmpl := gainTemplate()
	b := InstantiateBlock(tmpl, geometry.Vector2{})

	b.MetaParameters["k"] = "2.0"
	if tmpl.MetaParameters["k"] != "1.0" {
		t.Error("instantiated block shares meta parameter storage with the template")
	}
}

func TestTemplateValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BlockTemplate)
		wantErr bool
	}{
		{"valid", func(t *BlockTemplate) {}, false},
		{"empty name", func(t *BlockTemplate) { t.Name = "" }, true},
		{"unnamed port", func(t *BlockTemplate) { t.InputPorts[0].Name = "" }, true},
		{"bad port type", func(t *BlockTemplate) { t.InputPorts[0].Type = "complex" }, true},
		{"duplicate input name", func(t *BlockTemplate) {
			t.InputPorts = append(t.InputPorts, PortSpec{Name: "in", Type: TypeNumber})
		}, true},
		{"same name across directions ok", func(t *BlockTemplate) {
			t.OutputPorts = append(t.OutputPorts, PortSpec{Name: "in", Type: TypeNumber})
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := gainTemplate()
			tt.mutate(tmpl)
			err := tmpl.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
