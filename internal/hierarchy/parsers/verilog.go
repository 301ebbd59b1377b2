package parsers

import (
	"regexp"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
)

var (
	verilogModuleDecl = regexp.MustCompile(`(?m)^\s*module\s+(\w+)`)

	// A module type, an optional #(...) parameter override, an instance name
	// and the opening parenthesis of the port list.
	verilogInstance = regexp.MustCompile(`\b(\w+)\s*(?:#\s*\([^;]*?\)\s*)?\b(\w+)\s*\(`)
)

// verilogKeywords can appear in the "word word (" shape without being an
// instantiation, e.g. "else if (" or "always begin (".
var verilogKeywords = map[string]bool{
	"always": true, "and": true, "assign": true, "automatic": true, "begin": true,
	"case": true, "casex": true, "casez": true, "default": true, "else": true,
	"end": true, "endcase": true, "endfunction": true, "endgenerate": true,
	"endmodule": true, "endtask": true, "for": true, "forever": true,
	"function": true, "generate": true, "genvar": true, "if": true,
	"initial": true, "inout": true, "input": true, "integer": true,
	"localparam": true, "macromodule": true, "module": true, "nand": true,
	"negedge": true, "nor": true, "not": true, "or": true, "output": true,
	"parameter": true, "posedge": true, "real": true, "reg": true,
	"repeat": true, "return": true, "signed": true, "task": true, "time": true,
	"unsigned": true, "while": true, "wire": true, "xnor": true, "xor": true,
}

// VerilogExtractor finds module declarations and the submodules each one
// instantiates.
type VerilogExtractor struct{}

// NewVerilogExtractor creates a Verilog extractor.
func NewVerilogExtractor() *VerilogExtractor {
	return &VerilogExtractor{}
}

func (e *VerilogExtractor) Extensions() []string { return []string{".v"} }

// ResolveByFilename reports that Verilog modules are located by <name>.v.
func (e *VerilogExtractor) ResolveByFilename() bool { return true }

// Extract returns one entity per module. Every instantiated type other than
// the module itself is a reference, declared in this file or not.
func (e *VerilogExtractor) Extract(source []byte) ([]extraction.Entity, error) {
	src := stripCComments(string(source))

	spans := splitDeclarations(src, verilogModuleDecl, func(src string, m []int) (string, string) {
		return group(src, m, 1), "module"
	})

	entities := make([]extraction.Entity, 0, len(spans))
	for _, s := range spans {
		var refs []string
		for _, m := range verilogInstance.FindAllStringSubmatch(s.body, -1) {
			typ, inst := m[1], m[2]
			if typ == s.name || verilogKeywords[typ] || verilogKeywords[inst] {
				continue
			}
			refs = append(refs, typ)
		}
		entities = append(entities, extraction.Entity{
			Name:       s.name,
			Kind:       s.kind,
			References: uniqueSorted(refs),
			Direction:  extraction.RefChild,
		})
	}
	return entities, nil
}
