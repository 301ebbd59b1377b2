package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
)

// Test Plan for VerilogExtractor:
// - A module with instantiations references each instantiated type once
// - Instantiated types need not be declared in the same file
// - A module instantiating itself does not reference itself
// - Keywords in "word word (" position are not module types
// - Parameterised instantiation "type #(...) inst (" is recognised
// - Commented-out instantiations are ignored
// - Several modules in one file each get their own references
// - Files without modules yield no entities
// - ResolveByFilename is enabled and the extension is .v

func extractVerilog(t *testing.T, src string) []extraction.Entity {
	t.Helper()
	entities, err := NewVerilogExtractor().Extract([]byte(src))
	require.NoError(t, err)
	return entities
}

func TestVerilogExtractor_Instantiations(t *testing.T) {
	t.Parallel()

	entities := extractVerilog(t, `
module top(input clk, input rst);
  wire [7:0] data;
  alu u_alu0 (.clk(clk), .a(data));
  alu u_alu1 (.clk(clk), .a(data));
  uart_tx tx (.clk(clk));
endmodule
`)

	require.Len(t, entities, 1)
	assert.Equal(t, "top", entities[0].Name)
	assert.Equal(t, "module", entities[0].Kind)
	assert.Equal(t, extraction.RefChild, entities[0].Direction)
	assert.Equal(t, []string{"alu", "uart_tx"}, entities[0].References)
}

func TestVerilogExtractor_ExcludesSelfReference(t *testing.T) {
	t.Parallel()

	entities := extractVerilog(t, `
module tree_node(input clk);
  tree_node left (.clk(clk));
  leaf l0 (.clk(clk));
endmodule
`)

	require.Len(t, entities, 1)
	assert.Equal(t, []string{"leaf"}, entities[0].References)
}

func TestVerilogExtractor_IgnoresKeywords(t *testing.T) {
	t.Parallel()

	entities := extractVerilog(t, `
module ctrl(input clk, input a);
  always @(posedge clk) begin
    if (a) begin
    end else if (a) begin
    end
  end
  counter c0 (.clk(clk));
endmodule
`)

	require.Len(t, entities, 1)
	assert.Equal(t, []string{"counter"}, entities[0].References)
}

func TestVerilogExtractor_ParameterisedInstance(t *testing.T) {
	t.Parallel()

	entities := extractVerilog(t, `
module soc(input clk);
  fifo #(.DEPTH(16), .WIDTH(8)) u_fifo (.clk(clk));
  ram #(1024) mem (.clk(clk));
endmodule
`)

	require.Len(t, entities, 1)
	assert.Equal(t, []string{"fifo", "ram"}, entities[0].References)
}

func TestVerilogExtractor_IgnoresComments(t *testing.T) {
	t.Parallel()

	entities := extractVerilog(t, `
module top(input clk);
  // old_core u_old (.clk(clk));
  /* legacy legacy_inst (.clk(clk));
     more_legacy m (.clk(clk)); */
  core u_core (.clk(clk));
endmodule
`)

	require.Len(t, entities, 1)
	assert.Equal(t, []string{"core"}, entities[0].References)
}

func TestVerilogExtractor_BlockOpenerInLineComment(t *testing.T) {
	t.Parallel()

	entities := extractVerilog(t, `
// TODO: drop the /* wrapper below
module top(input clk);
  core u_core (.clk(clk));
endmodule

module core(input clk);
  /* spare s (.clk(clk)); */
endmodule
`)

	require.Len(t, entities, 2)
	assert.Equal(t, "top", entities[0].Name)
	assert.Equal(t, []string{"core"}, entities[0].References)
	assert.Equal(t, "core", entities[1].Name)
	assert.Empty(t, entities[1].References)
}

func TestVerilogExtractor_MultipleModules(t *testing.T) {
	t.Parallel()

	entities := extractVerilog(t, `
module a(input clk);
  b ub (.clk(clk));
endmodule

module b(input clk);
  c uc (.clk(clk));
endmodule
`)

	require.Len(t, entities, 2)
	assert.Equal(t, "a", entities[0].Name)
	assert.Equal(t, []string{"b"}, entities[0].References)
	assert.Equal(t, "b", entities[1].Name)
	assert.Equal(t, []string{"c"}, entities[1].References)
}

func TestVerilogExtractor_NoModules(t *testing.T) {
	t.Parallel()

	assert.Empty(t, extractVerilog(t, "`define WIDTH 8\n"))
	assert.Empty(t, extractVerilog(t, ""))
}

func TestVerilogExtractor_Capabilities(t *testing.T) {
	t.Parallel()

	ex := NewVerilogExtractor()
	assert.Equal(t, []string{".v"}, ex.Extensions())

	var fr extraction.FilenameResolver = ex
	assert.True(t, fr.ResolveByFilename())
}
