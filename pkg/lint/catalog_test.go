package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_AllRulesRegistered(t *testing.T) {
	names := []string{
		"LATCH", "ASSIGNORDER",
		"CASEDEFAULT", "XASSIGN", "CASEINCOMPLETE", "XPROP", "WRONGXPROP",
		"ALWAYSFF", "ALWAYSSTAR", "BLKSEQ", "NONBLKCOMBI", "ASYNCRESET", "NEGEDGE",
		"NOSPBLK", "BADLHS", "BADRHS", "COMPLEXLHS", "COMPLEXRHS", "PRIMONLY", "NOMODULE",
	}
	assert.Equal(t, len(names), Count())
	for _, name := range names {
		assert.True(t, IsKnown(name), name)
	}
}

func TestCatalog_OrderedByID(t *testing.T) {
	rules := GetAll()
	require.NotEmpty(t, rules)
	assert.Equal(t, "R101", rules[0].ID)
	assert.Equal(t, "R407", rules[len(rules)-1].ID)
	for i := 1; i < len(rules); i++ {
		assert.Less(t, rules[i-1].ID, rules[i].ID)
	}
}

func TestGetByName(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"LATCH", "LATCH", true},
		{"latch", "LATCH", true},
		{"R405", "COMPLEXRHS", true},
		{"r405", "COMPLEXRHS", true},
		{"NOPE", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rule, ok := GetByName(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, rule.Name)
		})
	}
}

func TestGroups(t *testing.T) {
	assert.Equal(t, []string{GroupLatch, GroupXOptimism, GroupAlways, GroupGateLevel}, Groups())
	assert.Len(t, GetByGroup(GroupGateLevel), 7)
	assert.Len(t, GetByGroup(GroupAlways), 6)
}

func TestRule_Format(t *testing.T) {
	assert.Equal(t,
		"Signal 'y' (driven in if-stmt) lacks a complete (every bit is assigned) top-level default in always_comb.",
		Latch.Format(Args{"name": "y"}))

	assert.Equal(t,
		"RTL construct 'Always'. Module 'adder' gate-level only.",
		NoSpecialBlock.Format(Args{"type": "Always", "name": "adder"}))

	// Missing placeholders stay in the output.
	assert.Contains(t, XProp.Format(Args{"name": "y"}), "{type}")
	assert.Equal(t, CaseDefault.Message, CaseDefault.Format(nil))
}

func TestRule_Placeholders(t *testing.T) {
	assert.Equal(t, []string{"name", "type"}, XProp.Placeholders())
	assert.Equal(t, []string{"detail_msg"}, ComplexRHS.Placeholders())
	assert.Empty(t, BlkSeq.Placeholders())
}

func TestRule_Info(t *testing.T) {
	info := NoModule.Info()
	assert.Equal(t, "R407", info.ID)
	assert.Equal(t, "NOMODULE", info.Name)
	assert.Equal(t, GroupGateLevel, info.Group)
	assert.Equal(t, []string{"module_name"}, info.Placeholders)
	assert.Equal(t, "NOMODULE (R407)", NoModule.String())
}
