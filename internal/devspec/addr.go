package devspec

// AddrVec is a fully decoded address: one index per hierarchy level
// plus the column, matching spec.md's `addr_vec: [i32; L]`. Row and
// Column are not HierarchyNode levels (no FSM lives there) but are
// needed to compare against RowTable state and for command-trace
// bank-id flattening.
type AddrVec struct {
	Channel   int
	Rank      int
	BankGroup int // 0 when the standard has no bank-group level
	Bank      int
	Subarray  int // 0 when the standard has no subarray level
	Row       int
	Column    int
}

// FlatBankID flattens bank-group and bank into one index the way
// DDR4/GDDR5 command traces report it: bank + bankgroup*banks_per_group.
func (a AddrVec) FlatBankID(org Organization) int {
	if !org.HasBankGroups() {
		return a.Bank
	}
	return a.Bank + a.BankGroup*org.Banks
}
