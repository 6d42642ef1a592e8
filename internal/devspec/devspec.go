// Package devspec describes, as immutable data, the hierarchy shape,
// command encoding, timing constraints, and state-machine rules of a
// DRAM standard. internal/hierarchy dispatches through the uniform
// Precondition/Effect/TimingRulesFor/RowBufferAt entry points here
// rather than branching on standard anywhere else in the simulator.
package devspec

import "fmt"

// Level identifies one rank in the Channel -> Rank -> BankGroup -> Bank
// -> Subarray -> Row hierarchy. Column is an addressing index, not a
// HierarchyNode level.
type Level int

const (
	Channel Level = iota
	Rank
	BankGroup
	Bank
	Subarray
	Row
	numLevels
)

func (l Level) String() string {
	switch l {
	case Channel:
		return "Channel"
	case Rank:
		return "Rank"
	case BankGroup:
		return "BankGroup"
	case Bank:
		return "Bank"
	case Subarray:
		return "Subarray"
	case Row:
		return "Row"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// RequestType classifies the access a Request asks the memory system
// to perform.
type RequestType int

const (
	ReadReq RequestType = iota
	WriteReq
	RefreshReq
	OtherReq
)

func (t RequestType) String() string {
	switch t {
	case ReadReq:
		return "Read"
	case WriteReq:
		return "Write"
	case RefreshReq:
		return "Refresh"
	default:
		return "Other"
	}
}

// Organization describes the per-level element counts and electrical
// shape of a device.
type Organization struct {
	Channels         int
	Ranks            int
	BankGroups       int // 0 or 1 means "no bank-group level" for this standard
	Banks            int // banks per bank-group (or per rank if no bank-group level)
	Rows             int
	Columns          int
	Subarrays        int // 1 means "no subarray subdivision" (RowBufferAt == Bank)
	ChannelWidthBits int // data bus width per channel, in bits
	PrefetchBeats    int // beats per burst (prefetch size)
}

// HasBankGroups reports whether this organization's hierarchy includes
// a BankGroup level between Rank and Bank (DDR4, GDDR5).
func (o Organization) HasBankGroups() bool { return o.BankGroups > 1 }

// BanksPerRank returns total banks under one rank, across bank-groups.
func (o Organization) BanksPerRank() int {
	if o.HasBankGroups() {
		return o.BankGroups * o.Banks
	}
	return o.Banks
}

// TimingRule encodes one inter-command constraint: a command of kind
// To may not fire at a node within Scope sooner than Gap cycles after
// the Distance-th-previous command of kind From at that node.
// Distance == 1 means "the last same-kind command" (a simple .next[]
// update); Distance > 1 means a sliding window over the last Distance
// occurrences (e.g. tFAW: the window of the last 4 ACTs).
type TimingRule struct {
	From     Command
	To       Command
	Scope    Level
	Distance int
	Gap      int
}

// DeviceSpec is the complete, immutable description of one configured
// DRAM device: organization, timing, and the precondition/effect state
// tables that drive HierarchyNode.
type DeviceSpec struct {
	Standard Standard
	Org      Organization
	TCK      float64 // cycle time, ns
	Timing   map[string]int // named constant -> cycles (tRCD, tRP, ...)

	Commands      []Command
	CommandScope  map[Command]Level
	Translate     map[RequestType]Command
	RowBufferAt   Level // level that owns the open-row state (usually Bank; Subarray for SALP/DSARP)

	preconditions map[preconditionKey]preconditionRule
	effects       map[effectKey]State
	timingRules   []TimingRule
	rulesByFrom   map[Command][]TimingRule
	rulesByTo     map[Command][]TimingRule

	// ReadLatency is the fixed cycle count from issuing the terminal
	// read command to data being available, i.e. spec.read_latency in
	// Controller.tick step 9.
	ReadLatency int
}

type preconditionKey struct {
	Level Level
	State State
	Cmd   Command
}

type preconditionRule struct {
	Issuable  bool
	Precursor Command
}

type effectKey struct {
	Level Level
	State State
	Cmd   Command
}

// addPrecondition registers that, at Level with State, requesting Cmd
// either is directly issuable or must first decode to Precursor.
func (s *DeviceSpec) addPrecondition(level Level, state State, cmd Command, issuable bool, precursor Command) {
	if s.preconditions == nil {
		s.preconditions = make(map[preconditionKey]preconditionRule)
	}
	s.preconditions[preconditionKey{level, state, cmd}] = preconditionRule{Issuable: issuable, Precursor: precursor}
}

// addEffect registers the state transition Cmd causes at Level when the
// node's current state is State.
func (s *DeviceSpec) addEffect(level Level, state State, cmd Command, next State) {
	if s.effects == nil {
		s.effects = make(map[effectKey]State)
	}
	s.effects[effectKey{level, state, cmd}] = next
}

// addTimingRule registers one inter-command timing constraint.
func (s *DeviceSpec) addTimingRule(r TimingRule) {
	s.timingRules = append(s.timingRules, r)
	if s.rulesByFrom == nil {
		s.rulesByFrom = make(map[Command][]TimingRule)
	}
	if s.rulesByTo == nil {
		s.rulesByTo = make(map[Command][]TimingRule)
	}
	s.rulesByFrom[r.From] = append(s.rulesByFrom[r.From], r)
	s.rulesByTo[r.To] = append(s.rulesByTo[r.To], r)
}

// Precondition is the uniform entry point HierarchyNode.Decode
// dispatches through: given the current state of a node at Level and
// the command being requested, report whether it is directly issuable,
// and if not, the precursor command that must be decoded instead.
//
// Unregistered (level, state, cmd) tuples are treated as directly
// issuable -- most commands at most levels have no precondition (e.g.
// REF has no precondition at the Channel level).
func (s *DeviceSpec) Precondition(level Level, state State, cmd Command) (issuable bool, precursor Command) {
	rule, ok := s.preconditions[preconditionKey{level, state, cmd}]
	if !ok {
		return true, NoCommand
	}
	return rule.Issuable, rule.Precursor
}

// Effect is the uniform entry point HierarchyNode.Update dispatches
// through: the state transition Cmd causes at Level given the current
// State. ok is false if Cmd has no registered effect at Level (the
// node's state is left unchanged).
func (s *DeviceSpec) Effect(level Level, state State, cmd Command) (next State, ok bool) {
	next, ok = s.effects[effectKey{level, state, cmd}]
	return next, ok
}

// TimingRulesFor returns every TimingRule triggered by issuing cmd, i.e.
// rule.From == cmd. HierarchyNode.Update walks these to know which
// scope nodes' Next/Prev tables to advance.
func (s *DeviceSpec) TimingRulesFor(cmd Command) []TimingRule {
	return s.rulesByFrom[cmd]
}

// TimingRulesTo returns every TimingRule constraining cmd, i.e.
// rule.To == cmd. HierarchyNode.Check uses the Distance > 1 subset to
// evaluate windowed constraints (tFAW) against a node's Prev ring
// buffer; Distance == 1 rules are already folded into Next by Update
// and don't need re-deriving here.
func (s *DeviceSpec) TimingRulesTo(cmd Command) []TimingRule {
	return s.rulesByTo[cmd]
}

// AllTimingRules returns every registered timing rule, for diagnostics
// and tests.
func (s *DeviceSpec) AllTimingRules() []TimingRule {
	return s.timingRules
}

// T returns the named timing constant in cycles, or 0 if unregistered.
func (s *DeviceSpec) T(name string) int {
	return s.Timing[name]
}

// ScopeOf returns the hierarchy level a command operates at.
func (s *DeviceSpec) ScopeOf(cmd Command) Level {
	return s.CommandScope[cmd]
}

// TerminalCommand returns the command that completes a Read or Write,
// i.e. translate[RequestType] from spec.md section 4.1.
func (s *DeviceSpec) TerminalCommand(t RequestType) Command {
	return s.Translate[t]
}
