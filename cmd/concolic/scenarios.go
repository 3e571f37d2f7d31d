package main

import (
	"fmt"

	"github.com/concolic/goconcolic/pkg/concolic"
)

// scenario wires a declared symbolic variable and a host program into an
// Explorer run. Each one mirrors one of the demo programs named in the
// engine's concrete scenario catalogue.
type scenario struct {
	name       string
	describe   string
	seeds      map[string]interface{}
	buildHost  func(session *concolic.Session) concolic.ExecuteFunc
	maxIterOpt int // zero means leave the caller's configured value alone
}

var scenarios = map[string]scenario{
	"five-case-select": {
		name:     "five-case-select",
		describe: "switch_case over choice in [0,4]",
		seeds:    map[string]interface{}{"choice": int64(0)},
		buildHost: func(session *concolic.Session) concolic.ExecuteFunc {
			tag, err := session.MakeSymbolicInt("choice", 0)
			if err != nil {
				panic(err)
			}
			return func(seeds map[string]interface{}) (*concolic.PathCondition, error) {
				choice := seeds["choice"].(int64)
				rc := session.NewRecorderContext()
				selected := int64(-1)
				if choice >= 0 && choice <= 4 {
					selected = choice
				}
				rc.SwitchCase(choice, tag, []int64{0, 1, 2, 3, 4}, selected)
				return rc.Snapshot(), nil
			}
		},
		maxIterOpt: 10,
	},
	"single-branch": {
		name:     "single-branch",
		describe: "one integer comparison against the literal 10",
		seeds:    map[string]interface{}{"x": int64(5)},
		buildHost: func(session *concolic.Session) concolic.ExecuteFunc {
			tag, err := session.MakeSymbolicInt("x", 5)
			if err != nil {
				panic(err)
			}
			return func(seeds map[string]interface{}) (*concolic.PathCondition, error) {
				x := seeds["x"].(int64)
				rc := session.NewRecorderContext()
				rc.IcmpJump(x, 10, tag, concolic.Tag{}, concolic.CmpGT, x > 10)
				return rc.Snapshot(), nil
			}
		},
	},
	"conjunction-pruning": {
		name:     "conjunction-pruning",
		describe: "two sequential guards, x >= 0 then x < 100",
		seeds:    map[string]interface{}{"x": int64(0)},
		buildHost: func(session *concolic.Session) concolic.ExecuteFunc {
			tag, err := session.MakeSymbolicInt("x", 0)
			if err != nil {
				panic(err)
			}
			return func(seeds map[string]interface{}) (*concolic.PathCondition, error) {
				x := seeds["x"].(int64)
				rc := session.NewRecorderContext()
				rc.IcmpJump(x, 0, tag, concolic.Tag{}, concolic.CmpGE, x >= 0)
				rc.IcmpJump(x, 100, tag, concolic.Tag{}, concolic.CmpLT, x < 100)
				return rc.Snapshot(), nil
			}
		},
	},
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	return names
}

func lookupScenario(name string) (scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return scenario{}, fmt.Errorf("unknown scenario %q (known: %v)", name, scenarioNames())
	}
	return s, nil
}
