package service

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultStopRule 默认回合上限。
const DefaultStopRule = "Turn >= 100"

// StopEnv 停战规则表达式可以引用的变量。
type StopEnv struct {
	Turn             int
	AttackerActive   int
	DefenderActive   int
	AttackerSoldiers int
	DefenderSoldiers int
	AttackerMorale   float64 // 存活部队平均士气
	DefenderMorale   float64
}

// StopPolicy 外部停战策略：表达式为真时战斗直接结束。
type StopPolicy struct {
	src     string
	program *vm.Program
}

// CompileStopPolicy 编译表达式，空串使用 DefaultStopRule。
func CompileStopPolicy(src string) (*StopPolicy, error) {
	if src == "" {
		src = DefaultStopRule
	}
	prog, err := expr.Compile(src, expr.Env(StopEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile stop rule %q: %w", src, err)
	}
	return &StopPolicy{src: src, program: prog}, nil
}

func (p *StopPolicy) Source() string {
	if p == nil {
		return ""
	}
	return p.src
}

func (p *StopPolicy) ShouldStop(env StopEnv) (bool, error) {
	if p == nil || p.program == nil {
		return false, nil
	}
	out, err := expr.Run(p.program, env)
	if err != nil {
		return false, fmt.Errorf("run stop rule %q: %w", p.src, err)
	}
	stop, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("stop rule %q returned %T", p.src, out)
	}
	return stop, nil
}
