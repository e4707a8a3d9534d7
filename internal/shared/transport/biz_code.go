package transport

import (
	"errors"

	"DotWars/modules/kit/errx"
)

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 对外业务码，HTTP 响应体 {"code": ...} 使用。
const (
	OK            = 0
	SystemError   = 1
	ParamError    = 2
	RuleRejected  = 3 // 资源不足、阶段不对等规则拒绝
	NotFound      = 4
	TimeoutError  = 5
	Unavailable   = 6
	UnknownAction = 7
	Unauthorized  = 8
)

var notFoundCodes = map[errx.Code]bool{
	"WORLD_NOT_FOUND":          true,
	"WORLD_FACTION_NOT_FOUND":  true,
	"WORLD_PROVINCE_NOT_FOUND": true,
	"BATTLE_UNIT_NOT_FOUND":    true,
	"BATTLE_NOT_FOUND":         true,
}

// CodeOf 把错误映射到业务码。
func CodeOf(err error) int {
	if err == nil {
		return OK
	}
	var e *errx.Error
	if !errors.As(err, &e) {
		return SystemError
	}
	switch {
	case e.Code() == errx.CodeReqParamError:
		return ParamError
	case notFoundCodes[e.Code()]:
		return NotFound
	case e.Code() == errx.CodeTimeout:
		return TimeoutError
	case e.Code() == errx.CodeUnavailable:
		return Unavailable
	case e.IsBiz():
		return RuleRejected
	default:
		return SystemError
	}
}
