package ws

import (
	"DotWars/modules/kit/errx"
	"encoding/json"
)

// BindJSON 将 WsMsgReq.Body.Msg 反序列化到目标结构体。
func BindJSON(req *WsMsgReq, dst any) error {
	if req == nil || req.Body == nil {
		return errx.ErrReqParamERR.WithData("reason", "empty body")
	}
	if req.Body.Msg == nil {
		return errx.ErrReqParamERR.WithData("reason", "empty msg")
	}
	raw, err := json.Marshal(req.Body.Msg)
	if err != nil {
		return errx.ErrReqParamERR.WithCause(err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errx.ErrReqParamERR.WithCause(err)
	}
	return nil
}
