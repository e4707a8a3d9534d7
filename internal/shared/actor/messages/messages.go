package messages

// FailResp actor 处理失败时的统一回复，Err 保留原始错误码语义。
type FailResp struct {
	Err error
}

func Fail(err error) *FailResp {
	return &FailResp{Err: err}
}
