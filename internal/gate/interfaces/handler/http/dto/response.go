package dto

// Response 管理接口统一响应体，HTTP 状态码恒为 200，结果看 code。
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func Success(code int, data any) *Response {
	return &Response{Code: code, Msg: "ok", Data: data}
}

func Error(code int, msg string) *Response {
	return &Response{Code: code, Msg: msg}
}
