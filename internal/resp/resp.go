// Package resp 定义统一的HTTP响应结构，保证所有接口返回一致的数据信封。
package resp

import (
	"encoding/json"
	"net/http"
)

// Code 业务状态码类型
type Code int

// 约定的业务状态码集合。
// 0 表示成功，非 0 表示各类失败；HTTP 状态码与业务码独立维护。
const (
	CodeOK            Code = 0
	CodeInvalidParam  Code = 10001
	CodeInternalError Code = 10002
	CodeTimeout       Code = 10003
	CodeNotFound      Code = 10004
)

// Response 统一响应信封
type Response[T any] struct {
	Code      Code   `json:"code"`
	Message   string `json:"message"`
	Data      *T     `json:"data,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	TraceID   string `json:"trace_id,omitempty"`
}

// HTTPStatusFromCode 将业务码映射到HTTP状态码
func HTTPStatusFromCode(code Code) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON 写入JSON响应，所有出口统一走这里
func WriteJSON[T any](w http.ResponseWriter, status int, code Code, message string, data *T, requestID, traceID string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	body := Response[T]{
		Code:      code,
		Message:   message,
		Data:      data,
		RequestID: requestID,
		TraceID:   traceID,
	}
	// 编码失败时无法再向客户端补救，忽略错误
	_ = json.NewEncoder(w).Encode(body)
}

// OK 写入成功响应
func OK[T any](w http.ResponseWriter, data *T, requestID, traceID string) {
	WriteJSON(w, http.StatusOK, CodeOK, "success", data, requestID, traceID)
}

// Error 写入失败响应，data 恒为空
func Error(w http.ResponseWriter, status int, code Code, message string, requestID, traceID string) {
	WriteJSON[any](w, status, code, message, nil, requestID, traceID)
}
