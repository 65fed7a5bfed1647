// Package lsp 里氏替换原则：派生类型必须能够替换其基类型。
//
// Failure 为失败结果提供统一的形状：不关心请求的调用方只读 Domain/Code，
// 关心请求的调用方按 Kind 判断后读取可选的 Request 载荷，
// 任何一方都不需要把错误向下转型为某个具体子类型。
package lsp

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Request 一次请求的最小描述
type Request struct {
	ID     string
	Method string
	URL    string
}

// NewRequest 创建带唯一 ID 的请求，method 为空时使用 GET
func NewRequest(method, url string) *Request {
	if method == "" {
		method = http.MethodGet
	}
	return &Request{
		ID:     uuid.NewString(),
		Method: method,
		URL:    url,
	}
}

func (r *Request) String() string {
	return fmt.Sprintf("%s %s (%s)", r.Method, r.URL, r.ID)
}

// FailureKind 失败的判别类型
type FailureKind int

const (
	// KindGeneric 没有附加载荷的普通失败
	KindGeneric FailureKind = iota
	// KindRequest 携带失败请求的失败
	KindRequest
)

func (k FailureKind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindRequest:
		return "request"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Failure 带判别字段的失败结果。Kind 为 KindRequest 时 Request 非空。
type Failure struct {
	Kind    FailureKind
	Domain  string
	Code    int
	Request *Request
}

// Error 实现 error 接口
func (f *Failure) Error() string {
	if f.Kind == KindRequest && f.Request != nil {
		return fmt.Sprintf("%s error %d: %s", f.Domain, f.Code, f.Request)
	}
	return fmt.Sprintf("%s error %d", f.Domain, f.Code)
}

// NewFailure 创建普通失败
func NewFailure(domain string, code int) *Failure {
	return &Failure{Kind: KindGeneric, Domain: domain, Code: code}
}

// NewRequestFailure 创建携带请求的失败；req 为 nil 时退化为普通失败
func NewRequestFailure(domain string, code int, req *Request) *Failure {
	if req == nil {
		return NewFailure(domain, code)
	}
	return &Failure{Kind: KindRequest, Domain: domain, Code: code, Request: req}
}

// RequestOf 在错误链中查找 Failure，仅当其 Kind 为 KindRequest 时返回请求
func RequestOf(err error) (*Request, bool) {
	var f *Failure
	if !stdErrors.As(err, &f) {
		return nil, false
	}
	if f.Kind != KindRequest || f.Request == nil {
		return nil, false
	}
	return f.Request, true
}

// CodeOf 返回错误链中 Failure 的 Code；不存在 Failure 时返回 0 和 false
func CodeOf(err error) (int, bool) {
	var f *Failure
	if !stdErrors.As(err, &f) {
		return 0, false
	}
	return f.Code, true
}

// Result 一次获取的结果：成功时 Err 为 nil
type Result struct {
	Data []byte
	Err  *Failure
}

// OK 是否成功
func (r Result) OK() bool {
	return r.Err == nil
}

// FetchDomain FetchData 失败时使用的错误域
const FetchDomain = "DOMAIN"

// FetchData 获取数据；这个示例总是失败，并在失败中带上请求
func FetchData(req *Request) Result {
	return Result{Err: NewRequestFailure(FetchDomain, 1, req)}
}

// WillReturnObjectOrError 不知道 Failure 里有什么，只把它当作普通 error 返回
func WillReturnObjectOrError() (any, error) {
	result := FetchData(NewRequest(http.MethodGet, "https://example.invalid/data"))
	if !result.OK() {
		return nil, result.Err
	}
	return result.Data, nil
}
