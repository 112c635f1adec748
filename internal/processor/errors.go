package processor

import (
	"errors"
	"fmt"
)

// ErrInsufficientContent 提取出的文本太短，无法进行有意义的解析
var ErrInsufficientContent = errors.New("insufficient text content extracted from document")

// ProcessError 带阶段信息的处理错误
type ProcessError struct {
	Op      string // 出错的处理阶段
	BaseErr error  // 底层错误
	Detail  string // 补充上下文
}

func (e *ProcessError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.BaseErr, e.Detail)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.BaseErr)
}

func (e *ProcessError) Unwrap() error {
	return e.BaseErr
}

// Is 支持与底层错误的errors.Is匹配
func (e *ProcessError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// newProcessError 创建处理错误
func newProcessError(op string, baseErr error, detail string) *ProcessError {
	return &ProcessError{Op: op, BaseErr: baseErr, Detail: detail}
}
