package scheduler

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCatalog    = errors.New("排课目录无效")
	ErrInvalidParameters = errors.New("遗传算法参数无效")
)

// ConfigurationError 在开始搜索之前返回，表示这次运行无法进行
type ConfigurationError struct {
	Kind error // ErrInvalidCatalog 或 ErrInvalidParameters
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *ConfigurationError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
