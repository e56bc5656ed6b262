// Package domain 期权分析服务的领域模型
package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput        = errors.New("invalid input parameters")
	ErrInvalidOptionSide   = errors.New("invalid option side")
	ErrCalculationNotFound = errors.New("calculation not found")
	ErrSymbolNotFound      = errors.New("symbol not found")
)

// OptionSide 期权方向
type OptionSide string

const (
	OptionSideCall OptionSide = "CALL" // 看涨期权
	OptionSidePut  OptionSide = "PUT"  // 看跌期权
)

// Valid 判断方向取值是否合法
func (s OptionSide) Valid() bool {
	return s == OptionSideCall || s == OptionSidePut
}

// ParseOptionSide 解析外部传入的方向字符串，大小写不敏感
func ParseOptionSide(raw string) (OptionSide, error) {
	side := OptionSide(strings.ToUpper(strings.TrimSpace(raw)))
	if !side.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOptionSide, raw)
	}
	return side, nil
}
