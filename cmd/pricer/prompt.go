package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Prompter 封装交互式输入输出, 可注入自定义读写器用于测试
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter 使用标准输入输出构造 Prompter
func NewPrompter() *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
	}
}

// NewPrompterFromReader 使用自定义读写器构造 Prompter
func NewPrompterFromReader(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(r),
		out:     w,
	}
}

// Float 提示输入浮点数, 空输入或解析失败时返回默认值
func (p *Prompter) Float(prompt string, defaultVal float64) float64 {
	fmt.Fprintf(p.out, "%s [%g]: ", prompt, defaultVal)
	if !p.scanner.Scan() {
		return defaultVal
	}
	input := strings.TrimSpace(p.scanner.Text())
	if input == "" {
		return defaultVal
	}
	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		fmt.Fprintf(p.out, "  invalid number %q, using %g\n", input, defaultVal)
		return defaultVal
	}
	return v
}

// Int 提示输入整数, 空输入或解析失败时返回默认值
func (p *Prompter) Int(prompt string, defaultVal int) int {
	fmt.Fprintf(p.out, "%s [%d]: ", prompt, defaultVal)
	if !p.scanner.Scan() {
		return defaultVal
	}
	input := strings.TrimSpace(p.scanner.Text())
	if input == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(input)
	if err != nil {
		fmt.Fprintf(p.out, "  invalid number %q, using %d\n", input, defaultVal)
		return defaultVal
	}
	return v
}

// Choice 提示从编号列表中选择一项, 返回 0 起始下标
func (p *Prompter) Choice(prompt string, options []string, defaultIdx int) int {
	fmt.Fprintln(p.out, prompt)
	for i, opt := range options {
		marker := " "
		if i == defaultIdx {
			marker = "*"
		}
		fmt.Fprintf(p.out, "  %s%d) %s\n", marker, i+1, opt)
	}
	for {
		fmt.Fprintf(p.out, "Enter choice [%d]: ", defaultIdx+1)
		if !p.scanner.Scan() {
			return defaultIdx
		}
		input := strings.TrimSpace(p.scanner.Text())
		if input == "" {
			return defaultIdx
		}
		n, err := strconv.Atoi(input)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1
		}
		fmt.Fprintln(p.out, "  Invalid choice, try again.")
	}
}
