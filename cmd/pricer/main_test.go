package main

import (
	"bytes"
	"strings"
	"testing"
)

// 默认参数 → 报价 → 退出
func TestRunQuoteThenQuit(t *testing.T) {
	input := strings.Join([]string{
		"", "", "", "", "", // 五个定价参数取默认值
		"1", // Price quote
		"5", // Quit
	}, "\n") + "\n"

	var out bytes.Buffer
	p := NewPrompterFromReader(strings.NewReader(input), &out)
	if err := run(p, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Call:") || !strings.Contains(text, "Put:") {
		t.Errorf("output missing quote lines:\n%s", text)
	}
	if !strings.Contains(text, "bye") {
		t.Errorf("output missing quit message:\n%s", text)
	}
}

func TestRunImpliedVol(t *testing.T) {
	input := strings.Join([]string{
		"", "", "", "", "",
		"3",   // Implied volatility
		"1",   // call
		"4.6", // observed price
		"5",   // Quit
	}, "\n") + "\n"

	var out bytes.Buffer
	p := NewPrompterFromReader(strings.NewReader(input), &out)
	if err := run(p, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Implied vol:") {
		t.Errorf("output missing implied vol line:\n%s", out.String())
	}
}

func TestPrompterDefaults(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompterFromReader(strings.NewReader("\nabc\n"), &out)

	if got := p.Float("spot", 100); got != 100 {
		t.Errorf("empty input: got %v, want default 100", got)
	}
	if got := p.Float("spot", 100); got != 100 {
		t.Errorf("bad input: got %v, want default 100", got)
	}
}
