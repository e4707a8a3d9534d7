package main

import (
	"DotWars/internal/battle/entity/domain"
	"DotWars/internal/shared/security"
	"bytes"
	"strings"
	"testing"
	"time"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestWorldgen_输出省份与势力(t *testing.T) {
	out, err := execute(t, "worldgen", "-W", "3", "-H", "3", "-p", "9", "-f", "Red,Blue", "-t", "2")
	if err != nil {
		t.Fatalf("worldgen: %v\n%s", err, out)
	}
	for _, want := range []string{"World 3x3, 9 provinces", "Red", "Blue", "After 2 turns"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestWorldgen_噪声地形选择器(t *testing.T) {
	out, err := execute(t, "worldgen", "--picker", "noise", "-s", "42")
	if err != nil {
		t.Fatalf("worldgen: %v\n%s", err, out)
	}
	if !strings.Contains(out, "picker=noise") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestWorldgen_未知选择器报错(t *testing.T) {
	if _, err := execute(t, "worldgen", "--picker", "fractal"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSkirmish_打到结束(t *testing.T) {
	out, err := execute(t, "skirmish", "-a", "Cavalry:200", "-d", "Infantry:20", "--terrain", "forest", "-q")
	if err != nil {
		t.Fatalf("skirmish: %v\n%s", err, out)
	}
	if !strings.Contains(out, "rounds (") {
		t.Fatalf("expected final verdict, output:\n%s", out)
	}
	if strings.Contains(out, "round   1") {
		t.Fatalf("quiet mode should not print round log:\n%s", out)
	}
}

func TestSkirmish_非法参数(t *testing.T) {
	cases := [][]string{
		{"skirmish", "-a", "Dragons:10"},
		{"skirmish", "-d", "Infantry:0"},
		{"skirmish", "--terrain", "lava"},
		{"skirmish", "--stop", "Turn >="},
	}
	for _, args := range cases {
		if _, err := execute(t, args...); err == nil {
			t.Fatalf("args=%v expected error", args)
		}
	}
}

func TestParseArmy(t *testing.T) {
	army, err := parseArmy("Cavalry:100, Special:War Elephants:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(army) != 2 {
		t.Fatalf("len=%d", len(army))
	}
	if army[0].unitType.Kind != domain.KindCavalry || army[0].size != 100 {
		t.Fatalf("first=%+v", army[0])
	}
	if army[1].unitType != domain.Special("War Elephants") || army[1].size != 30 {
		t.Fatalf("second=%+v", army[1])
	}
	if _, err := parseArmy(""); err == nil {
		t.Fatalf("empty army should fail")
	}
}

func TestToken_签发可校验的token(t *testing.T) {
	out, err := execute(t, "token", "--secret", "s3cret", "--subject", "ops", "--ttl", "1h")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	issuer, err := security.NewIssuer("s3cret", time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	sub, err := issuer.Verify(strings.TrimSpace(out))
	if err != nil || sub != "ops" {
		t.Fatalf("sub=%q err=%v", sub, err)
	}
}
