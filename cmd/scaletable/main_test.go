package main

import (
	"bytes"
	"strings"
	"testing"

	us "github.com/EIFY/unit-scaling"
	"github.com/EIFY/unit-scaling/scalefuncs"
)

func TestPrintTable(t *testing.T) {
	params := []us.Param{
		us.WeightParam("w", 8, 4),
		us.BiasParam("b", 8),
		us.OutputParam("out", us.ToOutputScale, 3, 8),
	}

	groups, err := us.BuildGroups(params, us.GroupArgs{Scale: scalefuncs.Momentum(us.ToOutputScale), LR: 1})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err = printTable(&buf, groups, 1); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected a header and 3 rows, got %d lines:\n%s", len(lines), buf.String())
	}

	// weight: 4^-1/2
	if fields := strings.Fields(lines[1]); fields[1] != "w" || fields[len(fields)-3] != "0.5" {
		t.Errorf("Unexpected row for weight: %q", lines[1])
	}

	// bias: fan_in = 8
	if fields := strings.Fields(lines[2]); fields[1] != "b" || fields[len(fields)-3] != "8" {
		t.Errorf("Unexpected row for bias: %q", lines[2])
	}
}

func TestPrintTableSchedule(t *testing.T) {
	c := us.Config{
		Optimizer:         "sgd",
		ReadoutConstraint: us.ToOutputScale,
		LR:                0.1,
		Schedule:          "step:1,100=0.1",
		Params:            []us.ParamConfig{{Name: "w", Role: us.Weight, Shape: []int{8, 4}}},
	}

	groups, err := c.Build()
	if err != nil {
		t.Fatal(err)
	}

	sched, err := c.LRSchedule()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err = printTable(&buf, groups, sched.Value(150)); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected a header and 1 row, got %d lines:\n%s", len(lines), buf.String())
	}

	// 0.1 · 4^-1/2 · 0.1
	if fields := strings.Fields(lines[1]); fields[len(fields)-2] != "0.005" {
		t.Errorf("Unexpected row for weight: %q", lines[1])
	}
}
