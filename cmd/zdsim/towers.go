package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/decker502/zombie-defense/pkg/types"
)

// placement 开局要建造的一座塔
type placement struct {
	kind types.TowerKind
	x, y float64
}

// placementList 可重复的 -tower 参数，格式 kind@x,y
type placementList []placement

func (l *placementList) String() string {
	parts := make([]string, 0, len(*l))
	for _, p := range *l {
		parts = append(parts, fmt.Sprintf("%s@%g,%g", p.kind, p.x, p.y))
	}
	return strings.Join(parts, " ")
}

func (l *placementList) Set(value string) error {
	p, err := parsePlacement(value)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

func parsePlacement(value string) (placement, error) {
	kind, coords, ok := strings.Cut(strings.TrimSpace(value), "@")
	if !ok || kind == "" {
		return placement{}, fmt.Errorf("invalid tower %q, want kind@x,y", value)
	}
	xs, ys, ok := strings.Cut(coords, ",")
	if !ok {
		return placement{}, fmt.Errorf("invalid tower %q, want kind@x,y", value)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return placement{}, fmt.Errorf("invalid x in %q: %w", value, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return placement{}, fmt.Errorf("invalid y in %q: %w", value, err)
	}
	return placement{kind: types.TowerKind(kind), x: x, y: y}, nil
}
