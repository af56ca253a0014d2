package fcconst

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/sailfishos-mirror/fontconfig/errors"
)

// RenderGo renders the tables as a Go source file in package pkg.
// Rows are sized slices, so no sentinel entries are emitted. Values stay
// textual because list values may be C expressions.
func RenderGo(t *Tables, pkg string) ([]byte, error) {
	if pkg == "" {
		pkg = "fcconst"
	}
	if !token.IsIdentifier(pkg) {
		return nil, errors.Newf("invalid package name %q", pkg)
	}

	var sb strings.Builder
	sb.WriteString("// Copyright (C) 2025 fontconfig Authors\n")
	sb.WriteString("// SPDX-License-Identifier: HPND\n\n")
	sb.WriteString("// Code generated by fc-const. DO NOT EDIT.\n\n")
	sb.WriteString(fmt.Sprintf("package %s\n\n", pkg))

	sb.WriteString("// Constant is a symbolic value registered under an object.\n")
	sb.WriteString("type Constant struct {\n\tName   string\n\tObject string\n\tValue  string\n}\n\n")
	sb.WriteString("// ConstIndex locates one definition of a symbol.\n")
	sb.WriteString("type ConstIndex struct {\n\tObject      string\n\tObjectIndex int\n\tValueIndex  int\n}\n\n")
	sb.WriteString("// ConstSymbol lists every object a constant name is defined for.\n")
	sb.WriteString("type ConstSymbol struct {\n\tName   string\n\tValues []ConstIndex\n}\n\n")

	sb.WriteString("// Objects is the object enumeration, indexed by object number.\n")
	sb.WriteString("var Objects = []string{\n")
	for _, name := range t.Objects.Names() {
		sb.WriteString(fmt.Sprintf("\t%s,\n", strconv.Quote(name)))
	}
	sb.WriteString("}\n\n")

	sb.WriteString("// ConstantSymbols is sorted by name.\n")
	sb.WriteString("var ConstantSymbols = []ConstSymbol{\n")
	for _, s := range t.Symbols {
		sb.WriteString(fmt.Sprintf("\t{Name: %s, Values: []ConstIndex{\n", strconv.Quote(s.Name)))
		for _, r := range s.Refs {
			sb.WriteString(fmt.Sprintf("\t\t{Object: %s, ObjectIndex: %d, ValueIndex: %d},\n",
				strconv.Quote(r.Object), r.ObjectIndex, r.ValueIndex))
		}
		sb.WriteString("\t}},\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("// ConstantObjects holds one row per object, indexed by object number.\n")
	sb.WriteString("var ConstantObjects = [][]Constant{\n")
	for i, row := range t.ByObject {
		obj := t.Objects.Name(i)
		if len(row) == 0 {
			sb.WriteString(fmt.Sprintf("\tnil, // %s\n", obj))
			continue
		}
		sb.WriteString("\t{\n")
		for _, c := range row {
			sb.WriteString(fmt.Sprintf("\t\t{Name: %s, Object: %s, Value: %s},\n",
				strconv.Quote(c.Name), strconv.Quote(obj), strconv.Quote(c.Value)))
		}
		sb.WriteString("\t},\n")
	}
	sb.WriteString("}\n")

	out, err := imports.Process(pkg+"_tables.go", []byte(sb.String()), nil)
	if err != nil {
		return nil, errors.Wrap(err, "format generated Go source")
	}
	return out, nil
}
