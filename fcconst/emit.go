package fcconst

import (
	"fmt"
	"strings"
)

// Header is the license banner opening every generated file.
const Header = "/* Copyright (C) 2025 fontconfig Authors */\n" +
	"/* SPDX-License-Identifier: HPND */\n" +
	"\n"

// RenderTables renders the C symbol and object tables consumed by the
// fontconfig library, banner included.
func RenderTables(t *Tables) string {
	sym := symbolTableLines(t)
	objs := objectTableLines(t)
	return Header + strings.Join(sym, "\n") + "\n" + strings.Join(objs, "\n")
}

// RenderCheck renders a C program that looks up every entry through
// FcNameGetConstantFor and returns the number of mismatches.
func RenderCheck(entries []Entry) string {
	lines := []string{
		"#include <stdio.h>",
		`#include "fontconfig/fontconfig.h"`,
		"",
		"int test (void) {",
		"    int ret = 0;",
		"    const FcConstant *c;",
	}
	for _, e := range entries {
		lines = append(lines,
			fmt.Sprintf(`    c = FcNameGetConstantFor ((const FcChar8 *)"%s", %s);`, e.Name, e.Object),
			fmt.Sprintf("    if (!c || c->value != %s) {", e.Value),
			fmt.Sprintf(`        fprintf (stderr, "failed: (%%s, %%s)\n", "%s", _FC_STRINGIFY(%s));`, e.Name, e.Object),
			"        ret++;",
			"    }",
		)
	}
	lines = append(lines,
		"    return ret;",
		"}",
		"",
		"int main(void) { return test(); }",
		"",
	)
	return Header + strings.Join(lines, "\n")
}

func symbolTableLines(t *Tables) []string {
	lines := []string{
		"typedef struct _FcConstIndex {",
		"    FcObject object;",
		"    int      idx_obj;",
		"    int      idx_variant;",
		"} FcConstIndex;",
		"",
		"typedef struct _FcConstSymbolMap {",
		"    const FcChar8 *name;",
		fmt.Sprintf("    FcConstIndex   values[%d];", t.SymbolWidth),
		"} FcConstSymbolMap;",
		"",
		"static const FcConstSymbolMap _FcBaseConstantSymbols[] = {",
	}
	for _, s := range t.Symbols {
		lines = append(lines,
			"    {",
			fmt.Sprintf(`        (const FcChar8 *) "%s",`, s.Name),
			"        {",
		)
		for _, r := range s.Refs {
			lines = append(lines, fmt.Sprintf("            { %s_OBJECT, %d, %d },", r.Object, r.ObjectIndex, r.ValueIndex))
		}
		lines = append(lines,
			"            { FC_INVALID_OBJECT, 0, 0 },",
			"        },",
			"    },",
		)
	}
	return append(lines,
		"};",
		"",
		"#define NUM_FC_CONST_SYMBOLS (sizeof (_FcBaseConstantSymbols) / sizeof (_FcBaseConstantSymbols[0]))",
		"",
	)
}

func objectTableLines(t *Tables) []string {
	lines := []string{
		"typedef struct _fcConstObjects {",
		fmt.Sprintf("    FcConstant values[%d];", t.ObjectWidth),
		"} FcConstantObjects;",
		"",
		"static const FcConstantObjects _FcBaseConstantObjects[FC_MAX_BASE_OBJECT+1] = {",
	}
	for i, row := range t.ByObject {
		obj := t.Objects.Name(i)
		if len(row) == 0 {
			lines = append(lines, "    {{{ NULL, NULL, 0 }}}    /* "+obj+" */,")
			continue
		}
		lines = append(lines, "    {{")
		for _, c := range row {
			lines = append(lines, fmt.Sprintf(`        { (const FcChar8 *) "%s", %s, %s},`, c.Name, obj, c.Value))
		}
		lines = append(lines,
			"        { NULL, NULL, 0 },",
			"    }},",
		)
	}
	return append(lines,
		"};",
		"",
		"#define NUM_FC_CONST_OBJS (sizeof (_FcBaseConstantObjects) / sizeof (_FcBaseConstantObjects[0]))",
		"",
	)
}
