package main

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/voigtlab/gslc/internal/cmd"

	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootCmd = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /gslc
---
`

// child command without children
const childCmd = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// child with children
const childParentCmd = `---
layout: default
title: %s
parent: %s
nav_order: %d
has_children: true
---
`

// grandchildren
const grandchildCmd = `---
layout: default
title: %s
parent: %s
grand_parent: %s
nav_order: %d
---
`

// docType codes whether the command is a grandchild, child, etc
type docType int

const (
	root docType = iota
	child
	childParent
	grandchild
)

// meta is for describing the position/info for a command doc page
type meta struct {
	docType     docType
	title       string
	navOrder    int
	hasChildren bool
	parent      string
	grandParent string
}

// map from the base Markdown file name to its build meta
var metaMap = map[string]meta{
	"gslc": {
		root,
		"gslc",
		0,
		true,
		"",
		"",
	},
	"gslc_materialize": {
		child,
		"materialize",
		0,
		false,
		"gslc",
		"",
	},
	"gslc_refgenome": {
		childParent,
		"refgenome",
		1,
		true,
		"gslc",
		"",
	},
	"gslc_refgenome_list": {
		grandchild,
		"list",
		0,
		false,
		"refgenome",
		"gslc",
	},
	"gslc_refgenome_gene": {
		grandchild,
		"gene",
		1,
		false,
		"refgenome",
		"gslc",
	},
	"gslc_library": {
		childParent,
		"library",
		2,
		true,
		"gslc",
		"",
	},
	"gslc_library_get": {
		grandchild,
		"get",
		0,
		false,
		"library",
		"gslc",
	},
}

// makeDocs parses the custom commands and outputs Markdown documentation files
func makeDocs() {
	if err := doc.GenMarkdownTreeCustom(cmd.RootCmd, ".", filePrepender, linkHandler); err != nil {
		fmt.Println(err.Error())
	}
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))
	m := metaMap[base]

	switch m.docType {
	case root:
		return fmt.Sprintf(rootCmd, m.title, m.navOrder)
	case child:
		return fmt.Sprintf(childCmd, m.title, m.parent, m.navOrder)
	case childParent:
		return fmt.Sprintf(childParentCmd, m.title, m.parent, m.navOrder)
	case grandchild:
		return fmt.Sprintf(grandchildCmd, m.title, m.parent, m.grandParent, m.navOrder)
	}

	return ""
}

/// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))
	return base
}

func main() {
	makeDocs()
}
