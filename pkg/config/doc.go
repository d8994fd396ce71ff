// Package config loads patch definitions for patchrc.
//
//	            +-------------+
//	            |   Config    |
//	            | (path+rules)|
//	            +------+------+
//	                   |
//	   +---------+-----+-----+---------+
//	   |         |           |         |
//	+--+---+ +---+--+    +---+--+  +---+--+
//	| YAML | | JSON |    | HCL  |  | TOML |
//	+------+ +------+    +------+  +------+
//
// 🎯 Purpose:
// - Reads a patch definition from disk
// - Picks a parser from the file extension
// - Validates needles and rule globs
// - Converts the result into a patch.Definition
//
// 📝 Format:
// YAML, JSON and TOML share one shape:
//
//	path: apps/web/src/layout/Header.tsx
//	strict: false
//	rules:
//	  - needle: ", useProgram"
//	    replacement: ""
//	  - needle: "  const { program } = useProgram();\n"
//	    required: true
//	    file: "**/*.tsx"
//
// HCL uses repeated rule blocks and exposes the environment as env:
//
//	path = "${env["REPO_ROOT"]}/apps/web/src/layout/Header.tsx"
//
//	rule {
//	  needle      = ", useProgram"
//	  replacement = ""
//	}
//
// A relative path is resolved against the directory holding the definition file.
package config
