/*
Package compiler translates a small C-like language into x86-64 assembly.

Process of compilation

	Program Text ->
		tokenize ->
	Tokens ->
		parse (types are resolved on the way) ->
	Typed Syntax Tree (ast) ->
		back (stack machine) ->
	Assembly Text (Intel syntax)

The assembly is meant to be assembled and linked by the system toolchain.
*/
package compiler
