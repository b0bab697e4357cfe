/*
Package reachql answers reachability queries over edge-labeled directed
graphs constrained by a regular expression or a context-free grammar.

Package structure is as follows:

■ sparse: boolean sparse matrices, the substrate every other package
builds on.

■ automaton: states, labeled transition systems (LTS), regex-to-DFA
compilation and graph-to-NFA conversion.

■ grammar: context-free grammars, weak Chomsky normal form, extended
CFGs and recursive state machines (RSM).

■ cfpq: the closure kernels — transitive closure, multi-source BFS,
Hellings, matrix-CFPQ and tensor-CFPQ.

■ values: runtime values of the query language (Set, Pair, Triple, FA,
CFG) and their combinators.

■ lang: the query language's lexer, parser and tree-walking
interpreter.

■ external: DOT and grammar file readers/writers and the graph catalog.

The base package contains data types used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 reachql contributors

*/
package reachql
