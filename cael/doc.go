// Package cael implements the Cael scripting language. Source text is lexed
// into a token stream, parsed into an immutable syntax tree and evaluated by a
// tree-walking interpreter against a chain of lexical scopes. Supported
// constructs:
//   - `let` and `const` declarations, with `const` bindings that reject
//     reassignment.
//   - Numbers, strings, and the built-in constants null, true and false.
//   - Arithmetic (+, -, *, /, %) with string concatenation coercions.
//   - Comparisons (<, >, =) inside `if` and `for` headers.
//   - `print(expr)` output, `if`/`else` blocks and C-style `for` loops.
//   - Object literals `{a: 1, b}` and property access via `object.attr`.
//
// Calls parse but always fail at run time. The interpreter enforces an
// optional step quota.
package cael
