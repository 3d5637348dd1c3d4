// Package lang implements the syntax of Rapira: a scanner, a recursive
// descent parser producing a position-tagged syntax tree, and printers for
// that tree.
//
// # Grammar
//
// Informal EBNF. Statements are separated by ';' or newlines; newlines are
// ignored inside (), [] and <* *>, and after a binary operator or comma.
//
//	Program   → Block EOF
//	Block     → (Stmt Sep)*
//	Stmt      → Postfix ':=' Expr
//	          | Postfix                         (a call)
//	          | ('proc' | 'fun') Ident Sub
//	          | 'if' Expr 'then' Block ['else' Block] 'fi'
//	          | 'case' [Expr] ('when' Exprs ':' Block)+ ['else' Block] 'esac'
//	          | [For] ['repeat' Expr] ['while' Expr] 'do' Block 'od'
//	          | 'output' ['nlf'] ':' [Exprs]
//	          | 'input' ['text'] ':' Exprs
//	          | 'exit'
//	          | 'return' [Expr]
//	For       → 'for' Ident [('from' | ':=') Expr] ['to' Expr] ['step' Expr]
//	Sub       → ['(' [Param (',' Param)*] ')'] ['extern' ':' Ident (',' Ident)*] Block 'end'
//	Param     → ['=>'] Ident
//	Expr      → Expr 'or' Expr | Expr 'and' Expr | 'not' Expr
//	          | Expr Cmp Expr | Expr ('+' | '-') Expr
//	          | Expr ('*' | '/' | '//' | '%') Expr
//	          | ('-' | '#') Expr | Postfix '**' Expr
//	          | Postfix
//	Postfix   → Primary ('[' Sel (',' Sel)* ']' | '(' [Arg (',' Arg)*] ')')*
//	Sel       → Expr | [Expr] ':' [Expr]
//	Arg       → ['=>'] Expr
//	Primary   → Integer | Real | Text | 'yes' | 'no' | 'empty' | Ident
//	          | '(' Expr ')' | '<*' [Exprs] '*>' | ('proc' | 'fun') Sub
//
// Comments run from '\' to the end of the line. Text literals are
// delimited by '"'; a doubled quote inside a literal stands for one quote.
//
// # Example
//
//	\ factorial, recursively
//	fun fact(n)
//	  if n <= 1 then return 1 fi
//	  return n * fact(n - 1)
//	end
//
//	for i from 1 to 5 do
//	  output: i, fact(i)
//	od
package lang
