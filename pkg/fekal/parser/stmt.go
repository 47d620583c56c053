package parser

import (
	"fekal-hq/fekal/pkg/fekal/ast"
	"fekal-hq/fekal/pkg/fekal/lexer"
	"fekal-hq/fekal/pkg/fekal/peg"
	"fekal-hq/fekal/pkg/fekal/token"
)

// Statement rules. The alternatives of ProgramStmt and PolicyStmt have
// disjoint leading tokens, so ordered choice reduces to dispatch on the
// current symbol; the optional tail of SyscallFilter is the one place
// that backtracks.

// ProgramStmt <- Policy / UseStatement / ActionBlock / 'DEFAULT' Action
func (p *Parser) programStmt(cache *peg.Cache[ast.Expr], r *lexer.Reader) (ast.ProgramStatement, bool) {
	switch r.Symbol() {
	case token.POLICY:
		return p.policy(cache, r)
	case token.USE:
		return p.useStatement(r)
	case token.DEFAULT:
		return p.defaultAction(r)
	default:
		return p.actionBlock(cache, r)
	}
}

// Policy <- 'POLICY' IDENT Version '{' PolicyStmt* '}'
func (p *Parser) policy(cache *peg.Cache[ast.Expr], r *lexer.Reader) (ast.ProgramStatement, bool) {
	if r.Symbol() != token.POLICY || !r.Next() || r.Symbol() != token.IDENT {
		return nil, false
	}
	namePos := pos(r)
	name := r.StringValue()
	if !r.Next() {
		return nil, false
	}
	version, ok := versionLiteral(r)
	if !ok || !r.Next() || r.Symbol() != token.LBRACE {
		return nil, false
	}

	var body []ast.PolicyStatement
	for {
		if !r.Next() {
			return nil, false
		}
		if r.Symbol() == token.RBRACE {
			return &ast.Policy{Position: namePos, Name: name, Version: version, Body: body}, true
		}
		stmt, ok := p.policyStmt(cache, r)
		if !ok {
			return nil, false
		}
		body = append(body, stmt)
	}
}

// PolicyStmt <- UseStatement / ActionBlock
func (p *Parser) policyStmt(cache *peg.Cache[ast.Expr], r *lexer.Reader) (ast.PolicyStatement, bool) {
	if r.Symbol() == token.USE {
		return p.useStatement(r)
	}
	return p.actionBlock(cache, r)
}

// UseStatement <- 'USE' IDENT Version
func (p *Parser) useStatement(r *lexer.Reader) (*ast.UseStatement, bool) {
	if r.Symbol() != token.USE || !r.Next() || r.Symbol() != token.IDENT {
		return nil, false
	}
	namePos := pos(r)
	name := r.StringValue()
	if !r.Next() {
		return nil, false
	}
	version, ok := versionLiteral(r)
	if !ok {
		return nil, false
	}
	return &ast.UseStatement{Position: namePos, Policy: name, Version: version}, true
}

// 'DEFAULT' Action
func (p *Parser) defaultAction(r *lexer.Reader) (ast.ProgramStatement, bool) {
	if r.Symbol() != token.DEFAULT {
		return nil, false
	}
	dPos := pos(r)
	if !r.Next() {
		return nil, false
	}
	act, ok := p.action(r)
	if !ok {
		return nil, false
	}
	return &ast.DefaultAction{Position: dPos, Action: act}, true
}

// ActionBlock <- Action '{' (SyscallFilter (',' SyscallFilter)*)? ','? '}'
func (p *Parser) actionBlock(cache *peg.Cache[ast.Expr], r *lexer.Reader) (*ast.ActionBlock, bool) {
	actPos := pos(r)
	act, ok := p.action(r)
	if !ok || !r.Next() || r.Symbol() != token.LBRACE || !r.Next() {
		return nil, false
	}

	var filters []*ast.SyscallFilter
	if r.Symbol() != token.RBRACE {
		for {
			f, ok := p.syscallFilter(cache, r)
			if !ok || !r.Next() {
				return nil, false
			}
			filters = append(filters, f)
			if r.Symbol() == token.COMMA {
				if !r.Next() {
					return nil, false
				}
				if r.Symbol() == token.RBRACE {
					break
				}
				continue
			}
			if r.Symbol() == token.RBRACE {
				break
			}
			return nil, false
		}
	}
	return &ast.ActionBlock{Position: actPos, Action: act, Filters: filters}, true
}

// Action <- 'ALLOW' / 'LOG' / 'KILL_PROCESS' / 'KILL_THREAD' / 'USER_NOTIF'
//
//	/ 'ERRNO' '(' INT ')' / 'TRAP' '(' INT ')' / 'TRACE' '(' INT ')'
func (p *Parser) action(r *lexer.Reader) (ast.Action, bool) {
	switch r.Symbol() {
	case token.ALLOW:
		return ast.ActionAllow{}, true
	case token.LOG:
		return ast.ActionLog{}, true
	case token.KILL_PROCESS:
		return ast.ActionKillProcess{}, true
	case token.KILL_THREAD:
		return ast.ActionKillThread{}, true
	case token.USER_NOTIF:
		return ast.ActionUserNotif{}, true
	case token.ERRNO:
		v, ok := actionArg(r)
		if !ok {
			return nil, false
		}
		return ast.ActionErrno{Errnum: int32(v)}, true
	case token.TRAP:
		v, ok := actionArg(r)
		if !ok {
			return nil, false
		}
		return ast.ActionTrap{Code: v}, true
	case token.TRACE:
		v, ok := actionArg(r)
		if !ok {
			return nil, false
		}
		return ast.ActionTrace{Code: v}, true
	}
	return nil, false
}

// actionArg consumes '(' INT ')' after a parameterised action keyword.
func actionArg(r *lexer.Reader) (int64, bool) {
	if !r.Next() || r.Symbol() != token.LPAREN || !r.Next() || !r.Symbol().IsLiteral() {
		return 0, false
	}
	v := r.IntValue()
	if !r.Next() || r.Symbol() != token.RPAREN {
		return 0, false
	}
	return v, true
}

// SyscallFilter <- IDENT ( '(' (IDENT (',' IDENT)*)? ')'
//
//	'{' (OrExpr (',' OrExpr)*)? ','? '}' )?
//
// The optional tail is tried greedily; when it fails the reader is
// restored to just after the syscall name and the bare form matches.
func (p *Parser) syscallFilter(cache *peg.Cache[ast.Expr], r *lexer.Reader) (*ast.SyscallFilter, bool) {
	if r.Symbol() != token.IDENT {
		return nil, false
	}
	namePos := pos(r)
	name := r.StringValue()

	backup := *r
	if f, ok := p.filterTail(cache, r, namePos, name); ok {
		return f, true
	}
	*r = backup
	return &ast.SyscallFilter{Position: namePos, Syscall: name}, true
}

func (p *Parser) filterTail(cache *peg.Cache[ast.Expr], r *lexer.Reader, namePos ast.Position, name string) (*ast.SyscallFilter, bool) {
	if !r.Next() || r.Symbol() != token.LPAREN || !r.Next() {
		return nil, false
	}

	var params []*ast.Identifier
	if r.Symbol() != token.RPAREN {
		for {
			if r.Symbol() != token.IDENT {
				return nil, false
			}
			params = append(params, &ast.Identifier{Position: pos(r), Value: r.StringValue()})
			if !r.Next() {
				return nil, false
			}
			if r.Symbol() == token.COMMA {
				if !r.Next() {
					return nil, false
				}
				continue
			}
			if r.Symbol() == token.RPAREN {
				break
			}
			return nil, false
		}
	}

	if !r.Next() || r.Symbol() != token.LBRACE || !r.Next() {
		return nil, false
	}

	var body []ast.BoolExpr
	if r.Symbol() != token.RBRACE {
		for {
			cond, ok := boolCondition(cache, r)
			if !ok || !r.Next() {
				return nil, false
			}
			body = append(body, cond)
			if r.Symbol() == token.COMMA {
				if !r.Next() {
					return nil, false
				}
				if r.Symbol() == token.RBRACE {
					break
				}
				continue
			}
			if r.Symbol() == token.RBRACE {
				break
			}
			return nil, false
		}
	}
	return &ast.SyscallFilter{Position: namePos, Syscall: name, Params: params, Body: body}, true
}

// versionLiteral accepts the version token after a policy or use name:
// an identifier or any integer literal, kept in its source spelling.
func versionLiteral(r *lexer.Reader) (string, bool) {
	if r.Symbol() == token.IDENT {
		return r.StringValue(), true
	}
	if r.Symbol().IsLiteral() {
		return string(r.Literal()), true
	}
	return "", false
}
