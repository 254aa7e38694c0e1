// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scmd

// ExtraFunc receives tokens left over after every positional definition has
// been filled. Returning false stops parsing.
type ExtraFunc func(token string) bool

// session is the state of one Process call. It is shared by nested
// response files.
type session struct {
	// pending holds the flag definitions waiting for a value token.
	pending []*Definition
	// next is the index of the next positional definition to fill.
	next  int
	depth int

	extra ExtraFunc
	onErr ErrorFunc
}

// Process parses cmdline against the registered definitions. If skipFirst
// is set the first token, usually the program name, is ignored.
//
// Process returns false when parsing stopped on an error. A missing required
// argument is reported to onErr after parsing but does not make Process
// return false, so a true result does not mean no error was reported.
func (r *Registry) Process(cmdline string, skipFirst bool, extra ExtraFunc, onErr ErrorFunc) bool {
	if skipFirst {
		_, _, cmdline, _ = nextToken(cmdline)
	}
	s := &session{extra: extra, onErr: onErr}
	if !r.processString(s, cmdline) {
		return false
	}

	for _, d := range r.positional[s.next:] {
		if d.flags.Category() == CategoryRequired {
			r.logger.Debug("required argument missing", "name", d.name, "id", d.id)
			r.report(s, ErrorNotEnoughArguments, "")
			break
		}
	}
	return true
}

// ProcessCommandLine parses the command line of the running process,
// skipping the program name.
func (r *Registry) ProcessCommandLine(extra ExtraFunc, onErr ErrorFunc) bool {
	return r.Process(hostCommandLine(), true, extra, onErr)
}

func (r *Registry) processString(s *session, text string) bool {
	for {
		tok, quoted, rest, ok := nextToken(text)
		if !ok {
			return true
		}
		if !r.processToken(s, tok, quoted) {
			return false
		}
		text = rest
	}
}

func (r *Registry) processToken(s *session, tok string, quoted bool) bool {
	if !quoted && len(tok) > 0 && tok[0] == '@' {
		return r.processFile(s, tok[1:])
	}
	if !quoted && len(tok) > 0 && tok[0] == '-' {
		s.pending = nil
		return r.scanFlags(s, tok[1:])
	}
	if s.pending != nil {
		defs := s.pending
		s.pending = nil
		_, ok := r.convertAll(defs, tok)
		return ok
	}
	if s.next < len(r.positional) {
		d := r.positional[s.next]
		if _, ok := r.convert(d, tok); !ok {
			return false
		}
		s.next++
		return true
	}
	if s.extra != nil {
		return s.extra(tok)
	}
	r.report(s, ErrorOpenFailed, tok)
	return false
}

// processFile parses the contents of a response file in place of the token
// that named it.
func (r *Registry) processFile(s *session, name string) bool {
	data, err := r.fs.ReadFile(name)
	if err != nil {
		r.logger.Debug("response file unreadable", "path", name, "err", err)
		r.report(s, ErrorOpenFailed, name)
		return false
	}
	r.logger.Debug("expanding response file", "path", name, "bytes", len(data), "depth", s.depth)
	s.depth++
	ok := r.processString(s, string(data))
	s.depth--
	return ok
}

// report records code as the last error and passes it to the session's
// error callback, if any.
func (r *Registry) report(s *session, code ErrorCode, item string) {
	msg, ok := formatError(code, item)
	if !ok {
		return
	}
	r.lastErr = code
	if s.onErr != nil {
		s.onErr(&CmdError{Code: code, Item: item, Message: msg})
	}
}
