package sbp

import (
	"regexp"
	"strconv"
	"strings"
)

// fastPathPattern is spec.md §6's optimization for plain lines of the
// shape "mnemonic,num,num,...": a 2-letter mnemonic followed by
// comma-separated, possibly-empty numeric args, nothing else. It must stay
// semantically equivalent to the grammar parser on the subset it matches
// (spec.md §9).
var fastPathPattern = regexp.MustCompile(`^\s*(\w\w)(((\s*,\s*)([+-]?[0-9]+(\.[0-9]+)?)?)+)\s*$`)

// Parse turns program text into a Program (spec.md §6, "Parser contract").
// Each line is stripped of its trailing comment, has the tab/space-after-
// mnemonic quirk applied, and is then routed to the fast-path regex or the
// full grammar parser.
func Parse(source string) (Program, error) {
	lines := strings.Split(source, "\n")
	prog := make(Program, 0, len(lines))
	for i, raw := range lines {
		lineNo := i + 1
		text, comment := splitTrailingComment(raw)
		text = applyMnemonicCommaQuirk(text)
		trimmed := strings.TrimSpace(text)

		if trimmed == "" {
			if comment != "" {
				prog = append(prog, CommentStmt{Text: comment, Line: lineNo})
			}
			continue
		}

		stmt, err := parseLine(trimmed, lineNo)
		if err != nil {
			return nil, err
		}
		prog = append(prog, stmt)
		if comment != "" {
			prog = append(prog, CommentStmt{Text: comment, Line: lineNo})
		}
	}
	return prog, nil
}

// splitTrailingComment separates a '-prefixed line comment from the
// statement text in front of it (spec.md §6 quirk (c)).
func splitTrailingComment(line string) (text, comment string) {
	idx := strings.Index(line, "'")
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx+1:])
}

// applyMnemonicCommaQuirk converts the first run of tab/space right after a
// 2-letter mnemonic into a comma, except for IF (spec.md §6 quirk (a)).
func applyMnemonicCommaQuirk(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) < 2 {
		return line
	}
	lead := len(line) - len(trimmed)
	if !isNameRune(trimmed[0]) || !isNameRune(trimmed[1]) {
		return line
	}
	if strings.ToUpper(trimmed[:2]) == "IF" {
		return line
	}
	rest := trimmed[2:]
	skip := 0
	for skip < len(rest) && (rest[skip] == ' ' || rest[skip] == '\t') {
		skip++
	}
	if skip == 0 {
		return line
	}
	return line[:lead] + trimmed[:2] + "," + rest[skip:]
}

func parseLine(trimmed string, lineNo int) (Statement, error) {
	if !strings.HasPrefix(strings.ToUpper(trimmed), "IF") && fastPathPattern.MatchString(trimmed) {
		return fastParseLine(trimmed, lineNo)
	}
	return parseLineGrammar(trimmed, lineNo)
}

// fastParseLine handles the regex-matched subset directly, without building
// a tokenizer: every arg is a bare, possibly-signed number or empty.
func fastParseLine(trimmed string, lineNo int) (Statement, error) {
	parts := strings.SplitN(trimmed, ",", 2)
	mnemonic := strings.ToUpper(strings.TrimSpace(parts[0]))
	var args []Expr
	if len(parts) == 2 {
		for _, f := range strings.Split(parts[1], ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				args = append(args, nil)
				continue
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Msg: "fast-path arg not numeric: " + f}
			}
			args = append(args, NumberLit(v))
		}
	}
	return CmdStmt{Mnemonic: mnemonic, Args: args, Line: lineNo}, nil
}
