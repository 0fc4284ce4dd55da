package sbp

import "fmt"

// Program is a finite ordered sequence of Statements, immutable after
// parsing (spec.md §3).
type Program []Statement

// LabelTable maps a label name to the index of its Label statement.
type LabelTable map[string]int

// Analyze runs the two no-I/O passes from spec.md §4.3: build the label
// table (duplicates are fatal) and verify every branch target resolves.
func Analyze(prog Program) (LabelTable, error) {
	labels := LabelTable{}
	for i, s := range prog {
		ls, ok := s.(LabelStmt)
		if !ok {
			continue
		}
		if _, dup := labels[ls.Name]; dup {
			return nil, &LabelError{Line: ls.Line, Label: ls.Name, Msg: "duplicate label"}
		}
		labels[ls.Name] = i
	}

	for _, s := range prog {
		if err := checkReferences(s, labels); err != nil {
			return nil, err
		}
	}

	return labels, nil
}

func checkReferences(s Statement, labels LabelTable) error {
	switch v := s.(type) {
	case GotoStmt:
		if _, ok := labels[v.Label]; !ok {
			return &LabelError{Line: v.Line, Label: v.Label, Msg: "undefined label"}
		}
	case GosubStmt:
		if _, ok := labels[v.Label]; !ok {
			return &LabelError{Line: v.Line, Label: v.Label, Msg: "undefined label"}
		}
	case CondStmt:
		if v.Then != nil {
			return checkReferences(v.Then, labels)
		}
	}
	return nil
}

// Resolve looks up a label, returning the §7 LabelError a Goto/Gosub at
// runtime would need if Analyze was somehow skipped. Runtime.Run calls it
// for every Goto and Gosub it executes; with a table from Analyze the
// lookup always succeeds.
func (t LabelTable) Resolve(label string, line int) (int, error) {
	idx, ok := t[label]
	if !ok {
		return 0, &LabelError{Line: line, Label: label, Msg: "undefined label"}
	}
	return idx, nil
}

func (p Program) String() string {
	return fmt.Sprintf("Program[%d statements]", len(p))
}
