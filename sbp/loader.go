package sbp

import (
	"io"
	"os"
)

// LoadReader reads an entire OpenSBP program from r and returns it parsed
// and analyzed, ready for Runtime.Run.
func LoadReader(r io.Reader) (Program, LabelTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	prog, err := Parse(string(data))
	if err != nil {
		return nil, nil, err
	}
	labels, err := Analyze(prog)
	if err != nil {
		return nil, nil, err
	}
	return prog, labels, nil
}

// LoadFile opens path and delegates to LoadReader.
func LoadFile(path string) (Program, LabelTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return LoadReader(f)
}
