package mrr

import "os"

// Load reads the whole file at path into memory.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return data, nil
}

// Parse loads and decodes an MRR file.
func Parse(path string) (*Assembly, error) {
	data, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
