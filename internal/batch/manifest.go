package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one file in the output manifest.
type ManifestEntry struct {
	Name      string `json:"name"`
	Source    string `json:"source"`
	Image     string `json:"image,omitempty"`
	Joints    int    `json:"joints"`
	Parts     int    `json:"parts"`
	Bodies    int    `json:"bodies"`
	Triangles int64  `json:"triangles"`
	Error     string `json:"error,omitempty"`
	Kind      string `json:"kind,omitempty"`
}

// WriteManifest writes the results, successful or not, as a JSON array.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:      r.Name,
			Source:    r.Path,
			Image:     r.Image,
			Joints:    r.Joints,
			Parts:     r.Parts,
			Bodies:    r.Bodies,
			Triangles: r.Triangles,
			Error:     r.Error,
			Kind:      r.Kind,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
