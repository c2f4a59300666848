// Package assets embeds the default puzzle data shipped with the binary.
package assets

import (
	"bufio"
	"embed"
	"encoding/json"
	"strings"
)

//go:embed allowed.txt answers.txt riddles.json
var FS embed.FS

// RiddleFile is the on-disk shape of riddles.json.
type RiddleFile struct {
	Riddles []RiddleRecord `json:"riddles"`
}

// RiddleRecord is one riddle as stored; Answers[0] is the canonical answer.
type RiddleRecord struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
	Hint     string   `json:"hint,omitempty"`
}

// readWords returns the whitespace-separated tokens of an embedded file,
// skipping comment lines, lowercased.
func readWords(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		for _, w := range strings.Fields(s) {
			out = append(out, strings.ToLower(w))
		}
	}
	return out, sc.Err()
}

func AnswersList() ([]string, error) {
	return readWords("answers.txt")
}

func AllowedList() ([]string, error) {
	return readWords("allowed.txt")
}

func Riddles() ([]RiddleRecord, error) {
	data, err := FS.ReadFile("riddles.json")
	if err != nil {
		return nil, err
	}
	var rf RiddleFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, err
	}
	return rf.Riddles, nil
}
