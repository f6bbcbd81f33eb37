// Package report renders recommendation results for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigell/job-recommender/internal/board"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatYAML    = "yaml"

	separator = "----------------------------------------"
	noJob     = "none"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatConsole, FormatJSON, FormatYAML}

// Envelope is the machine readable result of a run.
type Envelope struct {
	RunID   string          `json:"run_id" yaml:"run_id"`
	Members []*board.Member `json:"members" yaml:"members"`
}

// Write renders members in the requested format.
func Write(w io.Writer, format, runID string, members *board.Members) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatConsole:
		return writeConsole(w, members)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Envelope{RunID: runID, Members: members.Items})
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Envelope{RunID: runID, Members: members.Items}); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q (use one of %s)", format, strings.Join(Formats, ", "))
	}
}

func writeConsole(w io.Writer, members *board.Members) error {
	for _, member := range members.Items {
		if _, err := fmt.Fprintf(w, "%s\nmember: %s\nrecommended: %s\n", separator, member.Name, jobLabel(member.RecommendedJob)); err != nil {
			return err
		}
		if member.Explanation != nil && member.Explanation.Summary != "" {
			if _, err := fmt.Fprintf(w, "why: %s\n", member.Explanation.Summary); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, separator)
	return err
}

// ByJob groups member names by the job recommended to them. Members without a
// recommendation are grouped under "none".
func ByJob(members *board.Members) map[string][]string {
	report := make(map[string][]string)
	for _, member := range members.Items {
		key := jobLabel(member.RecommendedJob)
		report[key] = append(report[key], member.Name)
	}
	for key := range report {
		sort.Strings(report[key])
	}
	return report
}

// DumpToTmpFile writes the json envelope into a new temporary file and returns its name.
func DumpToTmpFile(runID string, members *board.Members) (string, error) {
	file, err := os.CreateTemp("", "recommendations_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := Write(file, FormatJSON, runID, members); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func jobLabel(job *board.Job) string {
	if job == nil {
		return noJob
	}
	return job.Label()
}

// WriteMember prints the member bio and the top scored jobs of the catalog the
// scores were computed against. A non-positive top prints every job.
func WriteMember(w io.Writer, member *board.Member, jobs *board.Jobs, top int) error {
	if _, err := fmt.Fprintf(w, "member: %s\nbio: %s\nrecommended: %s\n", member.Name, member.Bio, jobLabel(member.RecommendedJob)); err != nil {
		return err
	}

	order := make([]int, 0, len(member.JobScores))
	for i := range member.JobScores {
		if i < jobs.Len() {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return member.JobScores[order[a]] > member.JobScores[order[b]]
	})
	if top > 0 && len(order) > top {
		order = order[:top]
	}

	for _, i := range order {
		if _, err := fmt.Fprintf(w, "  %6.2f  %s\n", member.JobScores[i], jobs.Items[i].Label()); err != nil {
			return err
		}
	}
	return nil
}
