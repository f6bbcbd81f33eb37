package board

import (
	"fmt"
	"strings"
)

const (
	JobTitleField    = "Title"
	JobLocationField = "Location"
	JobKeyField      = "Key"
)

type Jobs struct {
	Items []*Job
}

type Job struct {
	Title    string `json:"title" yaml:"title"`
	Location string `json:"location" yaml:"location"`
}

// Label is the human readable form used in reports and prompts.
func (j *Job) Label() string {
	return fmt.Sprintf("%s (%s)", j.Title, j.Location)
}

// Key identifies a job case-insensitively by title and location.
func (j *Job) Key() string {
	return strings.ToLower(j.Title) + "|" + strings.ToLower(j.Location)
}

func (j *Job) GetStringField(name string) string {
	switch name {
	case JobTitleField:
		return j.Title
	case JobLocationField:
		return j.Location
	case JobKeyField:
		return j.Key()
	default:
		return ""
	}
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) Titles() []string {
	titles := make([]string, 0, len(j.Items))
	for _, job := range j.Items {
		titles = append(titles, job.Title)
	}
	return titles
}

// Exclude removes every job whose field equals one of targets, ignoring case.
// The order of the remaining jobs is preserved. Labels of removed jobs are returned.
func (j *Jobs) Exclude(field string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	lookup := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		lookup[strings.ToLower(strings.TrimSpace(target))] = struct{}{}
	}

	var excluded []string
	kept := j.Items[:0]
	for _, job := range j.Items {
		if _, ok := lookup[strings.ToLower(job.GetStringField(field))]; ok {
			excluded = append(excluded, job.Label())
			continue
		}
		kept = append(kept, job)
	}
	// Drop dangling pointers past the new length.
	for i := len(kept); i < len(j.Items); i++ {
		j.Items[i] = nil
	}
	j.Items = kept

	return excluded
}
