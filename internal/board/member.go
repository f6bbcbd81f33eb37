package board

// Members is the member list in API order.
type Members struct {
	Items []*Member
}

type Member struct {
	Name string `json:"name" yaml:"name"`
	Bio  string `json:"bio" yaml:"bio"`

	// Filled by the recommendation engine. JobScores is aligned with the job catalog.
	JobScores      []float64    `json:"job_scores,omitempty" yaml:"job_scores,omitempty"`
	RecommendedJob *Job         `json:"recommended_job" yaml:"recommended_job"`
	Explanation    *Explanation `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// Explanation is an optional AI written note about a recommendation.
type Explanation struct {
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
	Raw     string `json:"-" yaml:"-"`
}

func (m *Members) Len() int {
	return len(m.Items)
}

func (m *Members) Names() []string {
	names := make([]string, 0, len(m.Items))
	for _, member := range m.Items {
		names = append(names, member.Name)
	}
	return names
}

func (m *Members) FindByName(name string) *Member {
	for _, member := range m.Items {
		if member.Name == name {
			return member
		}
	}
	return nil
}

// Recommended counts members that got a job.
func (m *Members) Recommended() int {
	count := 0
	for _, member := range m.Items {
		if member.RecommendedJob != nil {
			count++
		}
	}
	return count
}
