package recommend

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/job-recommender/internal/board"
	"github.com/spigell/job-recommender/internal/scoring"
)

func catalog() *board.Jobs {
	return &board.Jobs{Items: []*board.Job{
		{Title: "Software Developer", Location: "London"},
		{Title: "Marketing Internship", Location: "York"},
		{Title: "Data Scientist", Location: "London"},
		{Title: "Legal Internship", Location: "London"},
		{Title: "Project Manager", Location: "Manchester"},
		{Title: "Sales Internship", Location: "London"},
		{Title: "UX Designer", Location: "London"},
		{Title: "Software Developer", Location: "Edinburgh"},
		{Title: "Waiter", Location: "London"},
		{Title: "Zoologist", Location: "London"},
		{Title: "Sushi Chef", Location: "London"},
		{Title: "Software Engineer", Location: "London"},
		{Title: "Software Engineer Manager", Location: "Europe"},
	}}
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	engine, err := New(nil, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return engine
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bio      string
		title    string
		location string
	}{
		{name: "designer", bio: "I'm a designer from London, UK", title: "UX Designer", location: "London"},
		{name: "internship tie keeps catalog order", bio: "I'm looking for an internship in London", title: "Legal Internship", location: "London"},
		{name: "partial title", bio: "I'm looking for a design job", title: "UX Designer", location: "London"},
		{name: "negative location", bio: "I'm looking for a job in marketing outside of London", title: "Marketing Internship", location: "York"},
		{name: "relocation", bio: "I'm a software developer currently in Edinburgh but looking to relocate to London", title: "Software Developer", location: "London"},
		{name: "current city", bio: "I'm a software developer living in Edinburgh", title: "Software Developer", location: "Edinburgh"},
		{name: "title without city", bio: "I am a waiter in england", title: "Waiter", location: "London"},
		{name: "title and city", bio: "I am a waiter in London", title: "Waiter", location: "London"},
		{name: "city only in catalog", bio: "I am a zoologist in London", title: "Zoologist", location: "London"},
		{name: "partial title and city", bio: "I am from London and I worked in a zoo previously.", title: "Zoologist", location: "London"},
		{name: "partial title unknown city", bio: "I am from Newcastle and I worked in a zoo previously.", title: "Zoologist", location: "London"},
		{name: "multi word title first word", bio: "I am from London and I have worked in Sushi restaurants.", title: "Sushi Chef", location: "London"},
		{name: "multi word title second word", bio: "I am a Chef from London", title: "Sushi Chef", location: "London"},
		{name: "multi word title unknown city", bio: "I am from Oxford and I have worked in Sushi restaurants.", title: "Sushi Chef", location: "London"},
		{name: "second word unknown city", bio: "I am a Chef from Oxford", title: "Sushi Chef", location: "London"},
		{name: "title beats neutral city", bio: "I am from Manchester and I have worked in Sushi restaurants.", title: "Sushi Chef", location: "London"},
		{name: "second word beats neutral city", bio: "I am a Chef from Manchester", title: "Sushi Chef", location: "London"},
		{name: "positive city beats partial title", bio: "I am from Bristol but moving to Manchester and I have worked in Chef restaurants.", title: "Project Manager", location: "Manchester"},
		{name: "looking for city", bio: "I am a Chef from Bristol but looking for Manchester jobs", title: "Project Manager", location: "Manchester"},
		{name: "full title beats positive city", bio: "I am from Bristol but moving to Manchester and I have worked as Sushi Chef.", title: "Sushi Chef", location: "London"},
		{name: "full title beats neutral city", bio: "I am a Sushi Chef from Manchester but looking for Bristol jobs", title: "Sushi Chef", location: "London"},
		{name: "negative unknown city", bio: "I have worked in sushi restaurants looking for jobs ouside of Bristol.", title: "Sushi Chef", location: "London"},
		{name: "negative known city", bio: "I have worked in sushi restaurants looking for jobs ouside of London.", title: "Sushi Chef", location: "London"},
		{name: "full title negative unknown city", bio: "I have worked as sushi chef looking for jobs ouside of Bristol.", title: "Sushi Chef", location: "London"},
		{name: "full title negative known city", bio: "I have worked as sushi chef looking for jobs ouside of London.", title: "Sushi Chef", location: "London"},
		{name: "three word title", bio: "I am looking for a Software role in London.", title: "Software Engineer", location: "London"},
		{name: "three word title two words", bio: "I am looking for a Software Manager role in London.", title: "Software Engineer", location: "London"},
		{name: "three word title city", bio: "I am looking for a Software role in Europe.", title: "Software Engineer Manager", location: "Europe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			members := &board.Members{Items: []*board.Member{{Name: "Test", Bio: tt.bio}}}
			newEngine(t).Recommend(members, catalog())

			got := members.Items[0].RecommendedJob
			if got == nil {
				t.Fatalf("expected %s (%s), got none", tt.title, tt.location)
			}
			if got.Title != tt.title || got.Location != tt.location {
				t.Fatalf("expected %s (%s), got %s", tt.title, tt.location, got.Label())
			}
		})
	}
}

func TestRecommendNoMatch(t *testing.T) {
	members := &board.Members{Items: []*board.Member{
		{Name: "Dentist", Bio: "I am a dentist in Newcastle"},
		{Name: "Empty", Bio: ""},
		{Name: "Single", Bio: "Waiter"},
	}}

	newEngine(t).Recommend(members, catalog())

	for _, member := range members.Items {
		if member.RecommendedJob != nil {
			t.Fatalf("expected no recommendation for %s, got %s", member.Name, member.RecommendedJob.Label())
		}
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	members := &board.Members{Items: []*board.Member{{Name: "Test", Bio: "I am a waiter in London"}}}

	newEngine(t).Recommend(members, &board.Jobs{})

	if members.Items[0].RecommendedJob != nil {
		t.Fatalf("expected no recommendation")
	}
	if len(members.Items[0].JobScores) != 0 {
		t.Fatalf("expected no scores, got %v", members.Items[0].JobScores)
	}
}

func TestRecommendKeepsOriginalJob(t *testing.T) {
	jobs := catalog()
	members := &board.Members{Items: []*board.Member{{Name: "Test", Bio: "I am a waiter in London"}}}

	newEngine(t).Recommend(members, jobs)

	if members.Items[0].RecommendedJob != jobs.Items[8] {
		t.Fatalf("expected pointer to the catalog entry")
	}
	if jobs.Items[8].Title != "Waiter" {
		t.Fatalf("catalog was modified: %+v", jobs.Items[8])
	}
	if len(members.Items[0].JobScores) != jobs.Len() {
		t.Fatalf("expected %d scores, got %d", jobs.Len(), len(members.Items[0].JobScores))
	}
}

func TestRecommendIsIdempotent(t *testing.T) {
	jobs := catalog()
	members := &board.Members{Items: []*board.Member{
		{Name: "A", Bio: "I am a Chef from Manchester"},
		{Name: "B", Bio: "I am a dentist in Newcastle"},
	}}

	engine := newEngine(t)
	engine.Recommend(members, jobs)
	first := []*board.Job{members.Items[0].RecommendedJob, members.Items[1].RecommendedJob}
	scores := append([]float64(nil), members.Items[0].JobScores...)

	engine.Recommend(members, jobs)

	for i, member := range members.Items {
		if member.RecommendedJob != first[i] {
			t.Fatalf("recommendation changed for %s", member.Name)
		}
	}
	for i, score := range members.Items[0].JobScores {
		if score != scores[i] {
			t.Fatalf("scores accumulated across calls: %v vs %v", members.Items[0].JobScores, scores)
		}
	}
}

func TestRecommendMember(t *testing.T) {
	member := &board.Member{Name: "Test", Bio: "I am a zoologist in London"}

	newEngine(t).RecommendMember(member, catalog())

	if member.RecommendedJob == nil || member.RecommendedJob.Title != "Zoologist" {
		t.Fatalf("unexpected recommendation %+v", member.RecommendedJob)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := scoring.DefaultConfig()
	cfg.K = -3

	if _, err := New(cfg); err == nil {
		t.Fatalf("expected error for invalid config")
	}
}

type recordingObserver struct {
	jobs        int
	recommended int
	unmatched   int
}

func (r *recordingObserver) ObserveMember(recommended bool, _ time.Duration) {
	if recommended {
		r.recommended++
		return
	}
	r.unmatched++
}

func (r *recordingObserver) ObserveCatalog(jobs int) {
	r.jobs = jobs
}

func TestRecommendNotifiesObserverAndLogs(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	obs := &recordingObserver{}

	members := &board.Members{Items: []*board.Member{
		{Name: "A", Bio: "I am a waiter in London"},
		{Name: "B", Bio: "I am a dentist in Newcastle"},
	}}

	newEngine(t, WithLogger(zap.New(core)), WithObserver(obs)).Recommend(members, catalog())

	if obs.jobs != 13 || obs.recommended != 1 || obs.unmatched != 1 {
		t.Fatalf("unexpected observer state %+v", obs)
	}

	scored := observed.FilterMessage("member scored").All()
	if len(scored) != 2 {
		t.Fatalf("expected 2 member entries, got %d", len(scored))
	}
	if scored[0].ContextMap()["recommended"] != "Waiter (London)" {
		t.Fatalf("unexpected recommended field %v", scored[0].ContextMap()["recommended"])
	}

	summary := observed.FilterMessage("recommendations done").All()
	if len(summary) != 1 {
		t.Fatalf("expected summary entry, got %d", len(summary))
	}
	if summary[0].ContextMap()["recommended"] != int64(1) {
		t.Fatalf("unexpected summary %v", summary[0].ContextMap())
	}
}
