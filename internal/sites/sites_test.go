package sites

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_KnownBoards(t *testing.T) {
	tests := []struct {
		url  string
		want Profile
	}{
		{"https://www.linkedin.com/jobs/view/1234567", ProfileLinkedIn},
		{"https://www.indeed.com/viewjob?jk=abc123", ProfileIndeed},
		{"https://www.glassdoor.com/job/backend-engineer", ProfileGlassdoor},
		{"https://www.monster.com/job-openings/backend-engineer", ProfileMonster},
		{"https://www.careerbuilder.com/job/J123", ProfileCareerBuilder},
		{"https://www.ziprecruiter.com/c/Acme/Job/Backend-Engineer", ProfileZipRecruiter},
		{"https://www.dice.com/job-detail/abc", ProfileDice},
		{"https://angel.co/company/acme/jobs/123", ProfileAngelList},
		{"https://wellfound.com/jobs/123-backend-engineer", ProfileAngelList},
		{"https://stackoverflow.com/jobs/123/backend-engineer", ProfileStackOverflow},
		{"https://remote.co/job/backend-engineer", ProfileRemoteCo},
		{"https://weworkremotely.com/remote-jobs/acme-backend-engineer", ProfileWeWorkRemotely},
		{"https://www.flexjobs.com/jobs/backend-engineer", ProfileFlexJobs},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.url))
		})
	}
}

func TestClassify_Generic(t *testing.T) {
	assert.Equal(t, ProfileGeneric, Classify("https://careers.example.com/jobs/42"))
	assert.Equal(t, ProfileGeneric, Classify("http://jobs.acme.io/backend"))
}

func TestClassify_Invalid(t *testing.T) {
	tests := []string{
		"",
		"not a url",
		"just some pasted job description text",
		"ftp://example.com/file",
		"/relative/path/only",
	}

	for _, input := range tests {
		assert.Equal(t, ProfileInvalid, Classify(input), "input: %q", input)
	}
}

func TestClassify_CaseInsensitiveHost(t *testing.T) {
	assert.Equal(t, ProfileLinkedIn, Classify("https://WWW.LinkedIn.COM/jobs/view/1"))
}

func TestIsJobPath(t *testing.T) {
	assert.True(t, IsJobPath(ProfileLinkedIn, "https://www.linkedin.com/jobs/view/1234"))
	assert.False(t, IsJobPath(ProfileLinkedIn, "https://www.linkedin.com/in/someone"))
	assert.True(t, IsJobPath(ProfileIndeed, "https://www.indeed.com/viewjob?jk=abc"))
	assert.True(t, IsJobPath(ProfileGlassdoor, "https://www.glassdoor.com/Job/backend"))

	// Boards without path hints always pass.
	assert.True(t, IsJobPath(ProfileDice, "https://www.dice.com/anything"))
	assert.True(t, IsJobPath(ProfileGeneric, "https://example.com/whatever"))
}

func TestSelectors_KnownProfilesHaveRules(t *testing.T) {
	known := []Profile{
		ProfileLinkedIn, ProfileIndeed, ProfileGlassdoor, ProfileMonster,
		ProfileCareerBuilder, ProfileZipRecruiter, ProfileDice, ProfileAngelList,
		ProfileStackOverflow, ProfileRemoteCo, ProfileWeWorkRemotely, ProfileFlexJobs,
	}

	for _, p := range known {
		assert.True(t, HasSelectors(p), "profile %s missing selector rules", p)
		rules := Selectors(p)
		assert.NotEmpty(t, rules.Title, "profile %s has no title selectors", p)
		assert.NotEmpty(t, rules.Description, "profile %s has no description selectors", p)
	}
}

func TestSelectors_GenericHasNoRules(t *testing.T) {
	assert.False(t, HasSelectors(ProfileGeneric))
	assert.False(t, HasSelectors(ProfileInvalid))
	assert.Empty(t, Selectors(ProfileGeneric).Title)
}
